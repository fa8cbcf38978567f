package application

import "github.com/bnema/discord-autochat/internal/domain"

// Observer receives scheduler outcomes, typically to feed metrics.
type Observer interface {
	MessageSent(channel domain.ChannelID)
	ReplySent(channel domain.ChannelID, fallback bool)
	Failure(kind domain.Kind)
	CycleCompleted()
}

type nopObserver struct{}

func (nopObserver) MessageSent(domain.ChannelID)     {}
func (nopObserver) ReplySent(domain.ChannelID, bool) {}
func (nopObserver) Failure(domain.Kind)              {}
func (nopObserver) CycleCompleted()                  {}
