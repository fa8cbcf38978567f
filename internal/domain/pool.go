package domain

import (
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
)

// DefaultHistoryWindow is how many recently sent texts are remembered per channel.
const DefaultHistoryWindow = 5

// MessagePool picks original messages for a channel while avoiding the texts
// most recently sent there. History is a FIFO window per channel; when every
// candidate is inside the window the channel's history is cleared.
type MessagePool struct {
	mu      sync.Mutex
	window  int
	rng     *rand.Rand
	history map[ChannelID][]string
}

func NewMessagePool(window int, rng *rand.Rand) *MessagePool {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &MessagePool{
		window:  window,
		rng:     rng,
		history: make(map[ChannelID][]string),
	}
}

// Pick returns one of messages for channel. Callers must pass a non-empty
// list; an empty list yields "".
func (p *MessagePool) Pick(messages []string, channel ChannelID) string {
	if len(messages) == 0 {
		return ""
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	previous := p.history[channel]
	available := make([]string, 0, len(messages))
	for _, msg := range messages {
		if !slices.Contains(previous, msg) {
			available = append(available, msg)
		}
	}

	if len(available) == 0 {
		// Exhausted: start over from the full list, but never hand back the
		// text that was just sent when another one exists.
		var last string
		if len(previous) > 0 {
			last = previous[len(previous)-1]
		}
		for _, msg := range messages {
			if msg != last {
				available = append(available, msg)
			}
		}
		if len(available) == 0 {
			available = messages
		}
		previous = nil
	}

	picked := available[p.rng.IntN(len(available))]

	updated := append(slices.Clone(previous), picked)
	if len(updated) > p.window {
		updated = updated[len(updated)-p.window:]
	}
	p.history[channel] = updated

	return picked
}

// History returns a copy of the remembered texts for channel, oldest first.
func (p *MessagePool) History(channel ChannelID) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.history[channel])
}

// NormalizeMessages trims every line and drops the blank ones.
func NormalizeMessages(lines []string) []string {
	messages := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		messages = append(messages, trimmed)
	}

	return messages
}
