package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/bnema/discord-autochat/internal/ports"
)

type recordingSleeper struct {
	waits   []time.Duration
	onSleep func(d time.Duration) error
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	if s.onSleep != nil {
		if err := s.onSleep(d); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (s *recordingSleeper) count(d time.Duration) int {
	n := 0
	for _, w := range s.waits {
		if w == d {
			n++
		}
	}
	return n
}

type countingObserver struct {
	sent      int
	replies   int
	fallbacks int
	failures  map[domain.Kind]int
	cycles    int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{failures: map[domain.Kind]int{}}
}

func (o *countingObserver) MessageSent(domain.ChannelID) { o.sent++ }

func (o *countingObserver) ReplySent(_ domain.ChannelID, fallback bool) {
	o.replies++
	if fallback {
		o.fallbacks++
	}
}

func (o *countingObserver) Failure(kind domain.Kind) { o.failures[kind]++ }
func (o *countingObserver) CycleCompleted()          { o.cycles++ }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func platformsFor(platforms map[domain.Credential]ports.ChatPlatform) ports.PlatformFactory {
	return func(credential domain.Credential) (ports.ChatPlatform, error) {
		platform, ok := platforms[credential]
		if !ok {
			return nil, fmt.Errorf("no platform for %s", credential.Redacted())
		}
		return platform, nil
	}
}

func fastRetry(sleeper ports.Sleeper) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Sleeper:     sleeper,
		Logger:      discardLogger(),
	}
}
