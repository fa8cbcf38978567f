package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/bnema/discord-autochat/internal/ports"
	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
)

// BackOffFactory builds the delay policy applied between ordinary failures.
type BackOffFactory func(base time.Duration) backoff.BackOff

func ConstantBackOff(base time.Duration) backoff.BackOff {
	return backoff.NewConstantBackOff(base)
}

func ExponentialBackOff(base time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.Reset()
	return b
}

// RetryPolicy bounds how often and how long an operation is retried.
// Zero values fall back to the defaults.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	BackOff     BackOffFactory
	// Retryable decides whether a failure is worth another attempt.
	Retryable func(error) bool
	Sleeper   ports.Sleeper
	Logger    *slog.Logger
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{}.withDefaults()
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	if p.BackOff == nil {
		p.BackOff = ConstantBackOff
	}
	if p.Retryable == nil {
		p.Retryable = IsRetryable
	}
	if p.Sleeper == nil {
		p.Sleeper = ports.SystemClock{}
	}
	if p.Logger == nil {
		p.Logger = slog.Default()
	}

	return p
}

// IsRetryable rejects failures that cannot succeed on a second attempt:
// rejected credentials, invalid configuration and cancelled contexts.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	switch domain.KindOf(err) {
	case domain.KindAuth, domain.KindConfig:
		return false
	default:
		return true
	}
}

// Retry runs fn until it succeeds or the policy gives up. A rate-limited
// failure waits for the platform's suggested duration instead of the policy
// delay. The last failure is returned unchanged.
func Retry[T any](ctx context.Context, policy RetryPolicy, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	policy = policy.withDefaults()
	delays := policy.BackOff(policy.BaseDelay)
	delays.Reset()

	var zero T
	for attempt := 1; ; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if attempt >= policy.MaxAttempts || !policy.Retryable(err) {
			return zero, err
		}

		wait := delays.NextBackOff()
		if wait == backoff.Stop {
			return zero, err
		}
		if retryAfter, ok := domain.RetryAfter(err); ok {
			wait = retryAfter
		}

		policy.Logger.Debug("retrying operation",
			"op", op,
			"attempt", attempt,
			"max_attempts", policy.MaxAttempts,
			"wait", wait,
			"error", err,
		)

		if sleepErr := policy.Sleeper.Sleep(ctx, wait); sleepErr != nil {
			return zero, sleepErr
		}
	}
}
