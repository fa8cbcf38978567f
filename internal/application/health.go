package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/bnema/discord-autochat/internal/ports"
)

type ChannelAccess struct {
	Channel domain.ChannelID
	Err     error
}

// AccountHealth is the result of probing one credential.
type AccountHealth struct {
	Credential domain.Credential
	Identity   domain.Identity
	Latency    time.Duration
	Err        error
	Channels   []ChannelAccess
}

func (h AccountHealth) Healthy() bool {
	if h.Err != nil {
		return false
	}
	for _, ch := range h.Channels {
		if ch.Err != nil {
			return false
		}
	}
	return true
}

// CheckAccounts authenticates every credential once and reads one message
// from each channel. Nothing is posted.
func CheckAccounts(ctx context.Context, credentials []domain.Credential, channels []domain.ChannelID, platforms ports.PlatformFactory, clock ports.Clock) []AccountHealth {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	results := make([]AccountHealth, 0, len(credentials))
	for _, credential := range credentials {
		results = append(results, checkAccount(ctx, credential, channels, platforms, clock))
	}
	return results
}

func checkAccount(ctx context.Context, credential domain.Credential, channels []domain.ChannelID, platforms ports.PlatformFactory, clock ports.Clock) AccountHealth {
	health := AccountHealth{Credential: credential}

	platform, err := platforms(credential)
	if err != nil {
		health.Err = fmt.Errorf("open platform client: %w", err)
		return health
	}

	started := clock.Now()
	identity, err := platform.FetchSelf(ctx)
	health.Latency = clock.Now().Sub(started)
	if err != nil {
		health.Err = err
		return health
	}
	health.Identity = identity

	for _, channel := range channels {
		_, err := platform.ListMessages(ctx, channel, 1)
		health.Channels = append(health.Channels, ChannelAccess{Channel: channel, Err: err})
		if ctx.Err() != nil {
			break
		}
	}

	return health
}
