package completion

import (
	"context"
	"fmt"

	"github.com/bnema/discord-autochat/internal/adapters/completion/claude"
	"github.com/bnema/discord-autochat/internal/adapters/completion/gemini"
	"github.com/bnema/discord-autochat/internal/adapters/completion/openaichat"
	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/bnema/discord-autochat/internal/ports"
)

type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// New returns the completer for settings.Provider. The "none" provider
// returns a nil completer, which disables AI replies.
func New(ctx context.Context, settings Settings) (ports.Completer, error) {
	var (
		completer ports.Completer
		err       error
	)

	switch settings.Provider {
	case "none":
		return nil, nil
	case "gemini", "":
		completer, err = gemini.New(ctx, settings.APIKey, settings.Model, settings.BaseURL)
	case "openai":
		completer, err = openaichat.New(settings.APIKey, settings.Model, settings.BaseURL)
	case "anthropic":
		completer, err = claude.New(settings.APIKey, settings.Model, settings.BaseURL)
	default:
		err = fmt.Errorf("unknown provider %q", settings.Provider)
	}
	if err != nil {
		return nil, domain.ConfigError("new completer", err)
	}

	return completer, nil
}
