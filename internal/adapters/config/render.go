package config

import (
	"fmt"
	"strings"

	"github.com/bnema/discord-autochat/internal/application"
	"github.com/bnema/discord-autochat/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

const redactedValue = "<redacted>"

// Redacted returns a copy safe to print. Secret references are kept as
// written since they only name a key.
func (c Config) Redacted() Config {
	out := c
	out.Tokens = make([]string, len(c.Tokens))
	for i, token := range c.Tokens {
		if strings.HasPrefix(token, application.SecretRefPrefix) {
			out.Tokens[i] = token
			continue
		}
		out.Tokens[i] = domain.Credential(token).Redacted()
	}
	out.GoogleAPIKey = redactSecret(c.GoogleAPIKey)
	out.AI.APIKey = redactSecret(c.AI.APIKey)

	return out
}

// RenderTOML encodes the redacted configuration.
func RenderTOML(cfg Config) (string, error) {
	data, err := toml.Marshal(cfg.Redacted())
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}

	return string(data), nil
}

func redactSecret(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return redactedValue
}
