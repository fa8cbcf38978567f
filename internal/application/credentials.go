package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/bnema/discord-autochat/internal/ports"
)

// SecretRefPrefix marks a token entry that names a secret instead of holding it.
const SecretRefPrefix = "secret:"

var errNoSecretReader = errors.New("no secret store configured")

// ResolveCredentials turns configured token entries into credentials, reading
// "secret:<key>" entries from secrets. Any failure is a configuration error.
func ResolveCredentials(ctx context.Context, entries []string, secrets ports.SecretReader) ([]domain.Credential, error) {
	credentials := make([]domain.Credential, 0, len(entries))
	for i, entry := range entries {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			return nil, domain.ConfigError("resolve credentials", fmt.Errorf("token %d is empty", i+1))
		}

		key, isRef := strings.CutPrefix(trimmed, SecretRefPrefix)
		if !isRef {
			credentials = append(credentials, domain.Credential(trimmed))
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, domain.ConfigError("resolve credentials", fmt.Errorf("token %d: secret reference has no key", i+1))
		}
		if secrets == nil {
			return nil, domain.ConfigError("resolve credentials", fmt.Errorf("token %d: %w", i+1, errNoSecretReader))
		}

		value, err := secrets.Get(ctx, key)
		if err != nil {
			return nil, domain.ConfigError("resolve credentials", fmt.Errorf("read secret %q: %w", key, err))
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, domain.ConfigError("resolve credentials", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound))
		}

		credentials = append(credentials, domain.Credential(value))
	}

	return credentials, nil
}
