package ports

import "context"

// SecretReader resolves a secret reference to its value.
type SecretReader interface {
	Get(ctx context.Context, key string) (string, error)
}
