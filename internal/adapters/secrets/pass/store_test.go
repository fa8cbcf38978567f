package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetUsesPassShowAndKeepsFirstLine(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", "discord/main"}, args)
			return "mfa.token-value\r\nlogin: someone@example.com\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), "discord/main")
	require.NoError(t, err)
	assert.Equal(t, "mfa.token-value", value)
}

func TestStoreGetRejectsEmptyEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, ...string) (string, string, error) {
			return "\n", "", nil
		},
	}

	_, err := store.Get(context.Background(), "discord/main")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, ...string) (string, string, error) {
			return "", "Error: discord/main is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "discord/main")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass show")
	assert.ErrorContains(t, err, "discord/main")
	assert.ErrorContains(t, err, "not in the password store")
}

func TestStoreGetHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(context.Context, ...string) (string, string, error) {
			t.Fatal("pass must not run with a cancelled context")
			return "", "", nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, "discord/main")
	require.ErrorIs(t, err, context.Canceled)
}
