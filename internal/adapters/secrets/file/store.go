package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/bnema/discord-autochat/internal/ports"
)

// Secrets readable by group or others are refused.
const insecurePermBits = 0o077

// Store reads one secret per file below root. The key is the relative path.
type Store struct {
	root string
}

var _ ports.SecretReader = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// DefaultRoot is $XDG_CONFIG_HOME/autochat/secrets, or the platform's user
// config directory when XDG_CONFIG_HOME is unset.
func DefaultRoot() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolve user config dir: %w", err)
		}
		base = dir
	}

	return filepath.Join(base, "autochat", "secrets"), nil
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("file secret %q: %w", key, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("stat file secret %q: %w", key, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("file secret %q is a directory", key)
	}
	if perm := info.Mode().Perm(); perm&insecurePermBits != 0 {
		return "", fmt.Errorf("file secret %q has permissions %#o, want 0600", key, perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file secret %q: %w", key, err)
	}

	return strings.TrimRight(string(data), "\r\n"), nil
}

func (s *Store) pathForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("secret key is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") || cleaned == "." {
		return "", fmt.Errorf("invalid secret key %q", key)
	}

	return filepath.Join(s.root, cleaned), nil
}
