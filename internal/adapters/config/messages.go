package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/discord-autochat/internal/domain"
)

// LoadMessages reads the newline-delimited message list. Blank lines are
// dropped and at least one message must remain.
func LoadMessages(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.ConfigError("read messages", err)
	}

	messages := domain.NormalizeMessages(strings.Split(string(data), "\n"))
	if len(messages) == 0 {
		return nil, domain.ConfigError("read messages", fmt.Errorf("%s: %w", path, errors.New("no messages found")))
	}

	return messages, nil
}
