package config

import (
	"path/filepath"
	"testing"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMessagesTrimsAndDropsBlankLines(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "chat.txt", "gm\r\n\n   \n  how is everyone  \nlol\n")

	messages, err := LoadMessages(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"gm", "how is everyone", "lol"}, messages)
}

func TestLoadMessagesRequiresAtLeastOneMessage(t *testing.T) {
	t.Parallel()

	_, err := LoadMessages(writeFile(t, "chat.txt", "\n  \n\t\n"))

	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConfig))
}

func TestLoadMessagesMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadMessages(filepath.Join(t.TempDir(), "chat.txt"))

	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConfig))
}
