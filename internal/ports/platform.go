package ports

import (
	"context"

	"github.com/bnema/discord-autochat/internal/domain"
)

// ChatPlatform is the REST surface of the chat platform, bound to one credential.
// Implementations return *domain.Error values so callers can branch on kind.
type ChatPlatform interface {
	FetchSelf(ctx context.Context) (domain.Identity, error)
	// ListMessages returns up to limit messages, newest first.
	ListMessages(ctx context.Context, channel domain.ChannelID, limit int) ([]domain.RemoteMessage, error)
	PostMessage(ctx context.Context, channel domain.ChannelID, content string) (domain.RemoteMessage, error)
	PostReply(ctx context.Context, channel domain.ChannelID, replyTo domain.MessageID, content string) (domain.RemoteMessage, error)
}

// PlatformFactory opens a platform client for a credential.
type PlatformFactory func(credential domain.Credential) (ChatPlatform, error)
