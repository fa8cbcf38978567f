package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/bnema/discord-autochat/internal/ports"
	"github.com/bwmarrin/discordgo"
)

// Discord rejects message bodies longer than this many characters.
const maxContentLength = 2000

const defaultTimeout = 20 * time.Second

type Option func(*discordgo.Session)

// WithHTTPClient replaces the HTTP client used for REST calls.
func WithHTTPClient(client *http.Client) Option {
	return func(s *discordgo.Session) { s.Client = client }
}

func WithUserAgent(agent string) Option {
	return func(s *discordgo.Session) { s.UserAgent = agent }
}

// Client talks to the Discord REST API on behalf of one account. It never
// opens a gateway connection.
type Client struct {
	session *discordgo.Session
}

var _ ports.ChatPlatform = (*Client)(nil)

func New(credential domain.Credential, opts ...Option) (*Client, error) {
	token := strings.TrimSpace(string(credential))
	if token == "" {
		return nil, domain.ConfigError("new discord client", errors.New("credential is empty"))
	}

	session, err := discordgo.New(token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	// Rate limits and transient failures are retried by the caller.
	session.ShouldRetryOnRateLimit = false
	session.MaxRestRetries = 0
	session.Client = &http.Client{Timeout: defaultTimeout}
	for _, opt := range opts {
		opt(session)
	}

	return &Client{session: session}, nil
}

// Factory adapts New to ports.PlatformFactory.
func Factory(opts ...Option) ports.PlatformFactory {
	return func(credential domain.Credential) (ports.ChatPlatform, error) {
		return New(credential, opts...)
	}
}

func (c *Client) FetchSelf(ctx context.Context) (domain.Identity, error) {
	user, err := c.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return domain.Identity{}, mapError("fetch self", err)
	}

	return domain.Identity{
		ID:            user.ID,
		Username:      user.Username,
		Discriminator: user.Discriminator,
	}, nil
}

func (c *Client) ListMessages(ctx context.Context, channel domain.ChannelID, limit int) ([]domain.RemoteMessage, error) {
	messages, err := c.session.ChannelMessages(string(channel), limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapError("list messages", err)
	}

	out := make([]domain.RemoteMessage, 0, len(messages))
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		out = append(out, toRemoteMessage(msg))
	}

	return out, nil
}

func (c *Client) PostMessage(ctx context.Context, channel domain.ChannelID, content string) (domain.RemoteMessage, error) {
	msg, err := c.session.ChannelMessageSend(string(channel), truncate(content), discordgo.WithContext(ctx))
	if err != nil {
		return domain.RemoteMessage{}, mapError("post message", err)
	}

	return toRemoteMessage(msg), nil
}

func (c *Client) PostReply(ctx context.Context, channel domain.ChannelID, replyTo domain.MessageID, content string) (domain.RemoteMessage, error) {
	msg, err := c.session.ChannelMessageSendComplex(string(channel), &discordgo.MessageSend{
		Content: truncate(content),
		Reference: &discordgo.MessageReference{
			MessageID: string(replyTo),
			ChannelID: string(channel),
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return domain.RemoteMessage{}, mapError("post reply", err)
	}

	return toRemoteMessage(msg), nil
}

func toRemoteMessage(msg *discordgo.Message) domain.RemoteMessage {
	if msg == nil {
		return domain.RemoteMessage{}
	}

	out := domain.RemoteMessage{
		ID:        domain.MessageID(msg.ID),
		ChannelID: domain.ChannelID(msg.ChannelID),
		Content:   msg.Content,
	}
	if msg.Author != nil {
		out.AuthorID = msg.Author.ID
	}
	if msg.MessageReference != nil {
		out.ReferencedID = domain.MessageID(msg.MessageReference.MessageID)
	}

	return out
}

func truncate(content string) string {
	if utf8.RuneCountInString(content) <= maxContentLength {
		return content
	}

	runes := []rune(content)
	return string(runes[:maxContentLength-3]) + "..."
}
