package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/bnema/discord-autochat/internal/ports"
)

// DefaultReplyScanLimit is how many recent messages HasRepliedTo inspects.
const DefaultReplyScanLimit = 100

type SessionOptions struct {
	Retry          RetryPolicy
	ReplyScanLimit int
	Logger         *slog.Logger
}

// Session is the runtime state of one authenticated account. The replied set
// only grows; it lives as long as the Session value does.
type Session struct {
	credential domain.Credential
	platform   ports.ChatPlatform
	retry      RetryPolicy
	scanLimit  int
	logger     *slog.Logger

	identity    domain.Identity
	initialized bool
	replied     map[domain.MessageID]struct{}
}

func NewSession(credential domain.Credential, platform ports.ChatPlatform, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Retry.Logger == nil {
		opts.Retry.Logger = logger
	}
	scanLimit := opts.ReplyScanLimit
	if scanLimit <= 0 {
		scanLimit = DefaultReplyScanLimit
	}

	return &Session{
		credential: credential,
		platform:   platform,
		retry:      opts.Retry,
		scanLimit:  scanLimit,
		logger:     logger,
		replied:    make(map[domain.MessageID]struct{}),
	}
}

// Initialize fetches the account identity. It must succeed before any other
// platform call.
func (s *Session) Initialize(ctx context.Context) error {
	identity, err := s.platform.FetchSelf(ctx)
	if err != nil {
		return fmt.Errorf("initialize session %s: %w", s.credential.Redacted(), err)
	}

	s.identity = identity
	s.initialized = true
	return nil
}

func (s *Session) Credential() domain.Credential {
	return s.credential
}

func (s *Session) Identity() domain.Identity {
	return s.identity
}

func (s *Session) IsOwnMessage(msg domain.RemoteMessage) bool {
	return s.initialized && msg.AuthorID == s.identity.ID
}

// FetchRecentMessages is not retried; callers skip the iteration on failure.
func (s *Session) FetchRecentMessages(ctx context.Context, channel domain.ChannelID, limit int) ([]domain.RemoteMessage, error) {
	if err := s.ensureInitialized("list messages"); err != nil {
		return nil, err
	}

	return s.platform.ListMessages(ctx, channel, limit)
}

func (s *Session) SendMessage(ctx context.Context, channel domain.ChannelID, content string) (domain.RemoteMessage, error) {
	if err := s.ensureInitialized("send message"); err != nil {
		return domain.RemoteMessage{}, err
	}

	return Retry(ctx, s.retry, "send message", func(ctx context.Context) (domain.RemoteMessage, error) {
		return s.platform.PostMessage(ctx, channel, content)
	})
}

// ReplyTo posts content referencing messageID. It is retried like SendMessage.
func (s *Session) ReplyTo(ctx context.Context, channel domain.ChannelID, messageID domain.MessageID, content string) (domain.RemoteMessage, error) {
	if err := s.ensureInitialized("reply to message"); err != nil {
		return domain.RemoteMessage{}, err
	}

	return Retry(ctx, s.retry, "reply to message", func(ctx context.Context) (domain.RemoteMessage, error) {
		return s.platform.PostReply(ctx, channel, messageID, content)
	})
}

// HasRepliedTo consults the replied set and then scans the channel for an own
// reply referencing messageID. A failed scan is logged and reported as false:
// a possible duplicate reply is preferred over stalling the channel.
func (s *Session) HasRepliedTo(ctx context.Context, channel domain.ChannelID, messageID domain.MessageID) bool {
	if s.Replied(messageID) {
		return true
	}

	recent, err := s.FetchRecentMessages(ctx, channel, s.scanLimit)
	if err != nil {
		s.logger.Warn("reply status check failed, assuming not replied",
			"channel", channel,
			"message_id", messageID,
			"error", err,
		)
		return false
	}

	for _, msg := range recent {
		if msg.IsReplyTo(messageID) && s.IsOwnMessage(msg) {
			s.MarkReplied(messageID)
			return true
		}
	}

	return false
}

func (s *Session) MarkReplied(id domain.MessageID) {
	s.replied[id] = struct{}{}
}

func (s *Session) Replied(id domain.MessageID) bool {
	_, ok := s.replied[id]
	return ok
}

func (s *Session) RepliedCount() int {
	return len(s.replied)
}

func (s *Session) ensureInitialized(op string) error {
	if s.initialized {
		return nil
	}

	return domain.APIError(op, 0, domain.ErrNotInitialized)
}
