package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/bnema/discord-autochat/internal/ports"
	"github.com/google/uuid"
)

const (
	DefaultTokenDelay       = 5 * time.Second
	DefaultMessageDelay     = 20 * time.Second
	DefaultRestartDelay     = 30 * time.Second
	DefaultReplyProbability = 0.8
	DefaultRecentLimit      = 20
)

var (
	errNoCredentials = errors.New("no credentials configured")
	errNoChannels    = errors.New("no channels configured")
	errNoMessages    = errors.New("no messages configured")
)

type Delays struct {
	Token   time.Duration
	Message time.Duration
	Restart time.Duration
}

type SchedulerConfig struct {
	Credentials []domain.Credential
	Channels    []domain.ChannelID
	Messages    []string
	Delays      Delays
	// ReplyProbability is the chance a channel visit replies instead of posting.
	ReplyProbability float64
	RecentLimit      int
	Session          SessionOptions
}

type SchedulerOption func(*Scheduler)

func WithSleeper(sleeper ports.Sleeper) SchedulerOption {
	return func(s *Scheduler) { s.sleeper = sleeper }
}

func WithRand(rng *rand.Rand) SchedulerOption {
	return func(s *Scheduler) { s.rng = rng }
}

func WithObserver(observer Observer) SchedulerOption {
	return func(s *Scheduler) { s.observer = observer }
}

func WithLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = logger }
}

func WithMessagePool(pool *domain.MessagePool) SchedulerOption {
	return func(s *Scheduler) { s.pool = pool }
}

func WithCycleIDs(next func() string) SchedulerOption {
	return func(s *Scheduler) { s.nextCycleID = next }
}

// Scheduler visits every channel with every account, then waits and starts
// over. All platform calls run sequentially on the caller's goroutine.
type Scheduler struct {
	cfg         SchedulerConfig
	platforms   ports.PlatformFactory
	replies     *ReplyGenerator
	pool        *domain.MessagePool
	sleeper     ports.Sleeper
	rng         *rand.Rand
	observer    Observer
	logger      *slog.Logger
	nextCycleID func() string

	sessions map[domain.Credential]*Session
}

func NewScheduler(cfg SchedulerConfig, platforms ports.PlatformFactory, replies *ReplyGenerator, opts ...SchedulerOption) (*Scheduler, error) {
	switch {
	case len(cfg.Credentials) == 0:
		return nil, domain.ConfigError("new scheduler", errNoCredentials)
	case len(cfg.Channels) == 0:
		return nil, domain.ConfigError("new scheduler", errNoChannels)
	case len(cfg.Messages) == 0:
		return nil, domain.ConfigError("new scheduler", errNoMessages)
	case platforms == nil:
		return nil, domain.ConfigError("new scheduler", errors.New("platform factory is nil"))
	}

	if cfg.ReplyProbability < 0 || cfg.ReplyProbability > 1 {
		return nil, domain.ConfigError("new scheduler", fmt.Errorf("reply probability %v out of range [0,1]", cfg.ReplyProbability))
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = DefaultRecentLimit
	}

	s := &Scheduler{
		cfg:         cfg,
		platforms:   platforms,
		replies:     replies,
		sleeper:     ports.SystemClock{},
		observer:    nopObserver{},
		logger:      slog.Default(),
		nextCycleID: uuid.NewString,
		sessions:    make(map[domain.Credential]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.pool == nil {
		s.pool = domain.NewMessagePool(domain.DefaultHistoryWindow, s.rng)
	}
	if s.replies == nil {
		s.replies = NewReplyGenerator(nil, ports.GenerationParams{}, s.rng, s.logger)
	}
	if s.cfg.Session.Logger == nil {
		s.cfg.Session.Logger = s.logger
	}
	if s.cfg.Session.Retry.Sleeper == nil {
		s.cfg.Session.Retry.Sleeper = s.sleeper
	}

	return s, nil
}

// Run repeats cycles until ctx is cancelled. It only returns ctx's error.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if err := s.RunCycle(ctx); err != nil {
			return err
		}

		s.logger.Info("cycle finished, waiting before restart", "delay", s.cfg.Delays.Restart)
		if err := s.sleeper.Sleep(ctx, s.cfg.Delays.Restart); err != nil {
			return err
		}
	}
}

// RunCycle processes every account once. Per-account and per-channel
// failures are logged and absorbed; only cancellation is returned.
func (s *Scheduler) RunCycle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	logger := s.logger.With("cycle_id", s.nextCycleID())
	logger.Info("cycle started", "accounts", len(s.cfg.Credentials), "channels", len(s.cfg.Channels))

	for _, credential := range s.cfg.Credentials {
		if err := s.processAccount(ctx, logger, credential); err != nil {
			return err
		}
	}

	s.observer.CycleCompleted()
	return nil
}

func (s *Scheduler) processAccount(ctx context.Context, logger *slog.Logger, credential domain.Credential) error {
	logger = logger.With("credential", credential.Redacted())

	session, err := s.session(credential)
	if err == nil {
		err = session.Initialize(ctx)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		s.observer.Failure(domain.KindOf(err))
		if domain.IsKind(err, domain.KindAuth) {
			logger.Error("credential rejected, skipping account for this cycle", "error", err)
			return nil
		}

		logger.Error("account initialization failed", "error", err)
		return s.sleeper.Sleep(ctx, s.cfg.Delays.Token)
	}

	logger = logger.With("account", session.Identity().Tag())
	logger.Info("account ready", "replied", session.RepliedCount())

	for _, channel := range s.cfg.Channels {
		err := s.processChannel(ctx, logger, session, channel)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			s.observer.Failure(domain.KindOf(err))
			if domain.IsKind(err, domain.KindAuth) {
				logger.Error("account lost authorization, skipping its remaining channels", "channel", channel, "error", err)
				break
			}
			logger.Error("channel iteration failed", "channel", channel, "error", err)
		}

		if err := s.sleeper.Sleep(ctx, s.cfg.Delays.Message); err != nil {
			return err
		}
	}

	logger.Info("waiting before next account", "delay", s.cfg.Delays.Token)
	return s.sleeper.Sleep(ctx, s.cfg.Delays.Token)
}

func (s *Scheduler) processChannel(ctx context.Context, logger *slog.Logger, session *Session, channel domain.ChannelID) error {
	if s.rng.Float64() < s.cfg.ReplyProbability {
		return s.reply(ctx, logger, session, channel)
	}

	return s.post(ctx, logger, session, channel)
}

func (s *Scheduler) reply(ctx context.Context, logger *slog.Logger, session *Session, channel domain.ChannelID) error {
	recent, err := session.FetchRecentMessages(ctx, channel, s.cfg.RecentLimit)
	if err != nil {
		return fmt.Errorf("fetch recent messages: %w", err)
	}

	candidates := make([]domain.RemoteMessage, 0, len(recent))
	for _, msg := range recent {
		if session.IsOwnMessage(msg) || session.Replied(msg.ID) {
			continue
		}
		candidates = append(candidates, msg)
	}
	if len(candidates) == 0 {
		logger.Debug("no reply candidates", "channel", channel, "fetched", len(recent))
		return nil
	}

	target := candidates[s.rng.IntN(len(candidates))]
	if session.HasRepliedTo(ctx, channel, target.ID) {
		logger.Debug("already replied to message", "channel", channel, "message_id", target.ID)
		return nil
	}

	reply := s.replies.Generate(ctx, target.Content)
	posted, err := session.ReplyTo(ctx, channel, target.ID, reply.Text)
	if err != nil {
		return fmt.Errorf("reply to message %s: %w", target.ID, err)
	}
	if posted.Content == "" {
		logger.Warn("reply not confirmed by platform", "channel", channel, "message_id", target.ID, "error", domain.ErrEmptyContent)
		return nil
	}

	session.MarkReplied(target.ID)
	s.observer.ReplySent(channel, reply.Fallback)
	logger.Info("replied in channel",
		"channel", channel,
		"message_id", target.ID,
		"fallback", reply.Fallback,
		"reply", reply.Text,
	)
	return nil
}

func (s *Scheduler) post(ctx context.Context, logger *slog.Logger, session *Session, channel domain.ChannelID) error {
	text := s.pool.Pick(s.cfg.Messages, channel)

	posted, err := session.SendMessage(ctx, channel, text)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	if posted.Content == "" {
		logger.Warn("message not confirmed by platform", "channel", channel, "error", domain.ErrEmptyContent)
		return nil
	}

	s.observer.MessageSent(channel)
	logger.Info("sent to channel", "channel", channel, "message", text)
	return nil
}

// session returns the cached session for credential so its replied set
// survives across cycles.
func (s *Scheduler) session(credential domain.Credential) (*Session, error) {
	if session, ok := s.sessions[credential]; ok {
		return session, nil
	}

	platform, err := s.platforms(credential)
	if err != nil {
		return nil, fmt.Errorf("open platform client: %w", err)
	}

	session := NewSession(credential, platform, s.cfg.Session)
	s.sessions[credential] = session
	return session, nil
}
