package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bnema/discord-autochat/internal/adapters/completion"
	"github.com/bnema/discord-autochat/internal/adapters/config"
	"github.com/bnema/discord-autochat/internal/adapters/platform/discord"
	statusadapter "github.com/bnema/discord-autochat/internal/adapters/render/status"
	chainstore "github.com/bnema/discord-autochat/internal/adapters/secrets/chain"
	filestore "github.com/bnema/discord-autochat/internal/adapters/secrets/file"
	"github.com/bnema/discord-autochat/internal/application"
	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/bnema/discord-autochat/internal/ports"
	"github.com/bnema/discord-autochat/internal/version"
	"github.com/spf13/viper"
)

// dependencies are the outside-world adapters; tests swap them.
type dependencies struct {
	platforms      ports.PlatformFactory
	newCompleter   func(context.Context, completion.Settings) (ports.Completer, error)
	secrets        func() (ports.SecretReader, error)
	sleeper        ports.Sleeper
	statusRenderer func([]application.AccountHealth, statusadapter.RenderOptions) (string, error)
}

func defaultDependencies() dependencies {
	return dependencies{
		platforms:      discord.Factory(discord.WithUserAgent(version.Name + "/" + version.Version)),
		newCompleter:   completion.New,
		secrets:        defaultSecretStore,
		sleeper:        ports.SystemClock{},
		statusRenderer: statusadapter.Render,
	}
}

func defaultSecretStore() (ports.SecretReader, error) {
	root, err := filestore.DefaultRoot()
	if err != nil {
		return nil, fmt.Errorf("resolve secret directory: %w", err)
	}

	store, err := chainstore.NewPassFirstWithFileFallback(root)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}
	return store, nil
}

type app struct {
	cfg         config.Config
	credentials []domain.Credential
	channels    []domain.ChannelID
	logger      *slog.Logger
	deps        dependencies
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(viper.New(), opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.messagesPath != "" {
		cfg.MessagesFile = opts.messagesPath
	}

	return cfg, nil
}

func wireApp(ctx context.Context, opts *rootOptions, deps dependencies, logOutput io.Writer) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	secrets, err := deps.secrets()
	if err != nil {
		return nil, domain.ConfigError("wire secrets", err)
	}
	credentials, err := application.ResolveCredentials(ctx, cfg.Tokens, secrets)
	if err != nil {
		return nil, err
	}

	channels := make([]domain.ChannelID, 0, len(cfg.ChannelIDs))
	for _, id := range cfg.ChannelIDs {
		channels = append(channels, domain.ChannelID(id))
	}

	return &app{
		cfg:         cfg,
		credentials: credentials,
		channels:    channels,
		logger:      logger,
		deps:        deps,
	}, nil
}

func (a *app) retryPolicy() application.RetryPolicy {
	policy := application.RetryPolicy{
		MaxAttempts: a.cfg.Retry.MaxAttempts,
		BaseDelay:   a.cfg.RetryBaseDelay(),
		Sleeper:     a.deps.sleeper,
		Logger:      a.logger,
	}
	if a.cfg.Retry.Backoff == config.BackoffExponential {
		policy.BackOff = application.ExponentialBackOff
	}
	return policy
}

func (a *app) replyGenerator(ctx context.Context) (*application.ReplyGenerator, error) {
	completer, err := a.deps.newCompleter(ctx, completion.Settings{
		Provider: a.cfg.AI.Provider,
		Model:    a.cfg.AI.Model,
		APIKey:   a.cfg.AIKey(),
		BaseURL:  a.cfg.AI.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	if completer == nil {
		a.logger.Info("ai replies disabled, using fallback replies only")
	}

	params := ports.GenerationParams{
		MaxOutputTokens: a.cfg.AI.MaxOutputTokens,
		Temperature:     a.cfg.AI.Temperature,
	}
	return application.NewReplyGenerator(completer, params, nil, a.logger).WithTimeout(a.cfg.AITimeout()), nil
}

func (a *app) scheduler(ctx context.Context, messages []string, observer application.Observer) (*application.Scheduler, error) {
	replies, err := a.replyGenerator(ctx)
	if err != nil {
		return nil, err
	}

	opts := []application.SchedulerOption{
		application.WithSleeper(a.deps.sleeper),
		application.WithLogger(a.logger),
	}
	if observer != nil {
		opts = append(opts, application.WithObserver(observer))
	}

	return application.NewScheduler(application.SchedulerConfig{
		Credentials: a.credentials,
		Channels:    a.channels,
		Messages:    messages,
		Delays: application.Delays{
			Token:   a.cfg.TokenDelayDuration(),
			Message: a.cfg.MessageDelayDuration(),
			Restart: a.cfg.RestartDelayDuration(),
		},
		ReplyProbability: a.cfg.ReplyProbability,
		RecentLimit:      a.cfg.RecentLimit,
		Session: application.SessionOptions{
			Retry:          a.retryPolicy(),
			ReplyScanLimit: a.cfg.ReplyScanLimit,
			Logger:         a.logger,
		},
	}, a.deps.platforms, replies, opts...)
}
