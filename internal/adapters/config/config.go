package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultPath         = "config/config.json"
	DefaultMessagesFile = "config/chat.txt"
	EnvPrefix           = "AUTOCHAT"

	// Discord caps a message page at 100.
	maxPageLimit = 100

	// Delay defaults in seconds. An explicit 0 also means the default.
	defaultTokenDelay   = 5
	defaultMessageDelay = 20
	defaultRestartDelay = 30
	defaultAITimeout    = 20
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderNone      = "none"
)

const (
	BackoffConstant    = "constant"
	BackoffExponential = "exponential"
)

var (
	providers = []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderNone}
	backoffs  = []string{BackoffConstant, BackoffExponential}
	logLevels = []string{"debug", "info", "warn", "error"}
)

type AI struct {
	Provider        string  `mapstructure:"provider" toml:"provider"`
	Model           string  `mapstructure:"model" toml:"model,omitempty"`
	APIKey          string  `mapstructure:"apiKey" toml:"api_key,omitempty"`
	BaseURL         string  `mapstructure:"baseUrl" toml:"base_url,omitempty"`
	MaxOutputTokens int     `mapstructure:"maxOutputTokens" toml:"max_output_tokens"`
	Temperature     float64 `mapstructure:"temperature" toml:"temperature"`
	// TimeoutSeconds bounds one completion request.
	TimeoutSeconds float64 `mapstructure:"timeoutSeconds" toml:"timeout_seconds"`
}

type Retry struct {
	MaxAttempts int    `mapstructure:"maxAttempts" toml:"max_attempts"`
	BaseDelayMs int    `mapstructure:"baseDelayMs" toml:"base_delay_ms"`
	Backoff     string `mapstructure:"backoff" toml:"backoff"`
}

// Config is the effective configuration after defaults, file and environment
// have been merged. Delays are in seconds.
type Config struct {
	Tokens           []string `mapstructure:"tokens" toml:"tokens"`
	ChannelIDs       []string `mapstructure:"channelIds" toml:"channel_ids"`
	GoogleAPIKey     string   `mapstructure:"googleApiKey" toml:"google_api_key,omitempty"`
	TokenDelay       float64  `mapstructure:"tokenDelay" toml:"token_delay"`
	MessageDelay     float64  `mapstructure:"messageDelay" toml:"message_delay"`
	RestartDelay     float64  `mapstructure:"restartDelay" toml:"restart_delay"`
	MessagesFile     string   `mapstructure:"messagesFile" toml:"messages_file"`
	ReplyProbability float64  `mapstructure:"replyProbability" toml:"reply_probability"`
	RecentLimit      int      `mapstructure:"recentLimit" toml:"recent_limit"`
	ReplyScanLimit   int      `mapstructure:"replyScanLimit" toml:"reply_scan_limit"`
	LogLevel         string   `mapstructure:"logLevel" toml:"log_level"`
	MetricsAddr      string   `mapstructure:"metricsAddr" toml:"metrics_addr,omitempty"`
	AI               AI       `mapstructure:"ai" toml:"ai"`
	Retry            Retry    `mapstructure:"retry" toml:"retry"`

	// Path is the file the configuration was read from.
	Path string `mapstructure:"-" toml:"-"`
}

// ApplyDefaults registers every key so environment overrides resolve even
// when the file omits them.
func ApplyDefaults(v *viper.Viper) {
	v.SetDefault("tokens", []string{})
	v.SetDefault("channelIds", []string{})
	v.SetDefault("googleApiKey", "")
	v.SetDefault("tokenDelay", defaultTokenDelay)
	v.SetDefault("messageDelay", defaultMessageDelay)
	v.SetDefault("restartDelay", defaultRestartDelay)
	v.SetDefault("messagesFile", DefaultMessagesFile)
	v.SetDefault("replyProbability", 0.8)
	v.SetDefault("recentLimit", 20)
	v.SetDefault("replyScanLimit", 100)
	v.SetDefault("logLevel", "info")
	v.SetDefault("metricsAddr", "")
	v.SetDefault("ai.provider", ProviderGemini)
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.baseUrl", "")
	v.SetDefault("ai.maxOutputTokens", 60)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.timeoutSeconds", defaultAITimeout)
	v.SetDefault("retry.maxAttempts", 3)
	v.SetDefault("retry.baseDelayMs", 1000)
	v.SetDefault("retry.backoff", BackoffConstant)
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return domain.ConfigError("load dotenv", fmt.Errorf("%s: %w", path, err))
}

// Load reads the configuration file at path into v, applies AUTOCHAT_*
// environment overrides and validates the result.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	if path == "" {
		path = DefaultPath
	}

	ApplyDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, domain.ConfigError("read config", fmt.Errorf("%s: %w", path, err))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, domain.ConfigError("decode config", fmt.Errorf("%s: %w", path, err))
	}
	cfg.Path = v.ConfigFileUsed()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) normalize() {
	c.Tokens = trimAll(c.Tokens)
	c.ChannelIDs = trimAll(c.ChannelIDs)
	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	c.Retry.Backoff = strings.ToLower(strings.TrimSpace(c.Retry.Backoff))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	// Zero delays would let a run of rejected credentials hammer the API.
	c.TokenDelay = orDefault(c.TokenDelay, defaultTokenDelay)
	c.MessageDelay = orDefault(c.MessageDelay, defaultMessageDelay)
	c.RestartDelay = orDefault(c.RestartDelay, defaultRestartDelay)
	c.AI.TimeoutSeconds = orDefault(c.AI.TimeoutSeconds, defaultAITimeout)
}

func orDefault(value, fallback float64) float64 {
	if value == 0 {
		return fallback
	}
	return value
}

// Validate reports the first problem found as a ConfigError.
func (c Config) Validate() error {
	var problem error
	switch {
	case len(c.Tokens) == 0:
		problem = errors.New("tokens must list at least one credential")
	case slices.Contains(c.Tokens, ""):
		problem = errors.New("tokens must not contain empty entries")
	case len(c.ChannelIDs) == 0:
		problem = errors.New("channelIds must list at least one channel")
	case slices.Contains(c.ChannelIDs, ""):
		problem = errors.New("channelIds must not contain empty entries")
	case c.TokenDelay < 0 || c.MessageDelay < 0 || c.RestartDelay < 0:
		problem = errors.New("delays must not be negative")
	case c.ReplyProbability < 0 || c.ReplyProbability > 1:
		problem = fmt.Errorf("replyProbability %v out of range [0,1]", c.ReplyProbability)
	case c.RecentLimit < 1 || c.RecentLimit > maxPageLimit:
		problem = fmt.Errorf("recentLimit %d out of range [1,%d]", c.RecentLimit, maxPageLimit)
	case c.ReplyScanLimit < 1 || c.ReplyScanLimit > maxPageLimit:
		problem = fmt.Errorf("replyScanLimit %d out of range [1,%d]", c.ReplyScanLimit, maxPageLimit)
	case strings.TrimSpace(c.MessagesFile) == "":
		problem = errors.New("messagesFile is empty")
	case !slices.Contains(logLevels, c.LogLevel):
		problem = fmt.Errorf("logLevel %q is not one of %s", c.LogLevel, strings.Join(logLevels, ", "))
	case !slices.Contains(providers, c.AI.Provider):
		problem = fmt.Errorf("ai.provider %q is not one of %s", c.AI.Provider, strings.Join(providers, ", "))
	case c.AI.Provider != ProviderNone && c.AIKey() == "":
		problem = fmt.Errorf("an API key is required for ai.provider %q", c.AI.Provider)
	case c.AI.MaxOutputTokens < 1:
		problem = errors.New("ai.maxOutputTokens must be positive")
	case c.AI.TimeoutSeconds < 0:
		problem = errors.New("ai.timeoutSeconds must not be negative")
	case c.AI.Temperature < 0 || c.AI.Temperature > 2:
		problem = fmt.Errorf("ai.temperature %v out of range [0,2]", c.AI.Temperature)
	case c.Retry.MaxAttempts < 1:
		problem = errors.New("retry.maxAttempts must be at least 1")
	case c.Retry.BaseDelayMs < 0:
		problem = errors.New("retry.baseDelayMs must not be negative")
	case !slices.Contains(backoffs, c.Retry.Backoff):
		problem = fmt.Errorf("retry.backoff %q is not one of %s", c.Retry.Backoff, strings.Join(backoffs, ", "))
	}

	if problem != nil {
		return domain.ConfigError("validate config", problem)
	}
	return nil
}

// AIKey is ai.apiKey, or googleApiKey for the gemini provider.
func (c Config) AIKey() string {
	if key := strings.TrimSpace(c.AI.APIKey); key != "" {
		return key
	}
	if c.AI.Provider == ProviderGemini {
		return strings.TrimSpace(c.GoogleAPIKey)
	}
	return ""
}

func (c Config) TokenDelayDuration() time.Duration   { return seconds(c.TokenDelay) }
func (c Config) MessageDelayDuration() time.Duration { return seconds(c.MessageDelay) }
func (c Config) RestartDelayDuration() time.Duration { return seconds(c.RestartDelay) }

func (c Config) AITimeout() time.Duration { return seconds(c.AI.TimeoutSeconds) }

func (c Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.Retry.BaseDelayMs) * time.Millisecond
}

func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
