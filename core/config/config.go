package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"TELEGRAM_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies the inbound update endpoint settings.
type WebhookConfig struct {
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
	// APIKey is the shared secret carried in the apikey query parameter.
	// Requests with a wrong or missing key get an empty 404.
	APIKey string `yaml:"apikey" envconfig:"APIKEY"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// BotConfig holds relay-bot specific settings.
type BotConfig struct {
	// JoinLink seeds the invite-link cell until the first rotation.
	JoinLink string `yaml:"join_link" envconfig:"JOIN_LINK"`
	// TestMode selects the test chat set instead of the production one.
	TestMode bool `yaml:"test_mode" envconfig:"TEST_MODE"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

// RateLimitConfig holds settings for per-user rate limiting.
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// ChatSet names the chats the bot relays between.
type ChatSet struct {
	// Main is the public group where announcements appear.
	Main int64
	// NSFW is the age-gated channel receiving forwarded media.
	NSFW int64
	// Invite is the chat invite links are exported for.
	Invite int64
	// Admin is the operations chat allowed to rotate invite links.
	Admin int64
}

// Chat identifiers of the known deployments.
const (
	chatFurcast        int64 = -1001462860928
	chatFurcastNSFW    int64 = -1001174373210
	chatXBNChatops     int64 = -1001498895240
	chatRileyTestChan  int64 = -1001263448135
	chatRileyTestGroup int64 = -1001422900025
)

// Config aggregates the whole bot configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	Bot       BotConfig       `yaml:"bot"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// Chats returns the chat set matching the configured mode.
func (c *Config) Chats() ChatSet {
	if c != nil && c.Bot.TestMode {
		return ChatSet{
			Main:   chatRileyTestGroup,
			NSFW:   chatRileyTestChan,
			Invite: chatRileyTestChan,
			Admin:  chatXBNChatops,
		}
	}
	return ChatSet{
		Main:   chatFurcast,
		NSFW:   chatFurcastNSFW,
		Invite: chatFurcastNSFW,
		Admin:  chatXBNChatops,
	}
}

// Load reads configuration from an optional YAML file and the environment.
// A .env file in the working directory is honoured when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}
	if cfg.Webhook.APIKey == "" {
		return fmt.Errorf("webhook apikey is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			cfg.Webhook.Listen = "0.0.0.0"
		}
		if cfg.Webhook.Port <= 0 {
			cfg.Webhook.Port = 8080
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	return nil
}
