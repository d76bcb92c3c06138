package config

import (
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	"github.com/skynet2/telegram-webhook-relay/pkg/common"
)

const placeholderToken = "YOUR_BOT_TOKEN_HERE"

type Config struct {
	BotToken       string        `env:"TELEGRAM_BOT_TOKEN" envDefault:"YOUR_BOT_TOKEN_HERE"`
	WebhookURL     string        `env:"WEBHOOK_URL" envDefault:"https://your-replit-app.replit.app/api/telegram/webhook"`
	Port           int           `env:"PORT" envDefault:"8080"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	WorkerPoolSize int           `env:"WORKER_POOL_SIZE" envDefault:"16"`
	PollTimeout    time.Duration `env:"POLL_TIMEOUT" envDefault:"60s"`
	WebhookTimeout time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"0s"`
	TelegramDebug  bool          `env:"TELEGRAM_DEBUG" envDefault:"false"`
}

// Load reads an optional .env file from the working directory, then the
// process environment, and validates the result.
func Load(dotEnvFiles ...string) (*Config, error) {
	if len(dotEnvFiles) == 0 {
		dotEnvFiles = []string{".env"}
	}

	for _, f := range dotEnvFiles {
		// a missing .env is the normal case in containers
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.BotToken == "" || c.BotToken == placeholderToken {
		return common.ErrMissingBotToken
	}

	parsed, err := url.Parse(c.WebhookURL)
	if err != nil {
		return errors.Wrapf(common.ErrInvalidWebhook, "%s: %v", c.WebhookURL, err)
	}

	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errors.Wrapf(common.ErrInvalidWebhook, "%s", c.WebhookURL)
	}

	if c.WorkerPoolSize <= 0 {
		return errors.Newf("WORKER_POOL_SIZE must be positive, got %d", c.WorkerPoolSize)
	}

	if c.PollTimeout < time.Second {
		return errors.Newf("POLL_TIMEOUT must be at least 1s, got %s", c.PollTimeout)
	}

	return nil
}
