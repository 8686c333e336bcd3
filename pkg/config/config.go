package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// TelegramConfig holds the bot credential and webhook surface.
type TelegramConfig struct {
	Token         string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	WebhookURL    string `envconfig:"WEBHOOK_URL"`
	WebhookListen string `envconfig:"WEBHOOK_LISTEN" default:":8080"`
	WebhookPath   string `envconfig:"WEBHOOK_PATH" default:"/webhook"`
	WebhookSecret string `envconfig:"WEBHOOK_SECRET"`
}

// ManagerConfig describes where completed submissions are forwarded.
type ManagerConfig struct {
	Email    string `envconfig:"MANAGER_EMAIL" required:"true"`
	SMTPHost string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort int    `envconfig:"SMTP_PORT" default:"25"`
	SMTPFrom string `envconfig:"SMTP_FROM" default:"no-reply@localhost"`
	SMTPUser string `envconfig:"SMTP_USER"`
	SMTPPass string `envconfig:"SMTP_PASSWORD"`
}

// StorageConfig selects the session store backing.
type StorageConfig struct {
	DatabaseDSN string `envconfig:"DATABASE_DSN" required:"true"`
}

// ApplicationLogConfig gates the optional submissions log file.
type ApplicationLogConfig struct {
	Enabled bool   `envconfig:"SAVE_APPLICATIONS_TO_FILE" default:"false"`
	Path    string `envconfig:"APPLICATIONS_LOG_FILE" default:"applications.log"`
}

// Config aggregates every option the bot reads from the environment.
type Config struct {
	Telegram          TelegramConfig
	Manager           ManagerConfig
	Storage           StorageConfig
	ApplicationLog    ApplicationLogConfig
	ConditionsFileURL string        `envconfig:"CONDITIONS_FILE_URL" required:"true"`
	TextsFile         string        `envconfig:"TEXTS_FILE"`
	TurnTimeout       time.Duration `envconfig:"TURN_TIMEOUT" default:"30s"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN must not be empty")
	}
	if !strings.HasPrefix(c.Telegram.WebhookPath, "/") {
		return fmt.Errorf("WEBHOOK_PATH must start with '/', got %q", c.Telegram.WebhookPath)
	}
	if strings.TrimSpace(c.Storage.DatabaseDSN) == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if !strings.Contains(c.Manager.Email, "@") {
		return fmt.Errorf("MANAGER_EMAIL %q does not look like an address", c.Manager.Email)
	}
	if c.Manager.SMTPPort <= 0 || c.Manager.SMTPPort > 65535 {
		return fmt.Errorf("SMTP_PORT must be in 1..65535, got %d", c.Manager.SMTPPort)
	}
	if c.ApplicationLog.Enabled && strings.TrimSpace(c.ApplicationLog.Path) == "" {
		return fmt.Errorf("APPLICATIONS_LOG_FILE must be set when SAVE_APPLICATIONS_TO_FILE is enabled")
	}
	if c.TurnTimeout <= 0 {
		return fmt.Errorf("TURN_TIMEOUT must be positive, got %s", c.TurnTimeout)
	}
	return nil
}
