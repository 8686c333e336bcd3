package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Telegram: TelegramConfig{
			Token:         "123:abc",
			WebhookListen: ":8080",
			WebhookPath:   "/webhook",
		},
		Manager: ManagerConfig{
			Email:    "manager@example.com",
			SMTPHost: "localhost",
			SMTPPort: 25,
			SMTPFrom: "no-reply@example.com",
		},
		Storage:           StorageConfig{DatabaseDSN: "host=localhost dbname=bot"},
		ConditionsFileURL: "https://example.com/terms.txt",
		TurnTimeout:       30 * time.Second,
	}
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsBrokenConfigs(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"empty token", func(c *Config) { c.Telegram.Token = " " }, "TELEGRAM_BOT_TOKEN"},
		{"bad webhook path", func(c *Config) { c.Telegram.WebhookPath = "webhook" }, "WEBHOOK_PATH"},
		{"empty dsn", func(c *Config) { c.Storage.DatabaseDSN = "" }, "DATABASE_DSN"},
		{"bad email", func(c *Config) { c.Manager.Email = "nope" }, "MANAGER_EMAIL"},
		{"bad smtp port", func(c *Config) { c.Manager.SMTPPort = 0 }, "SMTP_PORT"},
		{"log enabled without path", func(c *Config) {
			c.ApplicationLog.Enabled = true
			c.ApplicationLog.Path = ""
		}, "APPLICATIONS_LOG_FILE"},
		{"zero timeout", func(c *Config) { c.TurnTimeout = 0 }, "TURN_TIMEOUT"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("expected error mentioning %s, got %v", tc.wantSub, err)
			}
		})
	}
}

func TestLoadTextsDefaultsWithoutFile(t *testing.T) {
	texts, err := LoadTexts("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if texts.Greeting != DefaultTexts().Greeting {
		t.Fatalf("expected defaults, got %q", texts.Greeting)
	}
}

func TestLoadTextsOverridesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texts.yaml")
	body := "greeting: \"Привет из теста\"\nask_name: \"Как вас зовут?\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	texts, err := LoadTexts(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if texts.Greeting != "Привет из теста" || texts.AskName != "Как вас зовут?" {
		t.Fatalf("overrides not applied: %+v", texts)
	}
	if texts.NotUnderstood != DefaultTexts().NotUnderstood {
		t.Fatalf("untouched fields must keep defaults, got %q", texts.NotUnderstood)
	}
}

func TestLoadTextsMissingFileErrors(t *testing.T) {
	if _, err := LoadTexts("/nonexistent/texts.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
