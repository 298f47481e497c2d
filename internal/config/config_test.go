package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		NotionToken:      "ntn_test",
		NotionDatabaseID: "db123",
		TelegramToken:    "123:abc",
		WebhookURL:       "https://example.com/webhook",
		Port:             "5001",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing notion token",
			mutate:  func(c *Config) { c.NotionToken = "" },
			wantErr: true,
		},
		{
			name:    "missing database id",
			mutate:  func(c *Config) { c.NotionDatabaseID = "" },
			wantErr: true,
		},
		{
			name:    "missing telegram token",
			mutate:  func(c *Config) { c.TelegramToken = "" },
			wantErr: true,
		},
		{
			name:    "missing webhook url",
			mutate:  func(c *Config) { c.WebhookURL = "" },
			wantErr: true,
		},
		{
			name:    "webhook url not https",
			mutate:  func(c *Config) { c.WebhookURL = "http://example.com/webhook" },
			wantErr: true,
		},
		{
			name:    "webhook url wrong path",
			mutate:  func(c *Config) { c.WebhookURL = "https://example.com/updates" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfiguredCategories(t *testing.T) {
	cfg := validConfig()
	cfg.Categories = []Category{
		{Name: "Food", PageID: "food-page"},
		{Name: "Shopping", PageID: ""},
		{Name: "Transport", PageID: "transport-page"},
	}

	got := cfg.ConfiguredCategories()
	if len(got) != 2 {
		t.Fatalf("expected 2 configured categories, got %d", len(got))
	}
	if got[0].Name != "Food" || got[1].Name != "Transport" {
		t.Errorf("unexpected category order: %+v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NOTION_API_TOKEN", "tok")
	t.Setenv("NOTION_DB_ID", "db")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tg")
	t.Setenv("WEBHOOK_URL", "https://example.com/webhook")

	cfg := Load()

	if cfg.TelegramToken != "tg" {
		t.Errorf("expected TELEGRAM_BOT_TOKEN fallback, got %q", cfg.TelegramToken)
	}
	if cfg.Port != "5001" {
		t.Errorf("expected default port 5001, got %q", cfg.Port)
	}
	if cfg.TitleProperty != "Expense Record" || cfg.CategoryProperty != "Expense Type" {
		t.Errorf("unexpected default property names: %q, %q", cfg.TitleProperty, cfg.CategoryProperty)
	}
	if len(cfg.Categories) != 7 {
		t.Errorf("expected 7 catalog entries, got %d", len(cfg.Categories))
	}
}

func TestLoadPrefersBotToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "primary")
	t.Setenv("TELEGRAM_BOT_TOKEN", "secondary")

	cfg := Load()
	if cfg.TelegramToken != "primary" {
		t.Errorf("expected BOT_TOKEN to win, got %q", cfg.TelegramToken)
	}
}
