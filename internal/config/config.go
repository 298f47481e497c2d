// Package config loads the bot configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Category is one entry of the fixed category catalog: a display name and the
// Notion page ID of the category it maps to. Entries with an empty PageID are
// kept here and filtered out at render time.
type Category struct {
	Name   string
	PageID string
}

// Config holds everything the bot needs at startup. Values come from the
// environment; Validate only checks presence, the two upstream APIs do the
// real credential validation.
type Config struct {
	NotionToken      string
	NotionDatabaseID string
	TelegramToken    string
	WebhookURL       string
	Port             string

	// Property display names in the Notion transactions database.
	TitleProperty    string
	DateProperty     string
	AmountProperty   string
	CategoryProperty string

	// Categories in display order. Order is fixed so button layout is stable
	// between review batches.
	Categories []Category
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		NotionToken:      os.Getenv("NOTION_API_TOKEN"),
		NotionDatabaseID: os.Getenv("NOTION_DB_ID"),
		TelegramToken:    firstEnv("BOT_TOKEN", "TELEGRAM_BOT_TOKEN"),
		WebhookURL:       os.Getenv("WEBHOOK_URL"),
		Port:             defaultEnv("PORT", "5001"),

		TitleProperty:    defaultEnv("NOTION_TITLE_PROP", "Expense Record"),
		DateProperty:     defaultEnv("NOTION_DATE_PROP", "Date"),
		AmountProperty:   defaultEnv("NOTION_AMOUNT_PROP", "Amount"),
		CategoryProperty: defaultEnv("NOTION_CATEGORY_PROP", "Expense Type"),

		Categories: []Category{
			{Name: "Food", PageID: os.Getenv("FOOD_CAT_ID")},
			{Name: "Shopping", PageID: os.Getenv("SHOPPING_CAT_ID")},
			{Name: "Transport", PageID: os.Getenv("TRANSPORT_CAT_ID")},
			{Name: "Work & Learning", PageID: os.Getenv("WORK_LEARNING_CAT_ID")},
			{Name: "Subscription", PageID: os.Getenv("SUBSCRIPTION_CAT_ID")},
			{Name: "Buffer", PageID: os.Getenv("BUFFER_CAT_ID")},
			{Name: "Investment", PageID: os.Getenv("INVT_CAT_ID")},
		},
	}
}

// Validate checks that the required values are present and that the webhook
// URL has the shape Telegram accepts (https, ending in /webhook).
func (c *Config) Validate() error {
	if c.NotionToken == "" {
		return fmt.Errorf("missing NOTION_API_TOKEN")
	}
	if c.NotionDatabaseID == "" {
		return fmt.Errorf("missing NOTION_DB_ID")
	}
	if c.TelegramToken == "" {
		return fmt.Errorf("missing BOT_TOKEN / TELEGRAM_BOT_TOKEN")
	}
	if c.WebhookURL == "" {
		return fmt.Errorf("missing WEBHOOK_URL")
	}
	if !strings.HasPrefix(c.WebhookURL, "https://") || !strings.HasSuffix(c.WebhookURL, "/webhook") {
		return fmt.Errorf("WEBHOOK_URL must be an https URL ending in /webhook, got %q", c.WebhookURL)
	}
	return nil
}

// ConfiguredCategories returns the catalog entries that actually have a page
// ID configured.
func (c *Config) ConfiguredCategories() []Category {
	var out []Category
	for _, cat := range c.Categories {
		if cat.PageID != "" {
			out = append(out, cat)
		}
	}
	return out
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func defaultEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
