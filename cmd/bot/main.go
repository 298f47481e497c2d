package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/dvloznov/expense-bot/internal/api/handlers"
	"github.com/dvloznov/expense-bot/internal/api/middleware"
	"github.com/dvloznov/expense-bot/internal/bot"
	"github.com/dvloznov/expense-bot/internal/config"
	"github.com/dvloznov/expense-bot/internal/logger"
	"github.com/dvloznov/expense-bot/internal/notion"
	"github.com/dvloznov/expense-bot/internal/session/inmemory"
)

func main() {
	// Initialize logger
	log := logger.New()

	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()
	ctx = logger.WithContext(ctx, log)

	// Initialize Notion client and the fetch/update operations on top of it
	notionClient := notion.NewClient(cfg.NotionToken)
	props := notion.PropertyNames{
		Title:    cfg.TitleProperty,
		Date:     cfg.DateProperty,
		Amount:   cfg.AmountProperty,
		Category: cfg.CategoryProperty,
	}
	fetcher := notion.NewFetcher(notionClient, cfg.NotionDatabaseID, props)
	updater := notion.NewUpdater(notionClient, cfg.CategoryProperty)

	checkSchema(ctx, notionClient, cfg)

	// Initialize Telegram API client with a fixed network timeout
	api, err := tgbotapi.NewBotAPIWithClient(cfg.TelegramToken, tgbotapi.APIEndpoint, &http.Client{Timeout: 30 * time.Second})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram client")
	}
	log.Info().Str("username", api.Self.UserName).Msg("Authorized on Telegram")

	registerWebhook(api, cfg, log)

	// Wire the orchestrator with fresh in-memory session state
	tickets := inmemory.NewTicketStore()
	messages := inmemory.NewMessageLog()
	transport := bot.NewTelegram(api)
	orchestrator := bot.NewOrchestrator(transport, fetcher, updater, tickets, messages, cfg.ConfiguredCategories(), log)

	webhookHandler := handlers.NewWebhookHandler(orchestrator, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/" {
			webhookHandler.Health(w, r)
		} else {
			middleware.WriteError(w, http.StatusNotFound, "Not found")
		}
	})

	mux.HandleFunc("/webhook", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			// Carry the process logger into update handling
			webhookHandler.Receive(w, r.WithContext(logger.WithContext(r.Context(), log)))
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(mux),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting webhook server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// checkSchema fetches the database schema and warns about configured property
// names it cannot find. The bot still starts; the fetcher falls back to
// matching by property type.
func checkSchema(ctx context.Context, client *notion.Client, cfg *config.Config) {
	log := logger.FromContext(ctx)

	schemaCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := client.GetDatabase(schemaCtx, cfg.NotionDatabaseID)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to retrieve database schema")
		return
	}

	for _, name := range []string{cfg.DateProperty, cfg.AmountProperty, cfg.CategoryProperty} {
		if _, ok := db.Properties[name]; !ok {
			log.Warn().Str("property", name).Msg("Configured property not found in database schema")
		}
	}
}

// registerWebhook resets the Telegram webhook to this deployment's URL.
func registerWebhook(api *tgbotapi.BotAPI, cfg *config.Config, log zerolog.Logger) {
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Warn().Err(err).Msg("Failed to remove previous webhook")
	}

	webhook, err := tgbotapi.NewWebhook(cfg.WebhookURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid webhook URL")
	}
	if _, err := api.Request(webhook); err != nil {
		log.Fatal().Err(err).Msg("Failed to register webhook")
	}

	info, err := api.GetWebhookInfo()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to fetch webhook info")
		return
	}
	log.Info().
		Str("url", info.URL).
		Int("pending_updates", info.PendingUpdateCount).
		Str("last_error", info.LastErrorMessage).
		Msg("Webhook registered")
}
