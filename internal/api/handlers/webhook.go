// Package handlers contains the HTTP handlers of the webhook server.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/dvloznov/expense-bot/internal/api/middleware"
)

// UpdateHandler consumes one inbound Telegram update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

// WebhookHandler accepts updates pushed by Telegram and forwards them into
// the orchestrator.
type WebhookHandler struct {
	orchestrator UpdateHandler
	log          zerolog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(orchestrator UpdateHandler, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		orchestrator: orchestrator,
		log:          log,
	}
}

// Receive handles POST /webhook. Telegram only needs a 200; the update is
// processed before responding so one inbound event is handled at a time.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		middleware.WriteError(w, http.StatusForbidden, "invalid content type")
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.log.Warn().Err(err).Msg("Failed to decode update")
		middleware.WriteError(w, http.StatusForbidden, "invalid update payload")
		return
	}

	h.orchestrator.HandleUpdate(r.Context(), update)
	w.WriteHeader(http.StatusOK)
}

// Health handles GET / for liveness probes.
func (h *WebhookHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
