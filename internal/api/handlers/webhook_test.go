package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

type mockOrchestrator struct {
	updates []tgbotapi.Update
}

func (m *mockOrchestrator) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	m.updates = append(m.updates, update)
}

func TestReceive_ForwardsUpdate(t *testing.T) {
	orch := &mockOrchestrator{}
	handler := NewWebhookHandler(orch, zerolog.Nop())

	body := `{"update_id":42,"message":{"message_id":1,"text":"/search","chat":{"id":7}}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.Receive(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if len(orch.updates) != 1 {
		t.Fatalf("expected 1 forwarded update, got %d", len(orch.updates))
	}
	update := orch.updates[0]
	if update.UpdateID != 42 {
		t.Errorf("UpdateID = %d, want 42", update.UpdateID)
	}
	if update.Message == nil || update.Message.Chat.ID != 7 {
		t.Errorf("unexpected message: %+v", update.Message)
	}
}

func TestReceive_RejectsNonJSON(t *testing.T) {
	orch := &mockOrchestrator{}
	handler := NewWebhookHandler(orch, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()

	handler.Receive(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if len(orch.updates) != 0 {
		t.Error("non-JSON request must not reach the orchestrator")
	}
}

func TestReceive_RejectsMalformedBody(t *testing.T) {
	orch := &mockOrchestrator{}
	handler := NewWebhookHandler(orch, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.Receive(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if len(orch.updates) != 0 {
		t.Error("malformed request must not reach the orchestrator")
	}
}

func TestHealth(t *testing.T) {
	handler := NewWebhookHandler(&mockOrchestrator{}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("body = %q, want OK", rec.Body.String())
	}
}
