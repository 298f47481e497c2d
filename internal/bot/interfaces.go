package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dvloznov/expense-bot/internal/notion"
)

// Transport defines the chat operations the orchestrator needs.
// This interface enables mocking and testing of Telegram operations.
type Transport interface {
	// SendMessage sends a message into a chat, optionally with an inline
	// keyboard, and returns the sent message's ID.
	SendMessage(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (int, error)

	// EditMessageText replaces a sent message's text.
	EditMessageText(chatID int64, messageID int, text string) error

	// ClearReplyMarkup removes the inline keyboard from a sent message.
	ClearReplyMarkup(chatID int64, messageID int) error

	// DeleteMessage deletes a sent message.
	DeleteMessage(chatID int64, messageID int) error

	// AnswerCallback acknowledges a button tap so the client stops its
	// pending indicator. Must be called for every tap regardless of outcome.
	AnswerCallback(callbackID, text string, showAlert bool) error
}

// Fetcher retrieves uncategorised expense records from the backing store.
type Fetcher interface {
	FetchUncategorised(ctx context.Context, limit int) ([]notion.Record, error)
}

// Updater assigns a category to one expense record.
type Updater interface {
	ApplyCategory(ctx context.Context, recordID, categoryID string) error
}
