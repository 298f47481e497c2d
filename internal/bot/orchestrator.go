// Package bot contains the Telegram-facing half of the categorisation flow:
// the transport wrapper, message formatting and the session orchestrator that
// drives review batches and button taps.
package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/dvloznov/expense-bot/internal/config"
	"github.com/dvloznov/expense-bot/internal/session"
)

const (
	// callbackPrefix marks callback data minted by this bot.
	callbackPrefix = "SET:"

	// reviewLimit is the maximum number of records fetched per review batch.
	reviewLimit = 50

	// buttonsPerRow is the inline keyboard layout width.
	buttonsPerRow = 2
)

const (
	msgWelcome     = "📈 Welcome! Send /search to assign categories to uncategorised transactions."
	msgLoading     = "🔎 Gathering transactions, please wait…"
	msgNothingToDo = "✅ Nothing to categorise."
	msgFetchFailed = "❌ Could not fetch transactions. Please try again."
	msgCategorised = "✅ Categorised."
	noteUpdated    = "Updated ✅"
	noteFailed     = "Update failed ❌"
	noteExpired    = "Invalid/expired button."
	noteNoCatalog  = "No categories configured."
	noteIgnored    = "Ignoring."
	labelNoCatalog = "No categories configured"
)

// Orchestrator drives one conversation's review flow: cleaning up the
// previous batch, listing uncategorised records with category buttons, and
// applying the category a tapped button stands for. All state lives in the
// injected ticket store and message log.
type Orchestrator struct {
	transport Transport
	fetcher   Fetcher
	updater   Updater
	tickets   session.TicketStore
	messages  session.MessageLog
	catalog   []config.Category
	log       zerolog.Logger
}

// NewOrchestrator creates a new orchestrator.
func NewOrchestrator(transport Transport, fetcher Fetcher, updater Updater, tickets session.TicketStore, messages session.MessageLog, catalog []config.Category, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		transport: transport,
		fetcher:   fetcher,
		updater:   updater,
		tickets:   tickets,
		messages:  messages,
		catalog:   catalog,
		log:       log,
	}
}

// HandleUpdate routes one inbound Telegram update. Unrecognized updates are
// dropped; every failure is scoped to the one update that caused it.
func (o *Orchestrator) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		o.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		switch update.Message.Command() {
		case "start":
			o.handleStart(update.Message.Chat.ID)
		case "search":
			o.handleReview(ctx, update.Message.Chat.ID)
		}
	}
}

func (o *Orchestrator) handleStart(chatID int64) {
	if _, err := o.transport.SendMessage(chatID, msgWelcome, nil); err != nil {
		o.log.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to send welcome message")
	}
}

// handleReview runs one review batch: delete the previous batch's messages,
// show a loading placeholder, fetch, then either report the outcome on the
// placeholder or turn it into a header followed by one message per record.
func (o *Orchestrator) handleReview(ctx context.Context, chatID int64) {
	// Best-effort cleanup of the previous batch. A failed delete must not
	// block the remaining deletes or the new batch.
	for _, messageID := range o.messages.DrainAndClear(chatID) {
		if err := o.transport.DeleteMessage(chatID, messageID); err != nil {
			o.log.Warn().
				Err(err).
				Int64("chat_id", chatID).
				Int("message_id", messageID).
				Msg("Failed to delete old message")
		}
	}

	loadingID, err := o.transport.SendMessage(chatID, msgLoading, nil)
	if err != nil {
		o.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send loading message")
		return
	}
	o.messages.RecordSent(chatID, loadingID)

	records, err := o.fetcher.FetchUncategorised(ctx, reviewLimit)
	if err != nil {
		o.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to fetch uncategorised records")
		o.editBestEffort(chatID, loadingID, msgFetchFailed)
		return
	}

	if len(records) == 0 {
		o.editBestEffort(chatID, loadingID, msgNothingToDo)
		return
	}

	o.editBestEffort(chatID, loadingID, fmt.Sprintf("Found %d uncategorised record(s):", len(records)))

	for _, rec := range records {
		keyboard, err := o.keyboardFor(rec.ID)
		if err != nil {
			o.log.Error().Err(err).Str("record_id", rec.ID).Msg("Failed to build keyboard")
			continue
		}

		messageID, err := o.transport.SendMessage(chatID, formatRecord(rec), keyboard)
		if err != nil {
			o.log.Warn().
				Err(err).
				Int64("chat_id", chatID).
				Str("record_id", rec.ID).
				Msg("Failed to send record message")
			continue
		}
		o.messages.RecordSent(chatID, messageID)
	}
}

// handleCallback resolves a button tap. The tap is acknowledged on every
// path so the client's pending indicator always stops.
func (o *Orchestrator) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if !strings.HasPrefix(cb.Data, callbackPrefix) || cb.Message == nil {
		o.answerBestEffort(cb.ID, noteIgnored, false)
		return
	}
	key := strings.TrimPrefix(cb.Data, callbackPrefix)

	ticket, err := o.tickets.Resolve(key)
	switch {
	case errors.Is(err, session.ErrNoCategories):
		o.answerBestEffort(cb.ID, noteNoCatalog, true)
		return
	case errors.Is(err, session.ErrTicketNotFound):
		// Routine: a double tap or a button from before a restart.
		o.answerBestEffort(cb.ID, noteExpired, false)
		return
	case err != nil:
		o.log.Error().Err(err).Msg("Ticket resolution failed")
		o.answerBestEffort(cb.ID, noteExpired, false)
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	if err := o.updater.ApplyCategory(ctx, ticket.RecordID, ticket.CategoryID); err != nil {
		o.log.Error().
			Err(err).
			Str("record_id", ticket.RecordID).
			Str("category_id", ticket.CategoryID).
			Msg("Failed to apply category")
		o.answerBestEffort(cb.ID, noteFailed, false)

		detail := fmt.Sprintf("❌ Failed: <code>%s</code>", html.EscapeString(err.Error()))
		errID, err := o.transport.SendMessage(chatID, detail, nil)
		if err != nil {
			o.log.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to send error detail")
			return
		}
		o.messages.RecordSent(chatID, errID)
		return
	}

	o.answerBestEffort(cb.ID, noteUpdated, false)

	// Remove the keyboard first so the message cannot be tapped again, then
	// annotate the record text. Both are cosmetic; the record is already
	// updated in Notion.
	if err := o.transport.ClearReplyMarkup(chatID, messageID); err != nil {
		o.log.Warn().
			Err(err).
			Int64("chat_id", chatID).
			Int("message_id", messageID).
			Msg("Failed to remove keyboard")
	}
	if err := o.transport.EditMessageText(chatID, messageID, cb.Message.Text+"\n\n"+msgCategorised); err != nil {
		// Never drop the feedback: fall back to a standalone confirmation.
		if _, err := o.transport.SendMessage(chatID, msgCategorised, nil); err != nil {
			o.log.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to confirm categorisation")
		}
	}
}

// keyboardFor builds one button per configured category, each carrying a
// freshly minted ticket, laid out two per row. A catalog with no usable
// entries renders a single disabled placeholder button.
func (o *Orchestrator) keyboardFor(recordID string) (*tgbotapi.InlineKeyboardMarkup, error) {
	var buttons []tgbotapi.InlineKeyboardButton
	for _, cat := range o.catalog {
		if cat.PageID == "" {
			continue
		}
		key, err := o.tickets.Mint(recordID, cat.PageID)
		if err != nil {
			return nil, fmt.Errorf("keyboard for %s: %w", recordID, err)
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(cat.Name, callbackPrefix+key))
	}
	if len(buttons) == 0 {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(labelNoCatalog, callbackPrefix+session.DisabledKey))
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(buttons); i += buttonsPerRow {
		end := i + buttonsPerRow
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[i:end])
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &keyboard, nil
}

func (o *Orchestrator) editBestEffort(chatID int64, messageID int, text string) {
	if err := o.transport.EditMessageText(chatID, messageID, text); err != nil {
		o.log.Warn().
			Err(err).
			Int64("chat_id", chatID).
			Int("message_id", messageID).
			Msg("Failed to edit message")
	}
}

func (o *Orchestrator) answerBestEffort(callbackID, text string, showAlert bool) {
	if err := o.transport.AnswerCallback(callbackID, text, showAlert); err != nil {
		o.log.Warn().Err(err).Str("callback_id", callbackID).Msg("Failed to answer callback")
	}
}
