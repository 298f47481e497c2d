package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram is the concrete implementation of Transport using the Bot API SDK.
// All outgoing text uses HTML parse mode.
type Telegram struct {
	api *tgbotapi.BotAPI
}

// NewTelegram creates a new Telegram transport over an authorized API client.
func NewTelegram(api *tgbotapi.BotAPI) *Telegram {
	return &Telegram{api: api}
}

// SendMessage sends a message and returns the new message's ID.
func (t *Telegram) SendMessage(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}

	sent, err := t.api.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("SendMessage: %w", err)
	}

	return sent.MessageID, nil
}

// EditMessageText replaces a sent message's text.
func (t *Telegram) EditMessageText(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML

	if _, err := t.api.Request(edit); err != nil {
		return fmt.Errorf("EditMessageText: %w", err)
	}

	return nil
}

// ClearReplyMarkup removes the inline keyboard from a sent message. The edit
// omits reply_markup entirely, which Telegram treats as removal.
func (t *Telegram) ClearReplyMarkup(chatID int64, messageID int) error {
	edit := tgbotapi.EditMessageReplyMarkupConfig{
		BaseEdit: tgbotapi.BaseEdit{
			ChatID:    chatID,
			MessageID: messageID,
		},
	}

	if _, err := t.api.Request(edit); err != nil {
		return fmt.Errorf("ClearReplyMarkup: %w", err)
	}

	return nil
}

// DeleteMessage deletes a sent message.
func (t *Telegram) DeleteMessage(chatID int64, messageID int) error {
	if _, err := t.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("DeleteMessage: %w", err)
	}

	return nil
}

// AnswerCallback acknowledges a button tap.
func (t *Telegram) AnswerCallback(callbackID, text string, showAlert bool) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	callback.ShowAlert = showAlert

	if _, err := t.api.Request(callback); err != nil {
		return fmt.Errorf("AnswerCallback: %w", err)
	}

	return nil
}

// Ensure Telegram implements the Transport interface.
var _ Transport = (*Telegram)(nil)
