// Package session defines the in-flight conversation state the bot keeps
// between sending a batch of review messages and the user tapping a button:
// callback tickets and the per-chat log of sent messages.
package session

import "errors"

// DisabledKey is the reserved callback key carried by the placeholder button
// rendered when no categories are configured. It is never minted and never
// resolves to a ticket.
const DisabledKey = "disabled"

// ErrTicketNotFound indicates the callback key is unknown: it was already
// consumed, the process restarted, or the key never existed. This is a
// routine outcome, not an operational error.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrNoCategories indicates the tap came from the "no categories configured"
// placeholder button rather than a real ticket.
var ErrNoCategories = errors.New("no categories configured")

// Ticket is the pair of backend identifiers a callback key stands in for.
// Telegram callback data is limited to 64 bytes; two Notion page IDs do not
// fit, so buttons carry a short random key and the full pair lives here.
type Ticket struct {
	// RecordID is the Notion page ID of the expense record.
	RecordID string

	// CategoryID is the Notion page ID of the category to assign.
	CategoryID string
}

// TicketStore maps short single-use callback keys to tickets.
type TicketStore interface {
	// Mint stores the pair under a fresh random key and returns the key.
	Mint(recordID, categoryID string) (string, error)

	// Resolve looks up and removes the ticket for key in one atomic step.
	// At most one Resolve call for a given key ever succeeds; all others
	// return ErrTicketNotFound. Resolving DisabledKey returns
	// ErrNoCategories.
	Resolve(key string) (Ticket, error)
}

// MessageLog tracks the messages the bot has sent into each chat so a new
// review batch can clean up the previous one. It is pure bookkeeping; the
// caller performs the actual deletions.
type MessageLog interface {
	// RecordSent appends a message ID to the chat's log.
	RecordSent(chatID int64, messageID int)

	// DrainAndClear returns the chat's logged message IDs in send order and
	// resets the log to empty, atomically.
	DrainAndClear(chatID int64) []int
}
