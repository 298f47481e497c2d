package inmemory

import (
	"sync"

	"github.com/dvloznov/expense-bot/internal/session"
)

// MessageLog is an in-memory implementation of session.MessageLog.
// It is safe for concurrent use.
type MessageLog struct {
	mu   sync.Mutex
	sent map[int64][]int
}

// NewMessageLog creates a new in-memory message log.
func NewMessageLog() *MessageLog {
	return &MessageLog{
		sent: make(map[int64][]int),
	}
}

// RecordSent implements session.MessageLog.
func (l *MessageLog) RecordSent(chatID int64, messageID int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent[chatID] = append(l.sent[chatID], messageID)
}

// DrainAndClear implements session.MessageLog. The swap happens under one
// lock so no caller can observe a partially drained log.
func (l *MessageLog) DrainAndClear(chatID int64) []int {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := l.sent[chatID]
	delete(l.sent, chatID)
	return ids
}

// Ensure MessageLog implements the interface.
var _ session.MessageLog = (*MessageLog)(nil)
