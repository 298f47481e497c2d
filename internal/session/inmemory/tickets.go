package inmemory

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/dvloznov/expense-bot/internal/session"
)

// ticketKeyBytes is the entropy of a minted key. 6 random bytes encode to 8
// URL-safe characters, plenty to make collisions across one batch of visible
// buttons negligible.
const ticketKeyBytes = 6

// TicketStore is an in-memory implementation of session.TicketStore.
// It is safe for concurrent use. Tickets are lost on restart - taps on
// buttons from a previous process resolve as not found, which the
// orchestrator surfaces as an expired button.
type TicketStore struct {
	mu      sync.Mutex
	tickets map[string]session.Ticket
}

// NewTicketStore creates a new in-memory ticket store.
func NewTicketStore() *TicketStore {
	return &TicketStore{
		tickets: make(map[string]session.Ticket),
	}
}

// Mint implements session.TicketStore.
func (s *TicketStore) Mint(recordID, categoryID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		key, err := randomKey()
		if err != nil {
			return "", fmt.Errorf("mint ticket: %w", err)
		}
		// Re-draw on the reserved key or an existing one. Both are
		// vanishingly rare; the loop almost always runs once.
		if key == session.DisabledKey {
			continue
		}
		if _, exists := s.tickets[key]; exists {
			continue
		}
		s.tickets[key] = session.Ticket{RecordID: recordID, CategoryID: categoryID}
		return key, nil
	}
}

// Resolve implements session.TicketStore. Lookup and removal happen under
// one lock so concurrent taps on the same button see exactly one success.
func (s *TicketStore) Resolve(key string) (session.Ticket, error) {
	if key == session.DisabledKey {
		return session.Ticket{}, session.ErrNoCategories
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, exists := s.tickets[key]
	if !exists {
		return session.Ticket{}, session.ErrTicketNotFound
	}
	delete(s.tickets, key)
	return ticket, nil
}

// Len returns the number of outstanding tickets.
func (s *TicketStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickets)
}

func randomKey() (string, error) {
	buf := make([]byte, ticketKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Ensure TicketStore implements the interface.
var _ session.TicketStore = (*TicketStore)(nil)
