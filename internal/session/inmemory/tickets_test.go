package inmemory

import (
	"errors"
	"sync"
	"testing"

	"github.com/dvloznov/expense-bot/internal/session"
)

func TestTicketStore_MintAndResolve(t *testing.T) {
	store := NewTicketStore()

	key, err := store.Mint("record-1", "category-1")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if key == "" {
		t.Fatal("expected non-empty key")
	}
	if key == session.DisabledKey {
		t.Fatal("minted key must not be the reserved disabled key")
	}

	ticket, err := store.Resolve(key)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ticket.RecordID != "record-1" || ticket.CategoryID != "category-1" {
		t.Errorf("unexpected ticket: %+v", ticket)
	}
}

func TestTicketStore_ResolveConsumesTicket(t *testing.T) {
	store := NewTicketStore()

	key, err := store.Mint("record-1", "category-1")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	if _, err := store.Resolve(key); err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}

	_, err = store.Resolve(key)
	if !errors.Is(err, session.ErrTicketNotFound) {
		t.Errorf("second Resolve: expected ErrTicketNotFound, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d tickets", store.Len())
	}
}

func TestTicketStore_ResolveUnknownKey(t *testing.T) {
	store := NewTicketStore()

	_, err := store.Resolve("nope")
	if !errors.Is(err, session.ErrTicketNotFound) {
		t.Errorf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestTicketStore_DisabledKey(t *testing.T) {
	store := NewTicketStore()

	_, err := store.Resolve(session.DisabledKey)
	if !errors.Is(err, session.ErrNoCategories) {
		t.Errorf("expected ErrNoCategories, got %v", err)
	}
	if errors.Is(err, session.ErrTicketNotFound) {
		t.Error("disabled key must not look like an expired ticket")
	}
}

func TestTicketStore_KeysAreUnique(t *testing.T) {
	store := NewTicketStore()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		key, err := store.Mint("record", "category")
		if err != nil {
			t.Fatalf("Mint failed: %v", err)
		}
		if seen[key] {
			t.Fatalf("duplicate key minted: %s", key)
		}
		seen[key] = true
	}
	if store.Len() != 1000 {
		t.Errorf("expected 1000 outstanding tickets, got %d", store.Len())
	}
}

func TestTicketStore_ConcurrentResolveExactlyOnce(t *testing.T) {
	store := NewTicketStore()

	key, err := store.Mint("record-1", "category-1")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	const goroutines = 50
	var wg sync.WaitGroup
	successes := make(chan session.Ticket, goroutines)
	notFound := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticket, err := store.Resolve(key)
			if err == nil {
				successes <- ticket
				return
			}
			notFound <- err
		}()
	}
	wg.Wait()
	close(successes)
	close(notFound)

	if got := len(successes); got != 1 {
		t.Fatalf("expected exactly 1 successful resolve, got %d", got)
	}
	for err := range notFound {
		if !errors.Is(err, session.ErrTicketNotFound) {
			t.Errorf("losing resolver got unexpected error: %v", err)
		}
	}
}
