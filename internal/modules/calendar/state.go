package calendar

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// stateStore maps short-lived OAuth state tokens to booking IDs. It stands
// in for a browser session: the token goes out with the authorization
// redirect and comes back on the callback.
type stateStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]stateEntry
}

type stateEntry struct {
	bookingID string
	expiresAt time.Time
}

func newStateStore(ttl time.Duration) *stateStore {
	return &stateStore{
		ttl:     ttl,
		entries: make(map[string]stateEntry),
	}
}

func (s *stateStore) Issue(bookingID string) (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.entries[token] = stateEntry{
		bookingID: bookingID,
		expiresAt: time.Now().Add(s.ttl),
	}
	return token, nil
}

// Claim resolves a state token to its booking ID and invalidates it. A
// token can be claimed at most once.
func (s *stateStore) Claim(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok {
		return "", false
	}
	delete(s.entries, token)
	if time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.bookingID, true
}

// prune drops expired entries. Caller holds the lock.
func (s *stateStore) prune() {
	now := time.Now()
	for token, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, token)
		}
	}
}
