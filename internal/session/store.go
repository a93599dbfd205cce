// ABOUTME: Session store owning the bearer token for the current user
// ABOUTME: Sole writer of token storage; all components read through it

package session

import "sync"

// Store owns the session token. No other component writes the backing
// storage directly, which keeps the single-writer discipline intact if
// the client is ever driven from more than one goroutine.
type Store struct {
	mu      sync.Mutex
	storage Storage
}

// NewStore creates a session store over the given storage capability.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Token returns the current bearer token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.Get()
}

// SetToken persists a new token, replacing any prior one.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.Set(token)
}

// ClearToken removes the token. Safe to call when no token is stored.
func (s *Store) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.Clear()
}
