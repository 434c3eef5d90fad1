package session

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps sessions in process memory. Expired entries are dropped on read.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]Session), now: time.Now}
}

func (s *InMemoryStore) Get(_ context.Context, browserID string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[browserID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if sess.IsExpired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, browserID)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Save stores a copy of sess. ttl is applied to ExpiresAt when it is unset.
func (s *InMemoryStore) Save(_ context.Context, sess *Session, ttl time.Duration) error {
	cp := *sess
	if cp.ExpiresAt.IsZero() && ttl > 0 {
		cp.ExpiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[cp.BrowserID] = cp
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, browserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, browserID)
	return nil
}
