// Package memory keeps audit events in process when no Kafka brokers are
// configured, and backs the service tests.
package memory

import (
	"context"
	"sync"

	audit "tenantnotes/pkg/platform/audit"
)

// DefaultCapacity bounds the events a long-running server retains.
const DefaultCapacity = 10_000

type InMemoryStore struct {
	mu       sync.RWMutex
	events   []audit.Event
	capacity int
}

type Option func(*InMemoryStore)

// WithCapacity keeps at most n events, dropping the oldest first.
func WithCapacity(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) >= s.capacity {
		n := copy(s.events, s.events[len(s.events)-s.capacity+1:])
		s.events = s.events[:n]
	}
	s.events = append(s.events, event)
	return nil
}

// ListBySubject returns the events recorded for subject in emission order.
func (s *InMemoryStore) ListBySubject(_ context.Context, subject string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.Subject == subject {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events...), nil
}
