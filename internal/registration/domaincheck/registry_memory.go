package domaincheck

import (
	"context"
	"strings"
	"sync"
)

// InMemoryRegistry is a fixed set of taken domains.
type InMemoryRegistry struct {
	mu    sync.RWMutex
	taken map[string]struct{}
}

// NewInMemoryRegistry seeds the registry with already-registered domains.
func NewInMemoryRegistry(taken ...string) *InMemoryRegistry {
	r := &InMemoryRegistry{taken: make(map[string]struct{}, len(taken))}
	for _, d := range taken {
		r.taken[normalize(d)] = struct{}{}
	}
	return r
}

func (r *InMemoryRegistry) IsTaken(_ context.Context, domain string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.taken[normalize(domain)]
	return ok, nil
}

// Add marks domains as taken.
func (r *InMemoryRegistry) Add(_ context.Context, domains ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range domains {
		r.taken[normalize(d)] = struct{}{}
	}
	return nil
}

func normalize(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
