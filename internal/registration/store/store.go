// Package store keeps live registration wizards per browser with idle expiry.
package store

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"tenantnotes/internal/registration/wizard"
)

const (
	DefaultTTL             = 30 * time.Minute
	DefaultCleanupInterval = time.Minute
)

// WizardStore holds one wizard per browser id. Reads slide the idle TTL;
// expired and deleted wizards are torn down.
type WizardStore struct {
	mu    sync.Mutex // serializes Put, Delete and DeleteIf
	cache *gocache.Cache
	ttl   time.Duration
}

// Option configures a WizardStore.
type Option func(*options)

type options struct {
	onExpire func(browserID string, w *wizard.Wizard)
}

// OnExpire registers fn for wizards evicted while still open, which only
// happens when they idle past the TTL. fn runs before the wizard is closed.
func OnExpire(fn func(browserID string, w *wizard.Wizard)) Option {
	return func(o *options) { o.onExpire = fn }
}

// New creates a store. A non-positive ttl falls back to DefaultTTL.
func New(ttl, cleanupInterval time.Duration, opts ...Option) *WizardStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	c := gocache.New(ttl, cleanupInterval)
	c.OnEvicted(func(browserID string, v any) {
		w, ok := v.(*wizard.Wizard)
		if !ok {
			return
		}
		if o.onExpire != nil && !w.Closed() {
			o.onExpire(browserID, w)
		}
		w.Close()
	})
	return &WizardStore{cache: c, ttl: ttl}
}

// Get returns the live wizard for browserID and refreshes its TTL.
func (s *WizardStore) Get(_ context.Context, browserID string) (*wizard.Wizard, bool) {
	v, found := s.cache.Get(browserID)
	if !found {
		return nil, false
	}
	w, ok := v.(*wizard.Wizard)
	if !ok || w.Closed() {
		return nil, false
	}
	s.cache.Set(browserID, w, s.ttl)
	return w, true
}

// Put stores w for browserID, tearing down any wizard it replaces.
func (s *WizardStore) Put(_ context.Context, browserID string, w *wizard.Wizard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, found := s.cache.Get(browserID); found {
		if old, ok := v.(*wizard.Wizard); ok && old != w {
			old.Close()
		}
	}
	s.cache.Set(browserID, w, s.ttl)
}

// Delete tears down and removes the wizard for browserID.
func (s *WizardStore) Delete(_ context.Context, browserID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, found := s.cache.Get(browserID); found {
		if w, ok := v.(*wizard.Wizard); ok {
			w.Close()
		}
	}
	s.cache.Delete(browserID)
}

// DeleteIf removes the entry for browserID only while it still holds w. A
// wizard started for the same browser in the meantime is left in place.
func (s *WizardStore) DeleteIf(_ context.Context, browserID string, w *wizard.Wizard) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, found := s.cache.Get(browserID)
	if !found || v != w {
		return false
	}
	w.Close()
	s.cache.Delete(browserID)
	return true
}

// Len is the number of stored wizards, including expired ones not yet swept.
func (s *WizardStore) Len() int {
	return s.cache.ItemCount()
}

// Sweep evicts expired wizards now instead of waiting for the janitor.
func (s *WizardStore) Sweep() {
	s.cache.DeleteExpired()
}
