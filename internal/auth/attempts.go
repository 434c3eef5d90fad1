package auth

import (
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	DefaultMaxAttempts     = 5
	DefaultLockoutDuration = 5 * time.Minute

	attemptIdleTTL = 30 * time.Minute
)

// RateLimitState is the attempt indicator rendered above the login form.
// It is informational: logins are still forwarded to the API.
type RateLimitState struct {
	Attempts         int    `json:"attempts"`
	MaxAttempts      int    `json:"max_attempts"`
	Locked           bool   `json:"locked"`
	SecondsRemaining int    `json:"seconds_remaining,omitempty"`
	Countdown        string `json:"countdown,omitempty"`
	Warning          bool   `json:"warning"`
	Message          string `json:"message,omitempty"`
}

type attemptRecord struct {
	count       int
	lockedUntil time.Time
}

// AttemptTracker counts failed logins per browser.
type AttemptTracker struct {
	mu      sync.Mutex
	cache   *gocache.Cache
	max     int
	lockout time.Duration
}

func NewAttemptTracker(maxAttempts int, lockout time.Duration) *AttemptTracker {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if lockout <= 0 {
		lockout = DefaultLockoutDuration
	}
	return &AttemptTracker{
		cache:   gocache.New(attemptIdleTTL, attemptIdleTTL),
		max:     maxAttempts,
		lockout: lockout,
	}
}

func (t *AttemptTracker) MaxAttempts() int { return t.max }

// RecordFailure bumps the counter and returns the new count. Reaching the
// maximum (again) restarts the countdown.
func (t *AttemptTracker) RecordFailure(browserID string, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec := t.get(browserID)
	rec.count++
	if rec.count >= t.max {
		rec.lockedUntil = now.Add(t.lockout)
	}
	t.cache.SetDefault(browserID, rec)
	return rec.count
}

func (t *AttemptTracker) Reset(browserID string) {
	t.cache.Delete(browserID)
}

// State derives the indicator for browserID at now.
func (t *AttemptTracker) State(browserID string, now time.Time) RateLimitState {
	t.mu.Lock()
	rec := *t.get(browserID)
	t.mu.Unlock()

	st := RateLimitState{Attempts: rec.count, MaxAttempts: t.max}
	if rec.count == 0 {
		return st
	}
	if remaining := rec.lockedUntil.Sub(now); remaining > 0 {
		secs := int((remaining + time.Second - 1) / time.Second)
		st.Locked = true
		st.SecondsRemaining = secs
		st.Countdown = fmt.Sprintf("%d:%02d", secs/60, secs%60)
		st.Message = "Account locked. Try again in " + st.Countdown
		return st
	}
	st.Warning = rec.count >= t.max-2
	st.Message = fmt.Sprintf("%d/%d login attempts used", rec.count, t.max)
	if st.Warning {
		st.Message += " - Account will be locked after next failed attempt"
	}
	return st
}

func (t *AttemptTracker) get(browserID string) *attemptRecord {
	if v, ok := t.cache.Get(browserID); ok {
		if rec, ok := v.(*attemptRecord); ok {
			return rec
		}
	}
	return &attemptRecord{}
}
