// Package domaincheck runs the debounced tenant domain availability check.
//
// Every Trigger takes a new sequence number and supersedes any pending check:
// the debounce timer is stopped, an in-flight lookup is cancelled, and a result
// that arrives for an older sequence number is dropped.
package domaincheck

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tenantnotes/internal/registration/models"
)

// Registry answers whether a domain already belongs to a tenant.
type Registry interface {
	IsTaken(ctx context.Context, domain string) (bool, error)
}

// Metrics records check outcomes. A nil Metrics is allowed.
type Metrics interface {
	IncrementDomainCheck(outcome string)
}

const (
	DefaultDebounce    = 500 * time.Millisecond
	DefaultLookupDelay = time.Second

	lookupTimeout = 5 * time.Second

	msgLookupFailed = "Unable to verify domain. Please try again."
)

// Checker owns the DomainState of a single wizard.
type Checker struct {
	registry    Registry
	debounce    time.Duration
	lookupDelay time.Duration
	onResolve   func(models.DomainState)
	metrics     Metrics
	logger      *slog.Logger

	mu     sync.Mutex
	seq    uint64
	state  models.DomainState
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
}

// Option configures a Checker.
type Option func(*Checker)

// WithDebounce sets how long input has to settle before a lookup starts.
func WithDebounce(d time.Duration) Option {
	return func(c *Checker) { c.debounce = d }
}

// WithLookupDelay sets the simulated lookup latency.
func WithLookupDelay(d time.Duration) Option {
	return func(c *Checker) { c.lookupDelay = d }
}

// WithOnResolve registers a callback invoked after a current result has been
// applied. It runs on the checker's timer goroutine without the checker lock held.
func WithOnResolve(fn func(models.DomainState)) Option {
	return func(c *Checker) { c.onResolve = fn }
}

func WithMetrics(m Metrics) Option {
	return func(c *Checker) { c.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

// New creates a Checker in the idle state.
func New(registry Registry, opts ...Option) *Checker {
	c := &Checker{
		registry:    registry,
		debounce:    DefaultDebounce,
		lookupDelay: DefaultLookupDelay,
		state:       models.DomainState{Status: models.DomainIdle},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// State returns the current check state.
func (c *Checker) State() models.DomainState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Sequence returns the number of the latest trigger.
func (c *Checker) Sequence() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Trigger schedules a check for domain, superseding any pending one. An empty
// domain resets the state to idle. Re-triggering with the domain the current
// state already describes keeps that state.
func (c *Checker) Trigger(domain string) {
	domain = strings.ToLower(strings.TrimSpace(domain))

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if domain != "" && domain == c.state.Domain && c.state.Message != msgLookupFailed {
		return
	}

	c.seq++
	c.stopLocked()

	if domain == "" {
		c.state = models.DomainState{Status: models.DomainIdle}
		return
	}

	c.state = models.DomainState{
		Status:  models.DomainValidating,
		Message: models.DomainMsgValidating,
		Domain:  domain,
	}

	seq := c.seq
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.timer = time.AfterFunc(c.debounce, func() {
		c.run(ctx, seq, domain)
	})
}

// Close stops pending work. Results that arrive afterwards are discarded.
func (c *Checker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.seq++
	c.stopLocked()
}

func (c *Checker) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Checker) run(ctx context.Context, seq uint64, domain string) {
	if !c.isCurrent(seq) {
		return
	}

	wait := time.NewTimer(c.lookupDelay)
	defer wait.Stop()
	select {
	case <-wait.C:
	case <-ctx.Done():
		return
	}

	state, outcome := c.resolve(ctx, domain)
	if ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug("discarding stale domain check", "domain", domain, "sequence", seq)
		return
	}
	c.state = state
	c.timer = nil
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.IncrementDomainCheck(outcome)
	}
	if c.onResolve != nil {
		c.onResolve(state)
	}
}

func (c *Checker) isCurrent(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && seq == c.seq
}

// resolve runs the pattern and registry checks. A registry failure is
// reported as an error state so the step stays invalid.
func (c *Checker) resolve(ctx context.Context, domain string) (models.DomainState, string) {
	if !models.IsValidDomainShape(domain) {
		return models.DomainState{Status: models.DomainError, Message: models.DomainMsgInvalid, Domain: domain}, "invalid"
	}

	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()
	taken, err := c.registry.IsTaken(lookupCtx, domain)
	if err != nil {
		c.logger.Warn("domain registry lookup failed", "domain", domain, "error", err)
		return models.DomainState{Status: models.DomainError, Message: msgLookupFailed, Domain: domain}, "error"
	}
	if taken {
		return models.DomainState{Status: models.DomainError, Message: models.DomainMsgTaken, Domain: domain}, "taken"
	}
	return models.DomainState{Status: models.DomainSuccess, Message: models.DomainMsgAvailable, Domain: domain}, "available"
}
