// Package service drives one registration wizard per browser: it owns
// creation, lookup and teardown, and reports each transition to audit and
// metrics.
package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"tenantnotes/internal/registration/domaincheck"
	"tenantnotes/internal/registration/metrics"
	"tenantnotes/internal/registration/models"
	"tenantnotes/internal/registration/wizard"
	"tenantnotes/pkg/attrs"
	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/platform/audit"
	"tenantnotes/pkg/requestcontext"
)

const DefaultSubmitTimeout = 30 * time.Second

var ErrNotStarted = dErrors.New(dErrors.CodeNotFound, "no registration in progress")

type WizardStore interface {
	Get(ctx context.Context, browserID string) (*wizard.Wizard, bool)
	Put(ctx context.Context, browserID string, w *wizard.Wizard)
	DeleteIf(ctx context.Context, browserID string, w *wizard.Wizard) bool
}

// DomainRegistry is checked while typing and extended once a tenant registers.
type DomainRegistry interface {
	domaincheck.Registry
	Add(ctx context.Context, domains ...string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	wizards        WizardStore
	registry       DomainRegistry
	submitter      wizard.Submitter
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	submitTimeout  time.Duration
	domainOpts     []domaincheck.Option
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithSubmitTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.submitTimeout = d
		}
	}
}

// WithDomainCheck tunes the domain checker of every wizard the service starts.
func WithDomainCheck(opts ...domaincheck.Option) Option {
	return func(s *Service) {
		s.domainOpts = append(s.domainOpts, opts...)
	}
}

func New(wizards WizardStore, registry DomainRegistry, submitter wizard.Submitter, opts ...Option) *Service {
	s := &Service{
		wizards:       wizards,
		registry:      registry,
		submitter:     submitter,
		submitTimeout: DefaultSubmitTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Start discards any wizard the browser has and begins a fresh one on step 1.
func (s *Service) Start(ctx context.Context, browserID string) wizard.View {
	return s.start(ctx, browserID).Snapshot()
}

// Current returns the browser's wizard, starting one when none is live.
func (s *Service) Current(ctx context.Context, browserID string) wizard.View {
	if w, ok := s.wizards.Get(ctx, browserID); ok {
		return w.Snapshot()
	}
	return s.start(ctx, browserID).Snapshot()
}

func (s *Service) Update(ctx context.Context, browserID string, patch models.FormPatch) (wizard.View, error) {
	w, err := s.lookup(ctx, browserID)
	if err != nil {
		return wizard.View{}, err
	}
	if err := w.Update(patch); err != nil {
		return wizard.View{}, err
	}
	return w.Snapshot(), nil
}

// Next advances the wizard. moved is false when the current step blocked it.
func (s *Service) Next(ctx context.Context, browserID string) (view wizard.View, moved bool, err error) {
	w, err := s.lookup(ctx, browserID)
	if err != nil {
		return wizard.View{}, false, err
	}
	from := w.CurrentStep()
	moved, err = w.Next()
	if err != nil {
		return wizard.View{}, false, err
	}
	s.recordTransition("next", from, w.CurrentStep(), moved)
	return w.Snapshot(), moved, nil
}

func (s *Service) Previous(ctx context.Context, browserID string) (wizard.View, bool, error) {
	w, err := s.lookup(ctx, browserID)
	if err != nil {
		return wizard.View{}, false, err
	}
	from := w.CurrentStep()
	moved, err := w.Previous()
	if err != nil {
		return wizard.View{}, false, err
	}
	s.recordTransition("previous", from, w.CurrentStep(), moved)
	return w.Snapshot(), moved, nil
}

func (s *Service) EditStep(ctx context.Context, browserID string, step models.Step) (wizard.View, error) {
	w, err := s.lookup(ctx, browserID)
	if err != nil {
		return wizard.View{}, err
	}
	from := w.CurrentStep()
	if err := w.EditStep(step); err != nil {
		s.recordTransition("edit", from, step, false)
		return wizard.View{}, err
	}
	s.recordTransition("edit", from, step, true)
	return w.Snapshot(), nil
}

// Submit hands the form to the submission collaborator. The call is detached
// from the request so a client disconnect cannot abandon a half-finished
// registration; it is bounded by the submit timeout instead.
func (s *Service) Submit(ctx context.Context, browserID string) (*wizard.Redirect, wizard.View, error) {
	w, err := s.lookup(ctx, browserID)
	if err != nil {
		return nil, wizard.View{}, err
	}
	form := w.Form()

	submitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.submitTimeout)
	defer cancel()

	start := time.Now()
	redirect, err := w.Submit(submitCtx)
	switch {
	case dErrors.Is(err, wizard.ErrSubmitInProgress), dErrors.Is(err, wizard.ErrNotOnReview), dErrors.Is(err, wizard.ErrClosed):
		return nil, wizard.View{}, err
	case err != nil:
		s.observeSubmission("failure", start)
		s.logAudit(ctx, string(audit.EventRegistrationFailed),
			"wizard_id", w.ID(),
			"subject", form.Domain,
			"email", form.Email,
			"reason", err.Error(),
		)
		return nil, w.Snapshot(), err
	}

	s.observeSubmission("success", start)
	s.logAudit(ctx, string(audit.EventRegistrationSubmitted),
		"wizard_id", w.ID(),
		"subject", form.Domain,
		"email", form.Email,
		"plan", string(form.SubscriptionPlan),
		"billing_cycle", string(form.BillingCycle),
	)
	if err := s.registry.Add(submitCtx, form.Domain); err != nil {
		s.logger.WarnContext(ctx, "failed to mark domain as taken",
			"request_id", requestcontext.RequestID(ctx),
			"domain", form.Domain,
			"error", err,
		)
	}
	s.wizards.DeleteIf(ctx, browserID, w)
	return redirect, wizard.View{}, nil
}

// Expire is the store's eviction hook for wizards abandoned mid-way.
func (s *Service) Expire(browserID string, w *wizard.Wizard) {
	if s.metrics != nil {
		s.metrics.IncrementWizardsExpired()
	}
	s.logAudit(context.Background(), string(audit.EventRegistrationExpired),
		"wizard_id", w.ID(),
		"subject", w.ID(),
		"browser_id", browserID,
		"step", strconv.Itoa(int(w.CurrentStep())),
	)
}

func (s *Service) start(ctx context.Context, browserID string) *wizard.Wizard {
	opts := []wizard.Option{wizard.WithDomainCheck(s.domainCheckOptions()...)}
	w := wizard.New(uuid.NewString(), s.registry, s.submitter, opts...)
	s.wizards.Put(ctx, browserID, w)

	if s.metrics != nil {
		s.metrics.IncrementWizardsStarted()
	}
	s.logAudit(ctx, string(audit.EventRegistrationStarted),
		"wizard_id", w.ID(),
		"subject", w.ID(),
	)
	return w
}

func (s *Service) domainCheckOptions() []domaincheck.Option {
	opts := make([]domaincheck.Option, 0, len(s.domainOpts)+2)
	opts = append(opts, domaincheck.WithLogger(s.logger))
	if s.metrics != nil {
		opts = append(opts, domaincheck.WithMetrics(s.metrics))
	}
	return append(opts, s.domainOpts...)
}

func (s *Service) lookup(ctx context.Context, browserID string) (*wizard.Wizard, error) {
	w, ok := s.wizards.Get(ctx, browserID)
	if !ok {
		return nil, ErrNotStarted
	}
	return w, nil
}

func (s *Service) recordTransition(action string, from, to models.Step, moved bool) {
	if s.metrics == nil {
		return
	}
	outcome := "moved"
	step := to
	if !moved {
		outcome = "blocked"
		step = from
	}
	s.metrics.IncrementStepTransition(action, strconv.Itoa(int(step)), outcome)
}

func (s *Service) observeSubmission(outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveSubmission(outcome, start)
	}
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
	if s.auditPublisher == nil {
		return
	}
	browserID := requestcontext.BrowserID(ctx)
	if browserID == "" {
		browserID = attrs.ExtractString(attributes, "browser_id")
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Action:    event,
		Subject:   attrs.ExtractString(attributes, "subject"),
		Email:     attrs.ExtractString(attributes, "email"),
		Reason:    attrs.ExtractString(attributes, "reason"),
		RequestID: requestID,
		BrowserID: browserID,
		IP:        requestcontext.ClientIP(ctx),
	})
}
