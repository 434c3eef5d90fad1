// Package wizard is the registration wizard controller: the current step,
// the aggregate form, per-step validity and the submit guard.
//
// A Wizard is a single logical thread. HTTP handlers and domain-check
// callbacks both go through its mutex; only the submission collaborator runs
// outside it.
package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tenantnotes/internal/registration/domaincheck"
	"tenantnotes/internal/registration/models"
	dErrors "tenantnotes/pkg/domain-errors"
)

// Submitter hands a completed form to the registration backend.
type Submitter interface {
	Submit(ctx context.Context, form models.RegistrationForm) error
}

// Flash is a one-shot message carried to the next page.
type Flash struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Redirect is the navigation hand-off produced by a successful submit.
type Redirect struct {
	To    string `json:"redirect_to"`
	Flash Flash  `json:"flash"`
}

// LoginPath is where a registered tenant is sent.
const LoginPath = "/login"

type Wizard struct {
	id        string
	submitter Submitter
	checker   *domaincheck.Checker
	now       func() time.Time

	mu            sync.Mutex
	form          models.RegistrationForm
	current       models.Step
	flags         *StepValidation
	errors        models.FieldErrors
	showErrors    bool
	reviewReached bool
	submitting    bool
	submitError   string
	closed        bool
	createdAt     time.Time
	updatedAt     time.Time
}

// Option configures a Wizard.
type Option func(*config)

type config struct {
	domainOpts []domaincheck.Option
	now        func() time.Time
}

// WithDomainCheck passes options to the wizard's domain checker.
func WithDomainCheck(opts ...domaincheck.Option) Option {
	return func(c *config) { c.domainOpts = append(c.domainOpts, opts...) }
}

func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// New starts a wizard on step 1 with an empty form.
func New(id string, registry domaincheck.Registry, submitter Submitter, opts ...Option) *Wizard {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	w := &Wizard{
		id:        id,
		submitter: submitter,
		now:       cfg.now,
		form:      models.NewRegistrationForm(),
		current:   models.FirstStep,
		flags:     NewStepValidation(),
	}
	domainOpts := append(cfg.domainOpts, domaincheck.WithOnResolve(w.onDomainResolved))
	w.checker = domaincheck.New(registry, domainOpts...)

	w.createdAt = w.now()
	w.updatedAt = w.createdAt
	w.enterLocked()
	return w
}

func (w *Wizard) ID() string { return w.id }

// CurrentStep returns the step the wizard is on.
func (w *Wizard) CurrentStep() models.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Closed reports whether the wizard has been torn down.
func (w *Wizard) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Form returns a copy of the aggregate record.
func (w *Wizard) Form() models.RegistrationForm {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// Update applies field mutations owned by the current step and revalidates it.
func (w *Wizard) Update(patch models.FormPatch) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpenLocked(); err != nil {
		return err
	}
	if w.current == models.StepReview {
		return ErrReviewReadOnly
	}
	fields := patch.Fields()
	if len(fields) == 0 {
		return ErrEmptyPatch
	}
	for _, f := range fields {
		if owner, ok := models.OwnerOf(f); !ok || owner != w.current {
			return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("field %s cannot be edited on step %d", f, w.current))
		}
	}

	w.form.Apply(patch)
	if patch.Domain != nil {
		w.checker.Trigger(w.form.Domain)
	}
	w.revalidateLocked(w.current)
	w.touchLocked()
	return nil
}

// Next advances when the current step is valid. When blocked, the step's
// field errors become visible and the state is otherwise unchanged.
func (w *Wizard) Next() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpenLocked(); err != nil {
		return false, err
	}
	if w.current == models.LastStep {
		return false, nil
	}
	if !w.flags.IsValid(w.current) {
		w.showErrors = true
		return false, nil
	}
	w.current++
	w.enterLocked()
	w.touchLocked()
	return true, nil
}

// Previous moves back one step without any validity precondition.
func (w *Wizard) Previous() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpenLocked(); err != nil {
		return false, err
	}
	if w.current == models.FirstStep {
		return false, nil
	}
	w.current--
	w.enterLocked()
	w.touchLocked()
	return true, nil
}

// EditStep jumps to step regardless of current validity. Jumping to the review
// step needs it to have been reached before, which means steps 1–4 have each
// validated at least once.
func (w *Wizard) EditStep(step models.Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkOpenLocked(); err != nil {
		return err
	}
	if !step.IsValid() {
		return ErrInvalidStep
	}
	if step == models.StepReview && !(w.reviewReached && w.flags.AllEverValid()) {
		return ErrReviewNotReached
	}
	w.current = step
	w.enterLocked()
	w.touchLocked()
	return nil
}

// Submit sends the form to the submitter. A second call while one is pending
// is rejected. On success the wizard is torn down and the login hand-off is
// returned; on failure it stays on the review step with an error annotation.
func (w *Wizard) Submit(ctx context.Context) (*Redirect, error) {
	w.mu.Lock()
	if err := w.checkOpenLocked(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if w.current != models.StepReview {
		w.mu.Unlock()
		return nil, ErrNotOnReview
	}
	w.submitting = true
	w.submitError = ""
	form := w.form
	w.mu.Unlock()

	err := w.callSubmitter(ctx, form)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	w.touchLocked()
	if err != nil {
		w.submitError = SubmitFailureMessage
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, SubmitFailureMessage)
	}
	w.closeLocked()
	return &Redirect{
		To:    LoginPath,
		Flash: Flash{Type: "success", Message: SubmitSuccessMessage},
	}, nil
}

// callSubmitter turns a submitter panic into an ordinary failure so the
// submitting flag is always cleared.
func (w *Wizard) callSubmitter(ctx context.Context, form models.RegistrationForm) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("submitter panic: %v", p)
		}
	}()
	return w.submitter.Submit(ctx, form)
}

// Close tears the wizard down and cancels any pending domain check.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeLocked()
}

func (w *Wizard) closeLocked() {
	if w.closed {
		return
	}
	w.closed = true
	w.checker.Close()
}

func (w *Wizard) checkOpenLocked() error {
	if w.closed {
		return ErrClosed
	}
	if w.submitting {
		return ErrSubmitInProgress
	}
	return nil
}

// enterLocked runs on every step entry. Field errors are re-derived rather
// than carried over from the step that was left.
func (w *Wizard) enterLocked() {
	w.showErrors = false
	w.errors = nil
	if w.current == models.StepReview {
		w.reviewReached = true
		return
	}
	w.revalidateLocked(w.current)
}

func (w *Wizard) revalidateLocked(step models.Step) models.ValidationResult {
	res := models.ValidateStep(step, w.form, w.checker.State())
	w.flags.Report(step, res.Valid)
	if step == w.current {
		w.errors = res.Errors
	}
	return res
}

func (w *Wizard) touchLocked() {
	w.updatedAt = w.now()
}

// onDomainResolved runs on the checker's goroutine once a current result lands.
func (w *Wizard) onDomainResolved(models.DomainState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.revalidateLocked(models.StepCompany)
}
