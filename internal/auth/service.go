// Package auth signs browsers in against the external API and keeps the
// cosmetic failed-attempt indicator shown on the login page.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tenantnotes/internal/apiclient"
	"tenantnotes/internal/session"
	"tenantnotes/pkg/attrs"
	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/platform/audit"
	"tenantnotes/pkg/requestcontext"
)

type LoginAPI interface {
	Login(ctx context.Context, email, password string) (*apiclient.LoginResponse, error)
}

type SessionService interface {
	Establish(ctx context.Context, req session.EstablishRequest) (*session.Session, error)
	Teardown(ctx context.Context, browserID string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// LoginResult is a successful sign-in.
type LoginResult struct {
	RedirectTo string         `json:"redirect_to"`
	User       apiclient.User `json:"user"`
}

// LoginError is a failed sign-in as the login page shows it.
type LoginError struct {
	Code      dErrors.Code
	Message   string
	Fields    FieldErrors
	RateLimit RateLimitState
	Err       error
}

func (e *LoginError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LoginError) Unwrap() error { return e.Err }

type Service struct {
	api            LoginAPI
	sessions       SessionService
	attempts       *AttemptTracker
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *Metrics
	now            func() time.Time
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

func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(api LoginAPI, sessions SessionService, attempts *AttemptTracker, opts ...Option) *Service {
	s := &Service{
		api:      api,
		sessions: sessions,
		attempts: attempts,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// RateLimit returns the attempt indicator for browserID.
func (s *Service) RateLimit(browserID string) RateLimitState {
	return s.attempts.State(browserID, s.now())
}

// Login validates the form, forwards the credentials and establishes the
// session. Form errors do not count as attempts.
func (s *Service) Login(ctx context.Context, browserID, userAgent string, req LoginRequest) (*LoginResult, error) {
	req.Normalize()
	if fields := req.FieldErrors(); len(fields) > 0 {
		return nil, &LoginError{
			Code:      dErrors.CodeValidation,
			Message:   "invalid login form",
			Fields:    fields,
			RateLimit: s.RateLimit(browserID),
		}
	}

	resp, err := s.api.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.loginFailed(ctx, browserID, req.Email, err)
	}

	_, err = s.sessions.Establish(ctx, session.EstablishRequest{
		BrowserID:  browserID,
		Token:      resp.Token,
		User:       resp.User,
		RememberMe: req.RememberMe,
		UserAgent:  userAgent,
	})
	if err != nil {
		s.metrics.IncrementLogin("error")
		return nil, err
	}

	s.attempts.Reset(browserID)
	s.metrics.IncrementLogin("success")
	s.logAudit(ctx, string(audit.EventLoginSucceeded),
		"subject", resp.User.Email,
		"email", resp.User.Email,
	)
	return &LoginResult{RedirectTo: NotesPath, User: resp.User}, nil
}

func (s *Service) loginFailed(ctx context.Context, browserID, email string, cause error) error {
	count := s.attempts.RecordFailure(browserID, s.now())
	maxAttempts := s.attempts.MaxAttempts()

	var apiErr *apiclient.APIError
	if !errors.As(cause, &apiErr) || !apiErr.HasMessage() {
		s.metrics.IncrementLogin("error")
		s.logger.WarnContext(ctx, "login call failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", cause,
		)
		s.logAudit(ctx, string(audit.EventLoginFailed),
			"subject", email,
			"email", email,
			"reason", "unexpected",
		)
		return &LoginError{
			Code:      dErrors.CodeUnavailable,
			Message:   MsgUnexpected,
			RateLimit: s.RateLimit(browserID),
			Err:       cause,
		}
	}

	if count >= maxAttempts {
		s.metrics.IncrementLogin("locked")
		s.logAudit(ctx, string(audit.EventLoginLocked),
			"subject", email,
			"email", email,
			"reason", apiErr.Message,
		)
		return &LoginError{
			Code:      dErrors.CodeUnauthorized,
			Message:   MsgLocked,
			RateLimit: s.RateLimit(browserID),
			Err:       cause,
		}
	}

	s.metrics.IncrementLogin("rejected")
	s.logAudit(ctx, string(audit.EventLoginFailed),
		"subject", email,
		"email", email,
		"reason", apiErr.Message,
	)
	return &LoginError{
		Code:      dErrors.CodeUnauthorized,
		Message:   fmt.Sprintf("%s %d attempts remaining.", apiErr.Message, maxAttempts-count),
		RateLimit: s.RateLimit(browserID),
		Err:       cause,
	}
}

// Logout clears the browser's session.
func (s *Service) Logout(ctx context.Context, browserID, email string) error {
	if err := s.sessions.Teardown(ctx, browserID); err != nil {
		return err
	}
	s.metrics.IncrementLogout()
	s.logAudit(ctx, string(audit.EventLogout),
		"subject", email,
		"email", email,
	)
	return nil
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
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Action:    event,
		Subject:   attrs.ExtractString(attributes, "subject"),
		Email:     attrs.ExtractString(attributes, "email"),
		Reason:    attrs.ExtractString(attributes, "reason"),
		RequestID: requestID,
		BrowserID: requestcontext.BrowserID(ctx),
		IP:        requestcontext.ClientIP(ctx),
	})
}
