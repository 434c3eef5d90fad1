package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/requestcontext"
)

// Service owns the session lifecycle: establish on login, hydrate once per
// request, tear down on logout.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides the request time captured by the requesttime middleware.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *Service) clock(ctx context.Context) time.Time {
	if s.now != nil {
		return s.now()
	}
	return requestcontext.Now(ctx)
}

// EstablishRequest carries what a successful login hands over.
type EstablishRequest struct {
	BrowserID  string
	Token      string
	User       any
	RememberMe bool
	UserAgent  string
}

// Establish stores token, userData and rememberMe for the browser.
func (s *Service) Establish(ctx context.Context, req EstablishRequest) (*Session, error) {
	if req.BrowserID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "missing browser id")
	}
	if req.Token == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "missing token")
	}
	userData, err := json.Marshal(req.User)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode user data")
	}

	now := s.clock(ctx)
	ttl := sessionTTL(req.Token, req.RememberMe, now)
	if ttl <= 0 {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token already expired")
	}
	sess := &Session{
		BrowserID:  req.BrowserID,
		Token:      req.Token,
		UserData:   string(userData),
		RememberMe: req.RememberMe,
		Device:     DeviceLabel(req.UserAgent),
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := s.store.Save(ctx, sess, ttl); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "save session")
	}
	return sess, nil
}

// Hydrate loads the session for browserID. A missing or expired session is
// not an error; it returns nil.
func (s *Service) Hydrate(ctx context.Context, browserID string) (*Session, error) {
	if browserID == "" {
		return nil, nil
	}
	sess, err := s.store.Get(ctx, browserID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hydrate session: %w", err)
	}
	if sess.IsExpired(s.clock(ctx)) {
		if err := s.store.Delete(ctx, browserID); err != nil {
			s.logger.WarnContext(ctx, "failed to delete expired session", "error", err)
		}
		return nil, nil
	}
	return sess, nil
}

// Teardown clears all session keys for the browser.
func (s *Service) Teardown(ctx context.Context, browserID string) error {
	if browserID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, browserID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "clear session")
	}
	return nil
}
