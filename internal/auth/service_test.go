package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tenantnotes/internal/apiclient"
	"tenantnotes/internal/auth"
	"tenantnotes/internal/auth/mocks"
	"tenantnotes/internal/session"
	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/platform/audit"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks LoginAPI,SessionService,AuditPublisher

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	api      *mocks.MockLoginAPI
	sessions *session.Service
	store    *session.InMemoryStore
	audit    *mocks.MockAuditPublisher
	metrics  *auth.Metrics
	svc      *auth.Service
	now      time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.api = mocks.NewMockLoginAPI(s.ctrl)
	s.audit = mocks.NewMockAuditPublisher(s.ctrl)
	s.store = session.NewInMemoryStore()
	s.sessions = session.NewService(s.store)
	s.metrics = auth.NewMetrics(prometheus.NewRegistry())
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.svc = auth.New(s.api, s.sessions, auth.NewAttemptTracker(5, 5*time.Minute),
		auth.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		auth.WithAuditPublisher(s.audit),
		auth.WithMetrics(s.metrics),
		auth.WithClock(func() time.Time { return s.now }),
	)
}

func invalidCredentials() error {
	apiErr := &apiclient.APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials."}
	return dErrors.Wrap(apiErr, dErrors.CodeUnauthorized, apiErr.Message)
}

func (s *ServiceSuite) expectAudit(action audit.AuditEvent) {
	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
		s.Equal(string(action), e.Action)
		return nil
	})
}

func (s *ServiceSuite) TestLoginSuccessEstablishesSession() {
	ctx := context.Background()
	s.api.EXPECT().Login(gomock.Any(), "admin@acme.test", "password").Return(&apiclient.LoginResponse{
		Token: "tok",
		User:  apiclient.User{Email: "admin@acme.test", FirstName: "Ada"},
	}, nil)
	s.expectAudit(audit.EventLoginSucceeded)

	res, err := s.svc.Login(ctx, "b1", "Mozilla/5.0", auth.LoginRequest{Email: " admin@acme.test ", Password: "password", RememberMe: true})
	s.Require().NoError(err)
	s.Equal(auth.NotesPath, res.RedirectTo)

	sess, err := s.store.Get(ctx, "b1")
	s.Require().NoError(err)
	s.Equal("tok", sess.Token)
	s.True(sess.RememberMe)
	s.Equal("admin@acme.test", sess.Email())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.LoginAttempts.WithLabelValues("success")))
}

func (s *ServiceSuite) TestFormErrorsDoNotReachTheAPI() {
	s.api.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := s.svc.Login(context.Background(), "b1", "", auth.LoginRequest{Email: "nope", Password: "123"})
	var loginErr *auth.LoginError
	s.Require().ErrorAs(err, &loginErr)
	s.Equal(dErrors.CodeValidation, loginErr.Code)
	s.Equal(auth.MsgEmailInvalid, loginErr.Fields["email"])
	s.Equal(auth.MsgPasswordTooShort, loginErr.Fields["password"])
	s.Zero(loginErr.RateLimit.Attempts)
}

func (s *ServiceSuite) TestFailedAttemptsCountDownToLock() {
	ctx := context.Background()
	s.api.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, invalidCredentials()).Times(5)
	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).Times(5)

	req := auth.LoginRequest{Email: "admin@acme.test", Password: "wrong-password"}
	var loginErr *auth.LoginError
	for i := 1; i <= 4; i++ {
		_, err := s.svc.Login(ctx, "b1", "", req)
		s.Require().ErrorAs(err, &loginErr)
	}
	s.Equal("Invalid credentials. 1 attempts remaining.", loginErr.Message)
	s.Equal(dErrors.CodeUnauthorized, loginErr.Code)

	_, err := s.svc.Login(ctx, "b1", "", req)
	s.Require().ErrorAs(err, &loginErr)
	s.Equal(auth.MsgLocked, loginErr.Message)
	s.True(loginErr.RateLimit.Locked)
	s.Equal("5:00", loginErr.RateLimit.Countdown)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.LoginAttempts.WithLabelValues("locked")))
}

func (s *ServiceSuite) TestUnexpectedFailureUsesGenericMessage() {
	s.api.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("dial tcp: connection refused"))
	s.expectAudit(audit.EventLoginFailed)

	_, err := s.svc.Login(context.Background(), "b1", "", auth.LoginRequest{Email: "admin@acme.test", Password: "password"})
	var loginErr *auth.LoginError
	s.Require().ErrorAs(err, &loginErr)
	s.Equal(auth.MsgUnexpected, loginErr.Message)
	s.Equal(1, loginErr.RateLimit.Attempts)
}

func (s *ServiceSuite) TestSuccessResetsAttempts() {
	ctx := context.Background()
	gomock.InOrder(
		s.api.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, invalidCredentials()),
		s.api.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(&apiclient.LoginResponse{Token: "tok"}, nil),
	)
	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	req := auth.LoginRequest{Email: "admin@acme.test", Password: "password"}
	_, _ = s.svc.Login(ctx, "b1", "", req)
	s.Equal(1, s.svc.RateLimit("b1").Attempts)

	_, err := s.svc.Login(ctx, "b1", "", req)
	s.Require().NoError(err)
	s.Zero(s.svc.RateLimit("b1").Attempts)
}

func (s *ServiceSuite) TestLogoutClearsSession() {
	ctx := context.Background()
	_, err := s.sessions.Establish(ctx, session.EstablishRequest{BrowserID: "b1", Token: "tok"})
	s.Require().NoError(err)
	s.expectAudit(audit.EventLogout)

	s.Require().NoError(s.svc.Logout(ctx, "b1", "admin@acme.test"))
	_, err = s.store.Get(ctx, "b1")
	s.ErrorIs(err, session.ErrNotFound)
}
