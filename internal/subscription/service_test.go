package subscription_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tenantnotes/internal/apiclient"
	"tenantnotes/internal/session"
	"tenantnotes/internal/subscription"
	"tenantnotes/internal/subscription/mocks"
	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/testutil"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks SubscriptionAPI

const token = "tok"

var now = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func professional() *apiclient.Subscription {
	sub := &apiclient.Subscription{Plan: "professional", PlanName: "Professional", Price: 79, BillingCycle: "monthly", Status: "active"}
	sub.Usage.Notes = apiclient.Usage{Used: 750, Limit: 1000}
	sub.Usage.Users = apiclient.Usage{Used: 18, Limit: 25}
	sub.Usage.Storage = apiclient.Usage{Used: 3 << 30, Limit: 10 << 30}
	return sub
}

type ServiceSuite struct {
	suite.Suite
	api *mocks.MockSubscriptionAPI
	svc *subscription.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.api = mocks.NewMockSubscriptionAPI(gomock.NewController(s.T()))
	s.svc = subscription.New(s.api,
		subscription.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		subscription.WithClock(func() time.Time { return now }),
	)
}

func (s *ServiceSuite) TestDashboard() {
	s.api.EXPECT().GetSubscription(gomock.Any(), token).Return(professional(), nil)
	s.api.EXPECT().ListInvoices(gomock.Any(), token).Return([]apiclient.Invoice{
		{InvoiceNumber: "INV-1", Amount: 79, Tax: 7.9, Date: now.AddDate(0, -1, 0)},
		{InvoiceNumber: "INV-0", Amount: 29, Tax: 2.9, Date: now.AddDate(-1, 0, 0)},
	}, nil)

	d, err := s.svc.Dashboard(context.Background(), token, subscription.Period3Months)
	s.Require().NoError(err)
	s.Require().Len(d.Usage, 3)
	s.Equal(subscription.LevelWarning, d.Usage[0].Level)
	s.Equal(subscription.LevelOK, d.Usage[2].Level)
	s.Equal(1, d.Billing.Shown)
	s.Equal(86.9, d.Billing.Total)
	for _, p := range d.Plans {
		s.Equal(p.ID == "professional", p.Current)
	}
}

func (s *ServiceSuite) TestDashboardFailure() {
	s.api.EXPECT().GetSubscription(gomock.Any(), token).Return(nil, errors.New("connection reset"))
	s.api.EXPECT().ListInvoices(gomock.Any(), token).Return(nil, nil).AnyTimes()

	_, err := s.svc.Dashboard(context.Background(), token, subscription.PeriodAll)
	de, ok := dErrors.As(err)
	s.Require().True(ok)
	s.Equal(dErrors.CodeUnavailable, de.Code)
	s.Equal(subscription.MsgLoadFailed, de.Message)
}

func (s *ServiceSuite) TestBillingKeepsUnauthorized() {
	s.api.EXPECT().ListInvoices(gomock.Any(), token).Return(nil, dErrors.New(dErrors.CodeUnauthorized, "Token expired"))

	_, err := s.svc.Billing(context.Background(), token, subscription.PeriodAll)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestHandler(t *testing.T) {
	setup := func(t *testing.T) (*mocks.MockSubscriptionAPI, chi.Router) {
		api := mocks.NewMockSubscriptionAPI(gomock.NewController(t))
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := subscription.New(api, subscription.WithLogger(logger), subscription.WithClock(func() time.Time { return now }))
		r := chi.NewRouter()
		subscription.NewHandler(svc, logger).Register(r)
		return api, r
	}
	signedIn := func(req *http.Request) *http.Request {
		return testutil.WithSession(req, &session.Session{BrowserID: "b1", Token: token, UserData: `{"email":"owner@acme.test"}`})
	}

	t.Run("dashboard", func(t *testing.T) {
		api, router := setup(t)
		api.EXPECT().GetSubscription(gomock.Any(), token).Return(professional(), nil)
		api.EXPECT().ListInvoices(gomock.Any(), token).Return(nil, nil)

		rr := testutil.DoRequest(router, signedIn(testutil.NewRequest(t, http.MethodGet, "/?period=12months")))

		testutil.AssertStatusOK(t, rr)
		got := testutil.UnmarshalResponse[subscription.Dashboard](t, rr)
		assert.Equal(t, "owner@acme.test", got.UserEmail)
		assert.Equal(t, subscription.Period12Months, got.Billing.Period)
	})

	t.Run("billing failure", func(t *testing.T) {
		api, router := setup(t)
		api.EXPECT().ListInvoices(gomock.Any(), token).Return(nil, errors.New("boom"))

		rr := testutil.DoRequest(router, signedIn(testutil.NewRequest(t, http.MethodGet, "/billing")))

		testutil.AssertStatusAndError(t, rr, http.StatusServiceUnavailable, string(dErrors.CodeUnavailable))
	})

	t.Run("plans", func(t *testing.T) {
		_, router := setup(t)

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/plans?current=starter"))

		testutil.AssertStatusOK(t, rr)
		got := testutil.UnmarshalResponse[subscription.PlansResponse](t, rr)
		assert.Len(t, got.Plans, 3)
		assert.True(t, got.Plans[0].Current)
	})
}
