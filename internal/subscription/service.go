// Package subscription assembles the subscription dashboard: current plan,
// usage bars, the upgrade catalog and billing history.
package subscription

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"tenantnotes/internal/apiclient"
	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/requestcontext"
)

const (
	MsgLoadFailed    = "Failed to load subscription. Please try again."
	MsgBillingFailed = "Failed to load billing history. Please try again."
)

type SubscriptionAPI interface {
	GetSubscription(ctx context.Context, token string) (*apiclient.Subscription, error)
	ListInvoices(ctx context.Context, token string) ([]apiclient.Invoice, error)
}

// Dashboard is the subscription page.
type Dashboard struct {
	Plan      *apiclient.Subscription `json:"plan"`
	Usage     []Metric                `json:"usage"`
	Plans     []PlanOption            `json:"plans"`
	Billing   BillingHistory          `json:"billing"`
	UserEmail string                  `json:"user_email,omitempty"`
}

type Service struct {
	api    SubscriptionAPI
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(api SubscriptionAPI, opts ...Option) *Service {
	s := &Service{api: api, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Dashboard fetches the subscription and invoices in parallel.
func (s *Service) Dashboard(ctx context.Context, token string, period Period) (*Dashboard, error) {
	var (
		sub      *apiclient.Subscription
		invoices []apiclient.Invoice
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sub, err = s.api.GetSubscription(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, err = s.api.ListInvoices(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.callFailed(ctx, "dashboard", err, MsgLoadFailed)
	}

	return &Dashboard{
		Plan:    sub,
		Usage:   UsageMetrics(sub),
		Plans:   Catalog(sub.Plan),
		Billing: FilterInvoices(invoices, period, s.now()),
	}, nil
}

// Billing returns only the filtered invoice table.
func (s *Service) Billing(ctx context.Context, token string, period Period) (*BillingHistory, error) {
	invoices, err := s.api.ListInvoices(ctx, token)
	if err != nil {
		return nil, s.callFailed(ctx, "billing", err, MsgBillingFailed)
	}
	h := FilterInvoices(invoices, period, s.now())
	return &h, nil
}

func (s *Service) callFailed(ctx context.Context, operation string, err error, message string) error {
	s.logger.WarnContext(ctx, "subscription api call failed",
		"request_id", requestcontext.RequestID(ctx),
		"operation", operation,
		"error", err,
	)
	if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, message)
}
