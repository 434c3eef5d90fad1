package submission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"tenantnotes/internal/registration/models"
	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/platform/sentinel"
	"tenantnotes/pkg/platform/tx"
)

const (
	defaultTxTimeout = 5 * time.Second

	uniqueViolation = "23505"
)

const schema = `
CREATE TABLE IF NOT EXISTS tenant_registrations (
	id                UUID PRIMARY KEY,
	organization_name TEXT NOT NULL,
	domain            TEXT NOT NULL UNIQUE,
	industry          TEXT NOT NULL,
	company_size      TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	admin_first_name  TEXT NOT NULL,
	admin_last_name   TEXT NOT NULL,
	admin_email       TEXT NOT NULL,
	password_hash     TEXT NOT NULL,
	plan              TEXT NOT NULL,
	billing_cycle     TEXT NOT NULL,
	price             INTEGER NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS tenant_registration_consents (
	registration_id UUID NOT NULL REFERENCES tenant_registrations(id) ON DELETE CASCADE,
	consents        TEXT[] NOT NULL,
	accepted_at     TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (registration_id)
);
`

// Postgres records registrations in tenant_registrations. The admin password
// is stored as a bcrypt hash only.
type Postgres struct {
	db      *sql.DB
	cost    int
	clock   func() time.Time
	timeout time.Duration
}

type PostgresOption func(*Postgres)

// WithBcryptCost overrides bcrypt.DefaultCost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) PostgresOption {
	return func(p *Postgres) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			p.cost = cost
		}
	}
}

func WithPostgresClock(clock func() time.Time) PostgresOption {
	return func(p *Postgres) {
		if clock != nil {
			p.clock = clock
		}
	}
}

func NewPostgres(db *sql.DB, opts ...PostgresOption) *Postgres {
	p := &Postgres{
		db:      db,
		cost:    bcrypt.DefaultCost,
		clock:   time.Now,
		timeout: defaultTxTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EnsureSchema creates the registration tables when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure registration schema: %w", err)
	}
	return nil
}

func (p *Postgres) Submit(ctx context.Context, form models.RegistrationForm) error {
	plan, ok := models.FindPlan(form.SubscriptionPlan)
	if !ok {
		return dErrors.New(dErrors.CodeBadRequest, "unknown subscription plan")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), p.cost)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "hash admin password")
	}

	id := uuid.New()
	now := p.clock()
	err = p.runInTx(ctx, func(ctx context.Context) error {
		if err := insertRegistration(ctx, id, form, plan.PriceFor(form.BillingCycle), string(hash), now); err != nil {
			return err
		}
		return insertConsents(ctx, id, form, now)
	})
	if errors.Is(err, sentinel.ErrConflict) {
		return dErrors.Wrap(err, dErrors.CodeConflict, "domain already registered")
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "record registration")
	}
	return nil
}

func (p *Postgres) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	sqlTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin registration tx: %w", err)
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(tx.WithTx(ctx, sqlTx)); err != nil {
		return err
	}
	return sqlTx.Commit()
}

func insertRegistration(ctx context.Context, id uuid.UUID, f models.RegistrationForm, price int, hash string, now time.Time) error {
	sqlTx, ok := tx.From(ctx)
	if !ok {
		return errors.New("insert registration: no transaction in context")
	}
	query := `
		INSERT INTO tenant_registrations (
			id, organization_name, domain, industry, company_size, description,
			admin_first_name, admin_last_name, admin_email, password_hash,
			plan, billing_cycle, price, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := sqlTx.ExecContext(ctx, query,
		id, f.OrganizationName, f.Domain, f.Industry, f.CompanySize, f.Description,
		f.FirstName, f.LastName, f.Email, hash,
		string(f.SubscriptionPlan), string(f.BillingCycle), price, now,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("insert registration for %s: %w", f.Domain, sentinel.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func insertConsents(ctx context.Context, id uuid.UUID, f models.RegistrationForm, now time.Time) error {
	sqlTx, ok := tx.From(ctx)
	if !ok {
		return errors.New("insert consents: no transaction in context")
	}
	_, err := sqlTx.ExecContext(ctx,
		`INSERT INTO tenant_registration_consents (registration_id, consents, accepted_at) VALUES ($1, $2, $3)`,
		id, pq.Array(AcceptedConsents(f)), now,
	)
	if err != nil {
		return fmt.Errorf("insert consents: %w", err)
	}
	return nil
}

// AcceptedConsents lists the consent field names the form has ticked.
func AcceptedConsents(f models.RegistrationForm) []string {
	consents := make([]string, 0, 5)
	for _, c := range []struct {
		name     string
		accepted bool
	}{
		{models.FieldTermsOfService, f.TermsOfService},
		{models.FieldPrivacyPolicy, f.PrivacyPolicy},
		{models.FieldGDPRCompliance, f.GDPRCompliance},
		{models.FieldDataProcessing, f.DataProcessing},
		{models.FieldMarketingEmails, f.MarketingEmails},
	} {
		if c.accepted {
			consents = append(consents, c.name)
		}
	}
	return consents
}
