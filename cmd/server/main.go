package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"tenantnotes/internal/apiclient"
	"tenantnotes/internal/auth"
	"tenantnotes/internal/notes"
	"tenantnotes/internal/platform/config"
	"tenantnotes/internal/platform/httpserver"
	"tenantnotes/internal/platform/logger"
	"tenantnotes/internal/platform/metrics"
	"tenantnotes/internal/platform/postgres"
	"tenantnotes/internal/platform/redis"
	"tenantnotes/internal/registration/domaincheck"
	regHandler "tenantnotes/internal/registration/handler"
	regMetrics "tenantnotes/internal/registration/metrics"
	regService "tenantnotes/internal/registration/service"
	"tenantnotes/internal/registration/store"
	"tenantnotes/internal/registration/submission"
	"tenantnotes/internal/registration/wizard"
	"tenantnotes/internal/session"
	"tenantnotes/internal/subscription"
	httptransport "tenantnotes/internal/transport/http"
	"tenantnotes/pkg/platform/audit"
	"tenantnotes/pkg/platform/audit/publisher"
	kafkaStore "tenantnotes/pkg/platform/audit/store/kafka"
	memoryStore "tenantnotes/pkg/platform/audit/store/memory"
	"tenantnotes/pkg/platform/circuit"
	pkgstrings "tenantnotes/pkg/platform/strings"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("using redis for sessions and taken domains")
	}

	auditPublisher, closeAudit := buildAuditPublisher(cfg.Audit, log)
	defer closeAudit()

	api := apiclient.New(cfg.API.BaseURL,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		apiclient.WithBreaker(circuit.New("external-api",
			circuit.WithFailureThreshold(cfg.API.FailureThreshold),
			circuit.WithCooldown(cfg.API.Cooldown),
		)),
		apiclient.WithMetrics(apiclient.NewMetrics(reg)),
		apiclient.WithLogger(log),
	)

	var sessionStore session.Store = session.NewInMemoryStore()
	if redisClient != nil {
		sessionStore = session.NewRedisStore(redisClient.Client)
	}
	sessions := session.NewService(sessionStore, session.WithLogger(log))

	submitter, closeDB, err := buildSubmitter(ctx, cfg, api, log)
	if err != nil {
		log.Error("failed to build registration submitter", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	registry, err := buildDomainRegistry(ctx, cfg.Registration, redisClient)
	if err != nil {
		log.Error("failed to seed domain registry", "error", err)
		os.Exit(1)
	}

	// The store's expiry hook needs the service and the service needs the store.
	var registration *regService.Service
	wizards := store.New(cfg.Registration.WizardTTL, 0, store.OnExpire(func(browserID string, w *wizard.Wizard) {
		registration.Expire(browserID, w)
	}))
	registration = regService.New(wizards, registry, submitter,
		regService.WithLogger(log),
		regService.WithAuditPublisher(auditPublisher),
		regService.WithMetrics(regMetrics.New(reg)),
		regService.WithSubmitTimeout(cfg.Registration.SubmitTimeout),
		regService.WithDomainCheck(
			domaincheck.WithDebounce(cfg.Registration.DomainDebounce),
			domaincheck.WithLookupDelay(cfg.Registration.DomainLookupDelay),
		),
	)

	authService := auth.New(api, sessions, auth.NewAttemptTracker(cfg.Login.MaxAttempts, cfg.Login.LockoutDuration),
		auth.WithLogger(log),
		auth.WithAuditPublisher(auditPublisher),
		auth.WithMetrics(auth.NewMetrics(reg)),
	)
	notesService := notes.New(api,
		notes.WithLogger(log),
		notes.WithAuditPublisher(auditPublisher),
		notes.WithMetrics(notes.NewMetrics(reg)),
	)
	subscriptionService := subscription.New(api, subscription.WithLogger(log))

	router := httptransport.NewRouter(httptransport.Config{
		Logger:         log,
		Sessions:       sessions,
		HTTPMetrics:    metrics.NewHTTP(reg),
		MetricsHandler: metrics.Handler(reg),
		Health:         healthHandler(redisClient),
		CookieSecure:   cfg.CookieSecure,
	}, httptransport.Handlers{
		Auth:         auth.NewHandler(authService, log),
		Registration: regHandler.New(registration, log),
		Notes:        notes.NewHandler(notesService, log),
		Subscription: subscription.NewHandler(subscriptionService, log),
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting tenantnotes", "addr", cfg.Addr, "api", cfg.API.BaseURL, "submitter", cfg.Registration.Submitter)

	if err := httpserver.Run(ctx, srv, 10*time.Second, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

type auditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// buildAuditPublisher publishes to Kafka when brokers are configured and keeps
// events in memory otherwise.
func buildAuditPublisher(cfg config.AuditConfig, log *slog.Logger) (auditEmitter, func()) {
	var sink audit.Store = memoryStore.NewInMemoryStore()
	closeSink := func() {}
	if len(cfg.Brokers) > 0 {
		ks, err := kafkaStore.New(cfg.Brokers, cfg.Topic)
		if err != nil {
			log.Warn("kafka audit sink unavailable, falling back to memory", "error", err)
		} else {
			sink = ks
			closeSink = ks.Close
			log.Info("publishing audit events to kafka", "topic", cfg.Topic)
		}
	}
	p := publisher.NewPublisher(sink, publisher.WithLogger(log), publisher.WithAsyncBuffer(256))
	return p, func() {
		p.Close()
		closeSink()
	}
}

func buildSubmitter(ctx context.Context, cfg config.Server, api *apiclient.Client, log *slog.Logger) (wizard.Submitter, func(), error) {
	noop := func() {}
	switch cfg.Registration.Submitter {
	case config.SubmitterAPI:
		return submission.NewAPI(api), noop, nil
	case config.SubmitterPostgres:
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		if db == nil {
			return nil, noop, errors.New("DATABASE_URL is required for the postgres submitter")
		}
		pg := submission.NewPostgres(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return pg, closer(db, log), nil
	default:
		return submission.NewMock(cfg.Registration.SubmitDelay), noop, nil
	}
}

func closer(db *sql.DB, log *slog.Logger) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Warn("failed to close database", "error", err)
		}
	}
}

func buildDomainRegistry(ctx context.Context, cfg config.RegistrationConfig, client *redis.Client) (regService.DomainRegistry, error) {
	taken := pkgstrings.DedupeAndTrimLower(cfg.TakenDomains)
	if client == nil {
		return domaincheck.NewInMemoryRegistry(taken...), nil
	}
	r := domaincheck.NewRedisRegistry(client.Client)
	if len(taken) > 0 {
		if err := r.Add(ctx, taken...); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func healthHandler(client *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client != nil {
			if err := client.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
