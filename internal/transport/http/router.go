// Package httptransport assembles the chi router: shared middleware, the page
// handlers and the operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tenantnotes/internal/platform/metrics"
	"tenantnotes/internal/platform/middleware"
	"tenantnotes/internal/session"
	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/platform/httputil"
	"tenantnotes/pkg/platform/middleware/metadata"
	"tenantnotes/pkg/platform/middleware/requesttime"
)

const defaultRequestTimeout = 30 * time.Second

// Registrar is implemented by every page handler.
type Registrar interface {
	Register(r chi.Router)
}

// Handlers groups the page handlers. Auth and Registration are public;
// Notes and Subscription require a session.
type Handlers struct {
	Auth         Registrar
	Registration Registrar
	Notes        Registrar
	Subscription Registrar
}

type Config struct {
	Logger         *slog.Logger
	Sessions       *session.Service
	HTTPMetrics    *metrics.HTTP
	MetricsHandler http.Handler
	Health         http.HandlerFunc
	CookieSecure   bool
	RequestTimeout time.Duration
}

// NewRouter wires the middleware chain and mounts every destination.
func NewRouter(cfg Config, h Handlers) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(cfg.Logger))
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Middleware)
	}

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	if cfg.Health != nil {
		r.Get("/healthz", cfg.Health)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
		r.Use(middleware.ContentTypeJSON)
		r.Use(session.BrowserID(cfg.CookieSecure))
		r.Use(session.Hydrate(cfg.Sessions, cfg.Logger))

		h.Auth.Register(r)
		h.Registration.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(session.RequireSession(cfg.Logger))
			r.Get("/nav", handleNav)
			r.Route("/notes-management", h.Notes.Register)
			r.Route("/subscription-management", h.Subscription.Register)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "page not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
	})
	return r
}
