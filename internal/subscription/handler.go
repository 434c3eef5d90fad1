package subscription

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tenantnotes/internal/session"
	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/platform/httputil"
	"tenantnotes/pkg/requestcontext"
)

// Dashboards is the subscription surface the handler drives.
type Dashboards interface {
	Dashboard(ctx context.Context, token string, period Period) (*Dashboard, error)
	Billing(ctx context.Context, token string, period Period) (*BillingHistory, error)
}

// Handler serves /subscription-management. Routes expect a hydrated session.
type Handler struct {
	service Dashboards
	logger  *slog.Logger
}

func NewHandler(service Dashboards, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleDashboard)
	r.Get("/billing", h.handleBilling)
	r.Get("/plans", h.handlePlans)
}

type PlansResponse struct {
	Plans []PlanOption `json:"plans"`
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d, err := h.service.Dashboard(ctx, requestcontext.AuthToken(ctx), ParsePeriod(r.URL.Query().Get("period")))
	if err != nil {
		h.writeError(ctx, w, "failed to load dashboard", err)
		return
	}
	d.UserEmail = session.FromContext(ctx).Email()
	httputil.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleBilling(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	b, err := h.service.Billing(ctx, requestcontext.AuthToken(ctx), ParsePeriod(r.URL.Query().Get("period")))
	if err != nil {
		h.writeError(ctx, w, "failed to load billing history", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) handlePlans(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, PlansResponse{Plans: Catalog(r.URL.Query().Get("current"))})
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		w.Header().Set("Location", "/login")
	}
	httputil.WriteError(w, err)
}
