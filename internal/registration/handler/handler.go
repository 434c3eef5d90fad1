package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tenantnotes/internal/registration/models"
	"tenantnotes/internal/registration/wizard"
	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/platform/httputil"
	"tenantnotes/pkg/requestcontext"
)

// Service defines the registration wizard operations keyed by browser id.
type Service interface {
	Start(ctx context.Context, browserID string) wizard.View
	Current(ctx context.Context, browserID string) wizard.View
	Update(ctx context.Context, browserID string, patch models.FormPatch) (wizard.View, error)
	Next(ctx context.Context, browserID string) (wizard.View, bool, error)
	Previous(ctx context.Context, browserID string) (wizard.View, bool, error)
	EditStep(ctx context.Context, browserID string, step models.Step) (wizard.View, error)
	Submit(ctx context.Context, browserID string) (*wizard.Redirect, wizard.View, error)
}

// Handler serves the /tenant-registration wizard.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the wizard routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/tenant-registration", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Post("/", h.handleStart)
		r.Patch("/form", h.handleUpdate)
		r.Post("/next", h.handleNext)
		r.Post("/previous", h.handlePrevious)
		r.Post("/steps/{step}", h.handleEditStep)
		r.Post("/submit", h.handleSubmit)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	browserID, ok := h.browserID(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, WizardResponse{Wizard: h.service.Current(r.Context(), browserID)})
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	browserID, ok := h.browserID(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, WizardResponse{Wizard: h.service.Start(r.Context(), browserID)})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	browserID, ok := h.browserID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateFormRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	view, err := h.service.Update(ctx, browserID, req.FormPatch)
	if err != nil {
		h.writeError(ctx, w, "failed to update registration form", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, WizardResponse{Wizard: view})
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	browserID, ok := h.browserID(w, r)
	if !ok {
		return
	}
	view, moved, err := h.service.Next(r.Context(), browserID)
	if err != nil {
		h.writeError(r.Context(), w, "failed to advance registration", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NavigationResponse{Moved: moved, Wizard: view})
}

func (h *Handler) handlePrevious(w http.ResponseWriter, r *http.Request) {
	browserID, ok := h.browserID(w, r)
	if !ok {
		return
	}
	view, moved, err := h.service.Previous(r.Context(), browserID)
	if err != nil {
		h.writeError(r.Context(), w, "failed to go back in registration", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NavigationResponse{Moved: moved, Wizard: view})
}

func (h *Handler) handleEditStep(w http.ResponseWriter, r *http.Request) {
	browserID, ok := h.browserID(w, r)
	if !ok {
		return
	}
	n, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		httputil.WriteError(w, wizard.ErrInvalidStep)
		return
	}
	view, err := h.service.EditStep(r.Context(), browserID, models.Step(n))
	if err != nil {
		h.writeError(r.Context(), w, "failed to jump to registration step", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, WizardResponse{Wizard: view})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	browserID, ok := h.browserID(w, r)
	if !ok {
		return
	}
	redirect, view, err := h.service.Submit(ctx, browserID)
	if err != nil {
		if view.ID != "" {
			h.logger.WarnContext(ctx, "registration submission failed",
				"request_id", requestcontext.RequestID(ctx),
				"wizard_id", view.ID,
				"error", err,
			)
			code := dErrors.CodeOf(err)
			httputil.WriteJSON(w, httputil.StatusFor(code), SubmitFailedResponse{
				Error:            string(code),
				ErrorDescription: view.SubmitError,
				Wizard:           view,
			})
			return
		}
		h.writeError(ctx, w, "failed to submit registration", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SubmitResponse{RedirectTo: redirect.To, Flash: redirect.Flash})
}

func (h *Handler) browserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	ctx := r.Context()
	browserID := requestcontext.BrowserID(ctx)
	if browserID == "" {
		// The browser cookie middleware always sets this.
		h.logger.ErrorContext(ctx, "browser id missing from context",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "browser context error"))
		return "", false
	}
	return browserID, true
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, "request_id", requestcontext.RequestID(ctx), "error", err)
	} else {
		h.logger.InfoContext(ctx, msg, "request_id", requestcontext.RequestID(ctx), "error", err)
	}
	httputil.WriteError(w, err)
}
