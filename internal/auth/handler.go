package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tenantnotes/internal/session"
	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/platform/httputil"
	"tenantnotes/pkg/requestcontext"
)

// Authenticator is the login surface the handler drives.
type Authenticator interface {
	RateLimit(browserID string) RateLimitState
	Login(ctx context.Context, browserID, userAgent string, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, browserID, email string) error
}

type Handler struct {
	auth   Authenticator
	logger *slog.Logger
}

func NewHandler(auth Authenticator, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// Register mounts the login routes. The site root is the login page.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleLoginPage)
	r.Get("/login", h.handleLoginPage)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

// LoginPageResponse is the login page state. RedirectTo is set when the
// browser is already signed in.
type LoginPageResponse struct {
	RedirectTo string         `json:"redirect_to,omitempty"`
	RateLimit  RateLimitState `json:"rate_limit"`
}

type LoginErrorResponse struct {
	Error            string         `json:"error"`
	ErrorDescription string         `json:"error_description,omitempty"`
	Fields           FieldErrors    `json:"fields,omitempty"`
	RateLimit        RateLimitState `json:"rate_limit"`
}

type LogoutResponse struct {
	RedirectTo string `json:"redirect_to"`
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if session.FromContext(ctx).IsAuthenticated() {
		httputil.WriteJSON(w, http.StatusOK, LoginPageResponse{RedirectTo: NotesPath})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LoginPageResponse{RateLimit: h.auth.RateLimit(requestcontext.BrowserID(ctx))})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	browserID := requestcontext.BrowserID(ctx)

	if session.FromContext(ctx).IsAuthenticated() {
		httputil.WriteJSON(w, http.StatusOK, LoginPageResponse{RedirectTo: NotesPath})
		return
	}

	var req LoginRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	res, err := h.auth.Login(ctx, browserID, requestcontext.UserAgent(ctx), req)
	if err != nil {
		var loginErr *LoginError
		if errors.As(err, &loginErr) {
			httputil.WriteJSON(w, httputil.StatusFor(loginErr.Code), LoginErrorResponse{
				Error:            string(loginErr.Code),
				ErrorDescription: loginErr.Message,
				Fields:           loginErr.Fields,
				RateLimit:        loginErr.RateLimit,
			})
			return
		}
		h.logger.ErrorContext(ctx, "failed to establish session",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.auth.Logout(ctx, requestcontext.BrowserID(ctx), session.FromContext(ctx).Email()); err != nil {
		h.logger.ErrorContext(ctx, "failed to clear session",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LogoutResponse{RedirectTo: LoginPath})
}
