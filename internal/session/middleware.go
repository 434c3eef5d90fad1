package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/platform/httputil"
	"tenantnotes/pkg/requestcontext"
)

const (
	// BrowserCookie names the cookie holding the opaque browser id.
	BrowserCookie = "tn_sid"

	browserCookieMaxAge = 400 * 24 * time.Hour
)

// BrowserID assigns every browser a stable opaque id through a cookie and
// exposes it via requestcontext.
func BrowserID(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(BrowserCookie); err == nil {
				if _, perr := uuid.Parse(c.Value); perr == nil {
					id = c.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     BrowserCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(browserCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			ctx := requestcontext.WithBrowserID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Hydrate loads the browser's session once per request. Store failures are
// logged and the request continues anonymously.
func Hydrate(svc *Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sess, err := svc.Hydrate(ctx, requestcontext.BrowserID(ctx))
			if err != nil {
				logger.ErrorContext(ctx, "failed to hydrate session",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
			}
			if sess != nil {
				ctx = WithSession(ctx, sess)
				ctx = requestcontext.WithAuthToken(ctx, sess.Token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects anonymous requests with 401 and a login redirect hint.
func RequireSession(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !FromContext(ctx).IsAuthenticated() {
				logger.InfoContext(ctx, "unauthenticated access",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				w.Header().Set("Location", "/login")
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "please sign in"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
