package testutil

import (
	"net/http"

	"tenantnotes/internal/session"
	"tenantnotes/pkg/requestcontext"
)

// WithBrowserID adds a browser ID to the request context.
// This simulates what the browser cookie middleware does for every request.
func WithBrowserID(req *http.Request, browserID string) *http.Request {
	return req.WithContext(requestcontext.WithBrowserID(req.Context(), browserID))
}

// WithSession attaches an authenticated session and its token to the request
// context, the state the hydrate middleware leaves behind for signed-in browsers.
func WithSession(req *http.Request, sess *session.Session) *http.Request {
	ctx := requestcontext.WithBrowserID(req.Context(), sess.BrowserID)
	ctx = session.WithSession(ctx, sess)
	ctx = requestcontext.WithAuthToken(ctx, sess.Token)
	return req.WithContext(ctx)
}
