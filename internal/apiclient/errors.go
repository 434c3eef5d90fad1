package apiclient

import (
	"fmt"
	"net/http"

	dErrors "tenantnotes/pkg/domain-errors"
)

// ErrorCodeNoteLimitReached is returned by the notes API when the tenant's
// plan allows no more notes.
const ErrorCodeNoteLimitReached = "NOTE_LIMIT_REACHED"

// APIError is the {message, errorCode} envelope of a non-2xx response.
type APIError struct {
	Status    int    `json:"-"`
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// HasMessage reports whether the server sent a human-readable message.
func (e *APIError) HasMessage() bool {
	return e.Message != ""
}

// toDomainError maps an API failure onto a coded error. The server message is
// kept verbatim so callers can show it.
func toDomainError(e *APIError) error {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	switch {
	case e.ErrorCode == ErrorCodeNoteLimitReached:
		return dErrors.Wrap(e, dErrors.CodeLimitReached, msg)
	case e.Status == http.StatusUnauthorized:
		return dErrors.Wrap(e, dErrors.CodeUnauthorized, msg)
	case e.Status == http.StatusForbidden:
		return dErrors.Wrap(e, dErrors.CodeForbidden, msg)
	case e.Status == http.StatusNotFound:
		return dErrors.Wrap(e, dErrors.CodeNotFound, msg)
	case e.Status == http.StatusConflict:
		return dErrors.Wrap(e, dErrors.CodeConflict, msg)
	case e.Status == http.StatusTooManyRequests:
		return dErrors.Wrap(e, dErrors.CodeTooManyRequests, msg)
	case e.Status == http.StatusUnprocessableEntity:
		return dErrors.Wrap(e, dErrors.CodeValidation, msg)
	case e.Status >= 400 && e.Status < 500:
		return dErrors.Wrap(e, dErrors.CodeBadRequest, msg)
	default:
		return dErrors.Wrap(e, dErrors.CodeUnavailable, msg)
	}
}
