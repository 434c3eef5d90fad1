// Package sentinel holds storage-level facts that services translate into
// domain errors before they reach a handler.
package sentinel

import "errors"

var (
	// ErrNotFound means the keyed record is absent or has expired out of its store.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a unique key is already held, such as a tenant domain.
	ErrConflict = errors.New("conflict")
)
