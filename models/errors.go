package models

import (
	"errors"
	"net/http"
)

// Sentinel error kinds. Repositories and controllers wrap these with
// fmt.Errorf("...: %w", Err...) so the boundary can map them to a status
// with errors.Is while the log line keeps the detail.
var (
	// ErrAuth covers bad credentials and role mismatches.
	ErrAuth = errors.New("authentication failed")
	// ErrValidation covers rejected input: empty address, unresolved
	// coordinates, password policy.
	ErrValidation = errors.New("validation failed")
	// ErrMissingID is an update issued without a document id.
	ErrMissingID = errors.New("document id is missing")
	// ErrNotFound is a stale reference: the document no longer exists.
	ErrNotFound = errors.New("document not found")
	// ErrConflict is a workflow transition the current state forbids,
	// e.g. accepting a tenant on an already closed property.
	ErrConflict = errors.New("conflicting state")
	// ErrNetwork is the backend being unreachable.
	ErrNetwork = errors.New("backend unreachable")
)

// StatusForError maps an error kind to its HTTP status. Unknown errors are
// treated as network/backend failures.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrMissingID):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
