package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/dcode-github/rental_marketplace/backend/models"
)

type ContextKey string

const (
	UserIDKey = ContextKey("userID")
	RoleKey   = ContextKey("role")
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the error kind to its status and surfaces the message as
// the standard envelope. Callers log the detail; the client sees the string.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, models.StatusForError(err), models.APIResponse{
		Success: false,
		Message: err.Error(),
	})
}

// callerID pulls the authenticated account id set by the auth middleware.
func callerID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(UserIDKey).(string)
	return userID, ok
}
