package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dcode-github/rental_marketplace/backend/models"
)

type shortlistRequest struct {
	PropertyID string `json:"propertyId"`
}

// AddToShortlist bookmarks a property for the caller. The first add upserts
// the user document. The bookmark is independent of the interest workflow.
func AddToShortlist(users UserStore, properties PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var req shortlistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid request data: %v", err)
			http.Error(w, "Invalid request data", http.StatusBadRequest)
			return
		}
		if req.PropertyID == "" {
			writeError(w, fmt.Errorf("propertyId is required: %w", models.ErrMissingID))
			return
		}

		// Bookmarking a vanished listing is a stale reference.
		if _, err := properties.ByID(r.Context(), req.PropertyID); err != nil {
			log.Printf("Shortlist add failed for property %s: %v", req.PropertyID, err)
			writeError(w, err)
			return
		}

		if err := users.AddToShortlist(r.Context(), userID, req.PropertyID); err != nil {
			log.Printf("Failed to add %s to shortlist of %s: %v", req.PropertyID, userID, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, models.APIResponse{
			Success: true,
			Message: "Property added to shortlist",
		})
	}
}

func RemoveFromShortlist(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propertyID := mux.Vars(r)["propertyID"]

		if err := users.RemoveFromShortlist(r.Context(), userID, propertyID); err != nil {
			log.Printf("Failed to remove %s from shortlist of %s: %v", propertyID, userID, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Property removed from shortlist",
		})
	}
}

// GetShortlist resolves the caller's saved ids to property documents. The
// browse filter applies, so closed or unlisted entries disappear from the
// view while staying bookmarked.
func GetShortlist(users UserStore, properties PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		ids, err := users.ShortlistIDs(r.Context(), userID)
		if err != nil {
			log.Printf("Failed to fetch shortlist for %s: %v", userID, err)
			writeError(w, err)
			return
		}

		results, err := properties.ByIDs(r.Context(), ids)
		if err != nil {
			log.Printf("Failed to resolve shortlist properties for %s: %v", userID, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Fetched shortlist",
			Data:    results,
		})
	}
}

func IsShortlisted(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propertyID := mux.Vars(r)["propertyID"]

		shortlisted, err := users.IsShortlisted(r.Context(), userID, propertyID)
		if err != nil {
			log.Printf("Failed to check shortlist for %s: %v", userID, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Checked shortlist",
			Data:    map[string]bool{"shortlisted": shortlisted},
		})
	}
}
