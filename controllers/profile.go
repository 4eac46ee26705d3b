package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/dcode-github/rental_marketplace/backend/models"
)

func GetProfile(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		profile, err := users.Profile(r.Context(), userID)
		if err != nil {
			log.Printf("Failed to fetch profile for %s: %v", userID, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Fetched profile",
			Data:    profile,
		})
	}
}

// SaveProfile replaces the free-form profile fields, creating the user
// document on first save.
func SaveProfile(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var update models.ProfileUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			log.Printf("Invalid profile data: %v", err)
			http.Error(w, "Invalid profile data", http.StatusBadRequest)
			return
		}

		if err := users.SaveProfile(r.Context(), userID, update); err != nil {
			log.Printf("Failed to save profile for %s: %v", userID, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Profile saved",
		})
	}
}
