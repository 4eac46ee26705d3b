package controllers

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dcode-github/rental_marketplace/backend/models"
)

// ExpressInterest moves the (property, tenant) pair from None to Interested.
// Set semantics make a repeat call a no-op; a closed property rejects it.
func ExpressInterest(properties PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propertyID := mux.Vars(r)["id"]

		if err := properties.ExpressInterest(r.Context(), propertyID, userID); err != nil {
			log.Printf("Express interest failed for property %s: %v", propertyID, err)
			writeError(w, err)
			return
		}

		go func() {
			invalidateBrowseCache(redisClient)
		}()

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Interest recorded",
		})
	}
}

// WithdrawInterest moves Interested back to None. Withdrawing when never
// interested succeeds quietly; the buyer assignment is never reverted.
func WithdrawInterest(properties PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propertyID := mux.Vars(r)["id"]

		if err := properties.WithdrawInterest(r.Context(), propertyID, userID); err != nil {
			log.Printf("Withdraw interest failed for property %s: %v", propertyID, err)
			writeError(w, err)
			return
		}

		go func() {
			invalidateBrowseCache(redisClient)
		}()

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Interest withdrawn",
		})
	}
}

// GetInterestedUsers resolves the pending tenant ids of an owned property to
// emails. Lookups fan out concurrently; an id whose lookup fails is dropped
// from the result and logged, never surfaced as a partial error.
func GetInterestedUsers(properties PropertyStore, users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propertyID := mux.Vars(r)["id"]

		ids, err := properties.InterestedIDs(r.Context(), propertyID, userID)
		if err != nil {
			log.Printf("Error fetching interested users for property %s: %v", propertyID, err)
			writeError(w, err)
			return
		}

		var mu sync.Mutex
		resolved := make([]models.InterestedUser, 0, len(ids))

		g, ctx := errgroup.WithContext(r.Context())
		for _, id := range ids {
			id := id
			g.Go(func() error {
				email, err := users.EmailForUser(ctx, id)
				if err != nil {
					log.Printf("Could not resolve email for interested user %s: %v", id, err)
					return nil
				}
				mu.Lock()
				resolved = append(resolved, models.InterestedUser{UserID: id, Email: email})
				mu.Unlock()
				return nil
			})
		}
		g.Wait()

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Fetched interested users",
			Data:    resolved,
		})
	}
}

// AcceptInterestedUser closes the listing: buyer is set and the tenant
// leaves interestedList in one atomic update. Only the first accept on a
// property can ever succeed.
func AcceptInterestedUser(properties PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		propertyID := vars["id"]
		tenantID := vars["userID"]

		if err := properties.Accept(r.Context(), propertyID, userID, tenantID); err != nil {
			log.Printf("Accept failed for property %s, tenant %s: %v", propertyID, tenantID, err)
			writeError(w, err)
			return
		}

		go func() {
			invalidateBrowseCache(redisClient)
		}()

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Tenant accepted",
		})
	}
}

// RejectInterestedUser removes the tenant from interestedList without
// touching buyer; the tenant may express interest again later.
func RejectInterestedUser(properties PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		propertyID := vars["id"]
		tenantID := vars["userID"]

		if err := properties.Reject(r.Context(), propertyID, userID, tenantID); err != nil {
			log.Printf("Reject failed for property %s, tenant %s: %v", propertyID, tenantID, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Tenant rejected",
		})
	}
}
