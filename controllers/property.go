package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/dcode-github/rental_marketplace/backend/models"
	"github.com/dcode-github/rental_marketplace/backend/utils"
)

const browseCacheTTL = 10 * time.Minute

func CreateProperty(properties PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var draft models.PropertyDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			log.Printf("Invalid request body: %v", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := utils.ValidateDraft(draft); err != nil {
			log.Printf("Rejected property draft from %s: %v", userID, err)
			writeError(w, err)
			return
		}

		property, err := properties.Create(r.Context(), draft, userID)
		if err != nil {
			log.Printf("Insert failed: %v", err)
			writeError(w, err)
			return
		}

		go func() {
			invalidateBrowseCache(redisClient)
		}()

		writeJSON(w, http.StatusCreated, models.APIResponse{
			Success: true,
			Message: "Property created",
			Data:    property,
		})
	}
}

// GetProperties is the public browse query: listed properties without a
// buyer, newest first, cached per filter combination.
func GetProperties(properties PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		cacheKey := browseCacheKey(query)

		cachedData, err := redisClient.Get(r.Context(), cacheKey).Result()
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cachedData))
			return
		}
		if err != redis.Nil {
			log.Printf("Redis GET error for key %s: %v", cacheKey, err)
		}

		filter := models.BrowseFilter{}
		if v := query.Get("minPrice"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				filter.MinPrice = f
			} else {
				log.Printf("Invalid minPrice value: %s", v)
			}
		}
		if v := query.Get("maxPrice"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				filter.MaxPrice = f
			} else {
				log.Printf("Invalid maxPrice value: %s", v)
			}
		}
		if v := query.Get("bedrooms"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filter.Bedrooms = n
			} else {
				log.Printf("Invalid bedrooms value: %s", v)
			}
		}

		results, err := properties.Browse(r.Context(), filter)
		if err != nil {
			log.Printf("Error fetching properties: %v", err)
			writeError(w, err)
			return
		}

		resultBytes, err := json.Marshal(results)
		if err != nil {
			log.Printf("Failed to serialize properties: %v", err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}

		if err := redisClient.Set(r.Context(), cacheKey, resultBytes, browseCacheTTL).Err(); err != nil {
			log.Printf("Failed to cache response for key %s: %v", cacheKey, err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(resultBytes)
	}
}

// GetOwnProperties lists every property the caller owns, including unlisted
// and closed ones.
func GetOwnProperties(properties PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		results, err := properties.ByOwner(r.Context(), userID)
		if err != nil {
			log.Printf("Error fetching properties for owner %s: %v", userID, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Fetched own properties",
			Data:    results,
		})
	}
}

// GetApprovedProperties lists the properties the caller was accepted for.
func GetApprovedProperties(properties PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		results, err := properties.ByBuyer(r.Context(), userID)
		if err != nil {
			log.Printf("Error fetching approved properties for %s: %v", userID, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Fetched approved properties",
			Data:    results,
		})
	}
}

func GetPropertyByID(properties PropertyStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]

		property, err := properties.ByID(r.Context(), propertyID)
		if err != nil {
			log.Printf("Error fetching property %s: %v", propertyID, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Fetched property",
			Data:    property,
		})
	}
}

func UpdateProperty(properties PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propertyID := mux.Vars(r)["id"]

		var draft models.PropertyDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			log.Printf("Invalid update data: %v", err)
			http.Error(w, "Invalid update data", http.StatusBadRequest)
			return
		}

		if err := utils.ValidateDraft(draft); err != nil {
			log.Printf("Rejected property update from %s: %v", userID, err)
			writeError(w, err)
			return
		}

		if err := properties.Replace(r.Context(), propertyID, draft, userID); err != nil {
			log.Printf("Update failed for property %s: %v", propertyID, err)
			writeError(w, err)
			return
		}

		go func() {
			invalidateBrowseCache(redisClient)
		}()

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Property updated successfully",
		})
	}
}

func DeleteProperty(properties PropertyStore, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propertyID := mux.Vars(r)["id"]

		if err := properties.Delete(r.Context(), propertyID, userID); err != nil {
			log.Printf("Delete failed for property %s: %v", propertyID, err)
			writeError(w, err)
			return
		}

		go func() {
			invalidateBrowseCache(redisClient)
		}()

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Property deleted successfully",
		})
	}
}
