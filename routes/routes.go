package routes

import (
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/dcode-github/rental_marketplace/backend/controllers"
	"github.com/dcode-github/rental_marketplace/backend/middleware"
	"github.com/dcode-github/rental_marketplace/backend/models"
	"github.com/dcode-github/rental_marketplace/backend/repository"
)

func Routes(router *mux.Router, properties *repository.PropertyRepository, users *repository.UserRepository, redisClient *redis.Client) {
	// Auth routes
	router.HandleFunc("/register", controllers.RegisterUser(users)).Methods("POST")
	router.HandleFunc("/login", controllers.LoginUser(users)).Methods("POST")
	router.HandleFunc("/anonymous", controllers.LoginAnonymous(users)).Methods("POST")

	// Routes that require authentication
	authenticated := router.PathPrefix("/api").Subrouter()
	authenticated.Use(middleware.AuthMiddleware)

	authenticated.HandleFunc("/password", controllers.ChangePassword(users)).Methods("POST")

	// Profile routes
	authenticated.HandleFunc("/profile", controllers.GetProfile(users)).Methods("GET")
	authenticated.HandleFunc("/profile", controllers.SaveProfile(users)).Methods("PUT")

	// Property directory routes
	authenticated.HandleFunc("/properties", middleware.RequireRole(models.RoleLandlord, controllers.CreateProperty(properties, redisClient))).Methods("POST")
	authenticated.HandleFunc("/properties", controllers.GetProperties(properties, redisClient)).Methods("GET")
	authenticated.HandleFunc("/properties/mine", middleware.RequireRole(models.RoleLandlord, controllers.GetOwnProperties(properties))).Methods("GET")
	authenticated.HandleFunc("/properties/approved", controllers.GetApprovedProperties(properties)).Methods("GET")
	authenticated.HandleFunc("/properties/{id}", controllers.GetPropertyByID(properties)).Methods("GET")
	authenticated.HandleFunc("/properties/{id}", middleware.RequireRole(models.RoleLandlord, controllers.UpdateProperty(properties, redisClient))).Methods("PUT")
	authenticated.HandleFunc("/properties/{id}", middleware.RequireRole(models.RoleLandlord, controllers.DeleteProperty(properties, redisClient))).Methods("DELETE")

	// Interest workflow routes
	authenticated.HandleFunc("/properties/{id}/interest", middleware.RequireRole(models.RoleTenant, controllers.ExpressInterest(properties, redisClient))).Methods("POST")
	authenticated.HandleFunc("/properties/{id}/interest", middleware.RequireRole(models.RoleTenant, controllers.WithdrawInterest(properties, redisClient))).Methods("DELETE")
	authenticated.HandleFunc("/properties/{id}/interested", middleware.RequireRole(models.RoleLandlord, controllers.GetInterestedUsers(properties, users))).Methods("GET")
	authenticated.HandleFunc("/properties/{id}/interested/{userID}/accept", middleware.RequireRole(models.RoleLandlord, controllers.AcceptInterestedUser(properties, redisClient))).Methods("POST")
	authenticated.HandleFunc("/properties/{id}/interested/{userID}/reject", middleware.RequireRole(models.RoleLandlord, controllers.RejectInterestedUser(properties))).Methods("POST")

	// Shortlist routes
	authenticated.HandleFunc("/shortlist", middleware.RequireRole(models.RoleTenant, controllers.AddToShortlist(users, properties))).Methods("POST")
	authenticated.HandleFunc("/shortlist", middleware.RequireRole(models.RoleTenant, controllers.GetShortlist(users, properties))).Methods("GET")
	authenticated.HandleFunc("/shortlist/{propertyID}", middleware.RequireRole(models.RoleTenant, controllers.IsShortlisted(users))).Methods("GET")
	authenticated.HandleFunc("/shortlist/{propertyID}", middleware.RequireRole(models.RoleTenant, controllers.RemoveFromShortlist(users))).Methods("DELETE")
}
