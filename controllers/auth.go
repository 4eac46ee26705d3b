package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dcode-github/rental_marketplace/backend/models"
	"github.com/dcode-github/rental_marketplace/backend/utils"
)

// RegisterUser creates the account and its immutable role record. The
// password policy is enforced here and expected to be enforced by the
// backend as well.
func RegisterUser(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding register payload: %v", err)
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" {
			writeError(w, fmt.Errorf("email is required: %w", models.ErrValidation))
			return
		}
		if err := utils.ValidatePassword(req.Password); err != nil {
			writeError(w, err)
			return
		}
		if err := utils.ValidateRole(req.Role); err != nil {
			writeError(w, err)
			return
		}

		hashedPwd, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}

		role := models.Role{
			UserID:   uuid.NewString(),
			Email:    req.Email,
			Password: hashedPwd,
			UserRole: req.Role,
		}
		if err := users.CreateRole(r.Context(), role); err != nil {
			log.Printf("Error creating role record for %s: %v", req.Email, err)
			writeError(w, err)
			return
		}

		token, err := utils.GenerateJWT(role.UserID, role.UserRole)
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, models.AuthResponse{
			Message: "User registered successfully",
			Token:   token,
			UserID:  role.UserID,
			Role:    role.UserRole,
		})
	}
}

// LoginUser authenticates email+password and verifies that the stored role
// matches the role the caller is logging in as. A mismatch is an
// authentication failure, indistinguishable from a bad password.
func LoginUser(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding login payload: %v", err)
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		role, err := users.RoleByEmail(r.Context(), req.Email)
		if err != nil {
			log.Printf("Login failed for %s: %v", req.Email, err)
			if errors.Is(err, models.ErrNotFound) {
				err = fmt.Errorf("invalid credentials: %w", models.ErrAuth)
			}
			writeError(w, err)
			return
		}

		if !utils.CheckPasswordHash(req.Password, role.Password) {
			log.Printf("Invalid credentials for %s", req.Email)
			writeError(w, fmt.Errorf("invalid credentials: %w", models.ErrAuth))
			return
		}

		if role.UserRole != req.Role {
			log.Printf("Role mismatch for %s: registered as %s, logging in as %s", req.Email, role.UserRole, req.Role)
			writeError(w, fmt.Errorf("invalid credentials: %w", models.ErrAuth))
			return
		}

		token, err := utils.GenerateJWT(role.UserID, role.UserRole)
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, models.AuthResponse{
			Message: "Login successful",
			Token:   token,
			UserID:  role.UserID,
			Role:    role.UserRole,
		})
	}
}

// LoginAnonymous creates a transient identity with role Anonymous. No
// password is stored and no credentials are remembered anywhere.
func LoginAnonymous(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := models.Role{
			UserID:   uuid.NewString(),
			UserRole: models.RoleAnonymous,
		}
		if err := users.CreateRole(r.Context(), role); err != nil {
			log.Printf("Error creating anonymous identity: %v", err)
			writeError(w, err)
			return
		}

		token, err := utils.GenerateJWT(role.UserID, role.UserRole)
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, models.AuthResponse{
			Message: "Signed in anonymously",
			Token:   token,
			UserID:  role.UserID,
			Role:    role.UserRole,
		})
	}
}

// ChangePassword re-verifies the current password before storing the new
// hash. The new password goes through the same policy as signup.
func ChangePassword(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var req models.ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding change-password payload: %v", err)
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		if err := utils.ValidatePassword(req.NewPassword); err != nil {
			writeError(w, err)
			return
		}

		role, err := users.RoleByUserID(r.Context(), userID)
		if err != nil {
			log.Printf("Change password failed for %s: %v", userID, err)
			writeError(w, err)
			return
		}

		if !utils.CheckPasswordHash(req.OldPassword, role.Password) {
			log.Printf("Wrong current password for %s", userID)
			writeError(w, fmt.Errorf("current password is incorrect: %w", models.ErrAuth))
			return
		}

		hashedPwd, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}

		if err := users.UpdatePassword(r.Context(), userID, hashedPwd); err != nil {
			log.Printf("Error updating password for %s: %v", userID, err)
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Password changed successfully",
		})
	}
}
