package utils

import (
	"fmt"
	"strings"

	"github.com/dcode-github/rental_marketplace/backend/models"
)

const MinPasswordLength = 6

// ValidatePassword enforces the signup password policy. The backend is
// expected to enforce the same rule on its side; this is the client-facing
// check.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters: %w", MinPasswordLength, models.ErrValidation)
	}
	return nil
}

// ValidateRole accepts only the roles a user can sign up as. Anonymous
// identities are created through anonymous sign-in, never through signup.
func ValidateRole(role string) error {
	if role != models.RoleTenant && role != models.RoleLandlord {
		return fmt.Errorf("role must be %s or %s: %w", models.RoleTenant, models.RoleLandlord, models.ErrValidation)
	}
	return nil
}

// ValidateDraft rejects a property draft whose address is empty or whose
// coordinates were never resolved (both zero is the unresolved sentinel;
// real listings never sit on the null island).
func ValidateDraft(draft models.PropertyDraft) error {
	if strings.TrimSpace(draft.Address) == "" {
		return fmt.Errorf("address is required: %w", models.ErrValidation)
	}
	if draft.Latitude == 0 && draft.Longitude == 0 {
		return fmt.Errorf("coordinates are unresolved: %w", models.ErrValidation)
	}
	if draft.Price < 0 {
		return fmt.Errorf("price must be non-negative: %w", models.ErrValidation)
	}
	if draft.NumberOfBedrooms < 1 {
		return fmt.Errorf("number of bedrooms must be at least 1: %w", models.ErrValidation)
	}
	return nil
}
