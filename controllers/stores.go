package controllers

import (
	"context"

	"github.com/dcode-github/rental_marketplace/backend/models"
)

// PropertyStore is the directory and workflow persistence the controllers
// depend on; repository.PropertyRepository is the mongo implementation.
type PropertyStore interface {
	Create(ctx context.Context, draft models.PropertyDraft, ownerID string) (models.Property, error)
	Browse(ctx context.Context, filter models.BrowseFilter) ([]models.Property, error)
	ByOwner(ctx context.Context, ownerID string) ([]models.Property, error)
	ByBuyer(ctx context.Context, userID string) ([]models.Property, error)
	ByIDs(ctx context.Context, ids []string) ([]models.Property, error)
	ByID(ctx context.Context, id string) (*models.Property, error)
	Replace(ctx context.Context, id string, draft models.PropertyDraft, ownerID string) error
	Delete(ctx context.Context, id string, ownerID string) error
	ExpressInterest(ctx context.Context, id string, userID string) error
	WithdrawInterest(ctx context.Context, id string, userID string) error
	InterestedIDs(ctx context.Context, id string, ownerID string) ([]string, error)
	Accept(ctx context.Context, id string, ownerID, tenantID string) error
	Reject(ctx context.Context, id string, ownerID, tenantID string) error
}

// UserStore is the account, profile and shortlist persistence;
// repository.UserRepository is the mongo implementation.
type UserStore interface {
	CreateRole(ctx context.Context, role models.Role) error
	RoleByEmail(ctx context.Context, email string) (*models.Role, error)
	RoleByUserID(ctx context.Context, userID string) (*models.Role, error)
	EmailForUser(ctx context.Context, userID string) (string, error)
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
	Profile(ctx context.Context, userID string) (*models.User, error)
	SaveProfile(ctx context.Context, userID string, profile models.ProfileUpdate) error
	AddToShortlist(ctx context.Context, userID string, propertyID string) error
	RemoveFromShortlist(ctx context.Context, userID string, propertyID string) error
	ShortlistIDs(ctx context.Context, userID string) ([]string, error)
	IsShortlisted(ctx context.Context, userID string, propertyID string) (bool, error)
}
