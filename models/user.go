package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleTenant    = "Tenant"
	RoleLandlord  = "Landlord"
	RoleAnonymous = "Anonymous"
)

// Role maps an account to its role tag. The role is assigned at signup and
// there is no endpoint that changes it afterwards.
type Role struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"userID" json:"userID"`
	Email     string             `bson:"email,omitempty" json:"email"`
	Password  string             `bson:"password" json:"-"`
	UserRole  string             `bson:"userRole" json:"userRole"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// User is the per-identity document: free-form profile fields plus the
// shortlist array. Created lazily on first profile save or shortlist add.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"userID" json:"userID"`
	Name      string             `bson:"name" json:"name"`
	Contact   string             `bson:"contact" json:"contact"`
	Address   string             `bson:"address" json:"address"`
	CardName  string             `bson:"cardName" json:"cardName"`
	CardNum   string             `bson:"cardNum" json:"cardNum"`
	CardExp   string             `bson:"cardExp" json:"cardExp"`
	Shortlist []string           `bson:"shortlist" json:"shortlist"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ProfileUpdate carries the client-writable profile fields.
type ProfileUpdate struct {
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
	CardName string `json:"cardName"`
	CardNum  string `json:"cardNum"`
	CardExp  string `json:"cardExp"`
}
