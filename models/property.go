package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a rental listing. Buyer is the empty string until a landlord
// accepts an interested tenant; a property with a buyer is closed and never
// appears in the public browse query, whatever Listed says.
type Property struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Address          string             `bson:"address" json:"address"`
	Description      string             `bson:"description" json:"description"`
	Latitude         float64            `bson:"latitude" json:"latitude"`
	Longitude        float64            `bson:"longitude" json:"longitude"`
	Price            float64            `bson:"price" json:"price"`
	NumberOfBedrooms int                `bson:"numberOfBedrooms" json:"numberOfBedrooms"`
	Listed           bool               `bson:"listed" json:"listed"`
	OwnerID          string             `bson:"ownerID" json:"ownerID"`
	DateAdded        time.Time          `bson:"dateAdded" json:"dateAdded"`
	InterestedList   []string           `bson:"interestedList" json:"interestedList"`
	Buyer            string             `bson:"buyer" json:"buyer"`
}

// PropertyDraft is the client-writable subset used by create and update.
// OwnerID, DateAdded, InterestedList and Buyer are server-managed.
type PropertyDraft struct {
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Description      string  `json:"description"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Price            float64 `json:"price"`
	NumberOfBedrooms int     `json:"numberOfBedrooms"`
	Listed           bool    `json:"listed"`
}

// BrowseFilter narrows the public browse query. Zero values mean "no bound".
type BrowseFilter struct {
	MinPrice float64
	MaxPrice float64
	Bedrooms int
}

// InterestedUser pairs an interested account id with its resolved email for
// the landlord's review screen.
type InterestedUser struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
}
