package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dcode-github/rental_marketplace/backend/models"
)

func TestBrowseFilterExcludesClosedAndUnlisted(t *testing.T) {
	filter := browseFilter(models.BrowseFilter{})

	assert.Equal(t, true, filter["listed"])
	assert.Equal(t, "", filter["buyer"])
	assert.NotContains(t, filter, "price")
	assert.NotContains(t, filter, "numberOfBedrooms")
}

func TestBrowseFilterPriceBounds(t *testing.T) {
	filter := browseFilter(models.BrowseFilter{MinPrice: 1000, MaxPrice: 2500})

	price, ok := filter["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, float64(1000), price["$gte"])
	assert.Equal(t, float64(2500), price["$lte"])

	// The browse invariant survives any bound combination.
	assert.Equal(t, true, filter["listed"])
	assert.Equal(t, "", filter["buyer"])
}

func TestBrowseFilterMinBedrooms(t *testing.T) {
	filter := browseFilter(models.BrowseFilter{Bedrooms: 3})

	bedrooms, ok := filter["numberOfBedrooms"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 3, bedrooms["$gte"])
}

func TestAcceptFilterRequiresOpenAndInterested(t *testing.T) {
	id := primitive.NewObjectID()
	filter := acceptFilter(id, "owner-1", "tenant-1")

	assert.Equal(t, id, filter["_id"])
	assert.Equal(t, "owner-1", filter["ownerID"])
	assert.Equal(t, "", filter["buyer"])
	assert.Equal(t, "tenant-1", filter["interestedList"])
}

func TestAcceptUpdateAssignsBuyerAndRemovesInterest(t *testing.T) {
	update := acceptUpdate("tenant-1")

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "tenant-1", set["buyer"])

	pull, ok := update["$pull"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "tenant-1", pull["interestedList"])
}

func TestParseID(t *testing.T) {
	valid := primitive.NewObjectID().Hex()
	objID, err := parseID(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, objID.Hex())

	_, err = parseID("")
	assert.True(t, errors.Is(err, models.ErrMissingID))

	_, err = parseID("not-a-hex-id")
	assert.True(t, errors.Is(err, models.ErrValidation))
}
