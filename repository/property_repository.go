package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dcode-github/rental_marketplace/backend/models"
)

// PropertyRepository owns the properties collection: directory CRUD plus the
// interest workflow. Every workflow mutation is a single conditional
// UpdateOne; the database serializes individual document writes, so no
// transactions are needed.
type PropertyRepository struct {
	collection *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{collection: db.Collection("properties")}
}

// browseFilter is the public directory query: only listed properties with no
// buyer, regardless of how the optional bounds are set.
func browseFilter(f models.BrowseFilter) bson.M {
	filter := bson.M{
		"listed": true,
		"buyer":  "",
	}
	price := bson.M{}
	if f.MinPrice > 0 {
		price["$gte"] = f.MinPrice
	}
	if f.MaxPrice > 0 {
		price["$lte"] = f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	if f.Bedrooms > 0 {
		filter["numberOfBedrooms"] = bson.M{"$gte": f.Bedrooms}
	}
	return filter
}

// acceptFilter only matches while the property is still open and the tenant
// is still pending, which makes Accept a no-op in every other state.
func acceptFilter(id primitive.ObjectID, ownerID, tenantID string) bson.M {
	return bson.M{
		"_id":            id,
		"ownerID":        ownerID,
		"buyer":          "",
		"interestedList": tenantID,
	}
}

func acceptUpdate(tenantID string) bson.M {
	return bson.M{
		"$set":  bson.M{"buyer": tenantID},
		"$pull": bson.M{"interestedList": tenantID},
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, fmt.Errorf("property id is required: %w", models.ErrMissingID)
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid property id %q: %w", id, models.ErrValidation)
	}
	return objID, nil
}

func (r *PropertyRepository) Create(ctx context.Context, draft models.PropertyDraft, ownerID string) (models.Property, error) {
	property := models.Property{
		ID:               primitive.NewObjectID(),
		Name:             draft.Name,
		Address:          draft.Address,
		Description:      draft.Description,
		Latitude:         draft.Latitude,
		Longitude:        draft.Longitude,
		Price:            draft.Price,
		NumberOfBedrooms: draft.NumberOfBedrooms,
		Listed:           draft.Listed,
		OwnerID:          ownerID,
		DateAdded:        time.Now(),
		InterestedList:   []string{},
		Buyer:            "",
	}

	if _, err := r.collection.InsertOne(ctx, property); err != nil {
		return models.Property{}, fmt.Errorf("insert property: %v: %w", err, models.ErrNetwork)
	}
	return property, nil
}

func (r *PropertyRepository) Browse(ctx context.Context, filter models.BrowseFilter) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.M{"dateAdded": -1})
	return r.find(ctx, browseFilter(filter), opts)
}

func (r *PropertyRepository) ByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.M{"dateAdded": -1})
	return r.find(ctx, bson.M{"ownerID": ownerID}, opts)
}

// ByBuyer returns the properties a tenant has been accepted for.
func (r *PropertyRepository) ByBuyer(ctx context.Context, userID string) ([]models.Property, error) {
	return r.find(ctx, bson.M{"buyer": userID}, options.Find())
}

// ByIDs resolves a shortlist: saved ids are re-filtered through the browse
// conditions so unlisted or closed properties drop out silently.
func (r *PropertyRepository) ByIDs(ctx context.Context, ids []string) ([]models.Property, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}
	if len(objIDs) == 0 {
		return []models.Property{}, nil
	}

	filter := browseFilter(models.BrowseFilter{})
	filter["_id"] = bson.M{"$in": objIDs}
	return r.find(ctx, filter, options.Find())
}

func (r *PropertyRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Property, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query properties: %v: %w", err, models.ErrNetwork)
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode properties: %v: %w", err, models.ErrNetwork)
	}
	return properties, nil
}

func (r *PropertyRepository) ByID(ctx context.Context, id string) (*models.Property, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var property models.Property
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("property %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch property %s: %v: %w", id, err, models.ErrNetwork)
	}
	return &property, nil
}

// Replace overwrites every client-writable field of the property. Ownership
// is part of the filter, so a non-owner update matches nothing. Server-managed
// fields (ownerID, dateAdded, interestedList, buyer) are untouched.
// Last-write-wins: there is no concurrency token.
func (r *PropertyRepository) Replace(ctx context.Context, id string, draft models.PropertyDraft, ownerID string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"name":             draft.Name,
		"address":          draft.Address,
		"description":      draft.Description,
		"latitude":         draft.Latitude,
		"longitude":        draft.Longitude,
		"price":            draft.Price,
		"numberOfBedrooms": draft.NumberOfBedrooms,
		"listed":           draft.Listed,
	}}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID, "ownerID": ownerID}, update)
	if err != nil {
		return fmt.Errorf("update property %s: %v: %w", id, err, models.ErrNetwork)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("property %s not found or not owned: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string, ownerID string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID, "ownerID": ownerID})
	if err != nil {
		return fmt.Errorf("delete property %s: %v: %w", id, err, models.ErrNetwork)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("property %s not found or not owned: %w", id, models.ErrNotFound)
	}
	return nil
}

// ExpressInterest adds the tenant to interestedList with set semantics.
// Closed properties reject the write.
func (r *PropertyRepository) ExpressInterest(ctx context.Context, id string, userID string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "buyer": ""},
		bson.M{"$addToSet": bson.M{"interestedList": userID}},
	)
	if err != nil {
		return fmt.Errorf("express interest in %s: %v: %w", id, err, models.ErrNetwork)
	}
	if res.MatchedCount == 0 {
		return r.closedOrMissing(ctx, objID, id)
	}
	return nil
}

// WithdrawInterest removes the tenant from interestedList. Withdrawing when
// not interested is a no-op; a vanished property is not.
func (r *PropertyRepository) WithdrawInterest(ctx context.Context, id string, userID string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$pull": bson.M{"interestedList": userID}},
	)
	if err != nil {
		return fmt.Errorf("withdraw interest in %s: %v: %w", id, err, models.ErrNetwork)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("property %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// InterestedIDs returns the pending tenant ids for a property the caller
// owns.
func (r *PropertyRepository) InterestedIDs(ctx context.Context, id string, ownerID string) ([]string, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var property models.Property
	err = r.collection.FindOne(ctx, bson.M{"_id": objID, "ownerID": ownerID}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("property %s not found or not owned: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch property %s: %v: %w", id, err, models.ErrNetwork)
	}
	if property.InterestedList == nil {
		return []string{}, nil
	}
	return property.InterestedList, nil
}

// Accept assigns the buyer and removes them from interestedList in one
// atomic update. The conditional filter enforces that the tenant was
// interested and the property was still open; once a buyer is set, no
// second accept can ever match.
func (r *PropertyRepository) Accept(ctx context.Context, id string, ownerID, tenantID string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateOne(ctx, acceptFilter(objID, ownerID, tenantID), acceptUpdate(tenantID))
	if err != nil {
		return fmt.Errorf("accept tenant on %s: %v: %w", id, err, models.ErrNetwork)
	}
	if res.MatchedCount == 0 {
		return r.acceptFailure(ctx, objID, id, ownerID)
	}
	return nil
}

// Reject removes the tenant from interestedList without touching buyer.
func (r *PropertyRepository) Reject(ctx context.Context, id string, ownerID, tenantID string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "ownerID": ownerID},
		bson.M{"$pull": bson.M{"interestedList": tenantID}},
	)
	if err != nil {
		return fmt.Errorf("reject tenant on %s: %v: %w", id, err, models.ErrNetwork)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("property %s not found or not owned: %w", id, models.ErrNotFound)
	}
	return nil
}

// closedOrMissing disambiguates a zero-match conditional update: missing
// document vs one whose buyer is already set.
func (r *PropertyRepository) closedOrMissing(ctx context.Context, objID primitive.ObjectID, id string) error {
	err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Err()
	if err == mongo.ErrNoDocuments {
		return fmt.Errorf("property %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("fetch property %s: %v: %w", id, err, models.ErrNetwork)
	}
	return fmt.Errorf("property %s is closed: %w", id, models.ErrConflict)
}

func (r *PropertyRepository) acceptFailure(ctx context.Context, objID primitive.ObjectID, id string, ownerID string) error {
	err := r.collection.FindOne(ctx, bson.M{"_id": objID, "ownerID": ownerID}).Err()
	if err == mongo.ErrNoDocuments {
		return fmt.Errorf("property %s not found or not owned: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("fetch property %s: %v: %w", id, err, models.ErrNetwork)
	}
	return fmt.Errorf("property %s already closed or tenant not interested: %w", id, models.ErrConflict)
}
