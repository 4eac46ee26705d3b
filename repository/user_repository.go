package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dcode-github/rental_marketplace/backend/models"
)

// UserRepository owns the roles collection (account + role tag + password
// hash) and the users collection (profile fields + shortlist array). User
// documents are created lazily: the first profile save or shortlist add
// upserts them.
type UserRepository struct {
	roles *mongo.Collection
	users *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		roles: db.Collection("roles"),
		users: db.Collection("users"),
	}
}

// EnsureIndexes backs the duplicate-email check with a unique index so
// concurrent registrations of the same address cannot both pass the
// find-then-insert window. The partial filter keeps anonymous records, which
// carry no email, out of the uniqueness constraint.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.roles.Indexes().CreateOne(ctx, roleEmailIndex()); err != nil {
		return fmt.Errorf("create roles email index: %v: %w", err, models.ErrNetwork)
	}
	return nil
}

func roleEmailIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.M{"email": 1},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"email": bson.M{"$gt": ""}}),
	}
}

// CreateRole inserts the account record. Anonymous identities have no email,
// so the duplicate check only applies to real addresses; any number of
// anonymous records may coexist.
func (r *UserRepository) CreateRole(ctx context.Context, role models.Role) error {
	if role.Email != "" {
		exists := r.roles.FindOne(ctx, bson.M{"email": role.Email})
		if exists.Err() == nil {
			return fmt.Errorf("email %s already registered: %w", role.Email, models.ErrConflict)
		}
		if exists.Err() != mongo.ErrNoDocuments {
			return fmt.Errorf("check email %s: %v: %w", role.Email, exists.Err(), models.ErrNetwork)
		}
	}

	role.CreatedAt = time.Now()
	if _, err := r.roles.InsertOne(ctx, role); err != nil {
		return fmt.Errorf("insert role record: %v: %w", err, models.ErrNetwork)
	}
	return nil
}

func (r *UserRepository) RoleByEmail(ctx context.Context, email string) (*models.Role, error) {
	var role models.Role
	err := r.roles.FindOne(ctx, bson.M{"email": email}).Decode(&role)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("account %s: %w", email, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch role for %s: %v: %w", email, err, models.ErrNetwork)
	}
	return &role, nil
}

func (r *UserRepository) RoleByUserID(ctx context.Context, userID string) (*models.Role, error) {
	var role models.Role
	err := r.roles.FindOne(ctx, bson.M{"userID": userID}).Decode(&role)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("account %s: %w", userID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch role for %s: %v: %w", userID, err, models.ErrNetwork)
	}
	return &role, nil
}

// EmailForUser resolves an account id to its email, used when the landlord
// reviews interested tenants.
func (r *UserRepository) EmailForUser(ctx context.Context, userID string) (string, error) {
	role, err := r.RoleByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return role.Email, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	res, err := r.roles.UpdateOne(ctx,
		bson.M{"userID": userID},
		bson.M{"$set": bson.M{"password": passwordHash}},
	)
	if err != nil {
		return fmt.Errorf("update password: %v: %w", err, models.ErrNetwork)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("account %s: %w", userID, models.ErrNotFound)
	}
	return nil
}

// Profile returns the user document, or zero-value fields when none has
// been saved yet.
func (r *UserRepository) Profile(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"userID": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return &models.User{UserID: userID, Shortlist: []string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch profile for %s: %v: %w", userID, err, models.ErrNetwork)
	}
	if user.Shortlist == nil {
		user.Shortlist = []string{}
	}
	return &user, nil
}

func (r *UserRepository) SaveProfile(ctx context.Context, userID string, profile models.ProfileUpdate) error {
	update := bson.M{
		"$set": bson.M{
			"name":     profile.Name,
			"contact":  profile.Contact,
			"address":  profile.Address,
			"cardName": profile.CardName,
			"cardNum":  profile.CardNum,
			"cardExp":  profile.CardExp,
		},
		"$setOnInsert": bson.M{"shortlist": []string{}},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.users.UpdateOne(ctx, bson.M{"userID": userID}, update, opts); err != nil {
		return fmt.Errorf("save profile for %s: %v: %w", userID, err, models.ErrNetwork)
	}
	return nil
}

func (r *UserRepository) AddToShortlist(ctx context.Context, userID string, propertyID string) error {
	update := bson.M{"$addToSet": bson.M{"shortlist": propertyID}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.users.UpdateOne(ctx, bson.M{"userID": userID}, update, opts); err != nil {
		return fmt.Errorf("add %s to shortlist: %v: %w", propertyID, err, models.ErrNetwork)
	}
	return nil
}

func (r *UserRepository) RemoveFromShortlist(ctx context.Context, userID string, propertyID string) error {
	update := bson.M{"$pull": bson.M{"shortlist": propertyID}}
	if _, err := r.users.UpdateOne(ctx, bson.M{"userID": userID}, update); err != nil {
		return fmt.Errorf("remove %s from shortlist: %v: %w", propertyID, err, models.ErrNetwork)
	}
	return nil
}

func (r *UserRepository) ShortlistIDs(ctx context.Context, userID string) ([]string, error) {
	user, err := r.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Shortlist, nil
}

func (r *UserRepository) IsShortlisted(ctx context.Context, userID string, propertyID string) (bool, error) {
	err := r.users.FindOne(ctx, bson.M{"userID": userID, "shortlist": propertyID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check shortlist for %s: %v: %w", userID, err, models.ErrNetwork)
	}
	return true, nil
}
