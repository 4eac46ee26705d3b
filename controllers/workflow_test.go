package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcode-github/rental_marketplace/backend/models"
	"github.com/dcode-github/rental_marketplace/backend/utils"
)

// In-memory stores mirroring the mongo repositories' contracts: unique
// non-empty emails, set semantics on interestedList and shortlist, and the
// conditional accept update.

type fakeUserStore struct {
	mu    sync.Mutex
	roles map[string]models.Role
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		roles: map[string]models.Role{},
		users: map[string]*models.User{},
	}
}

func (f *fakeUserStore) CreateRole(ctx context.Context, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if role.Email != "" {
		for _, r := range f.roles {
			if r.Email == role.Email {
				return fmt.Errorf("email %s already registered: %w", role.Email, models.ErrConflict)
			}
		}
	}
	f.roles[role.UserID] = role
	return nil
}

func (f *fakeUserStore) RoleByEmail(ctx context.Context, email string) (*models.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.roles {
		if r.Email == email {
			role := r
			return &role, nil
		}
	}
	return nil, fmt.Errorf("account %s: %w", email, models.ErrNotFound)
}

func (f *fakeUserStore) RoleByUserID(ctx context.Context, userID string) (*models.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.roles[userID]; ok {
		return &r, nil
	}
	return nil, fmt.Errorf("account %s: %w", userID, models.ErrNotFound)
}

func (f *fakeUserStore) EmailForUser(ctx context.Context, userID string) (string, error) {
	role, err := f.RoleByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return role.Email, nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[userID]
	if !ok {
		return fmt.Errorf("account %s: %w", userID, models.ErrNotFound)
	}
	role.Password = passwordHash
	f.roles[userID] = role
	return nil
}

func (f *fakeUserStore) Profile(ctx context.Context, userID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		copied := *u
		return &copied, nil
	}
	return &models.User{UserID: userID, Shortlist: []string{}}, nil
}

func (f *fakeUserStore) ensureUser(userID string) *models.User {
	if _, ok := f.users[userID]; !ok {
		f.users[userID] = &models.User{UserID: userID, Shortlist: []string{}}
	}
	return f.users[userID]
}

func (f *fakeUserStore) SaveProfile(ctx context.Context, userID string, profile models.ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.ensureUser(userID)
	u.Name = profile.Name
	u.Contact = profile.Contact
	u.Address = profile.Address
	u.CardName = profile.CardName
	u.CardNum = profile.CardNum
	u.CardExp = profile.CardExp
	return nil
}

func (f *fakeUserStore) AddToShortlist(ctx context.Context, userID string, propertyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.ensureUser(userID)
	for _, id := range u.Shortlist {
		if id == propertyID {
			return nil
		}
	}
	u.Shortlist = append(u.Shortlist, propertyID)
	return nil
}

func (f *fakeUserStore) RemoveFromShortlist(ctx context.Context, userID string, propertyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.ensureUser(userID)
	kept := u.Shortlist[:0]
	for _, id := range u.Shortlist {
		if id != propertyID {
			kept = append(kept, id)
		}
	}
	u.Shortlist = kept
	return nil
}

func (f *fakeUserStore) ShortlistIDs(ctx context.Context, userID string) ([]string, error) {
	u, err := f.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Shortlist, nil
}

func (f *fakeUserStore) IsShortlisted(ctx context.Context, userID string, propertyID string) (bool, error) {
	ids, err := f.ShortlistIDs(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == propertyID {
			return true, nil
		}
	}
	return false, nil
}

type fakePropertyStore struct {
	mu         sync.Mutex
	properties map[string]*models.Property
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{properties: map[string]*models.Property{}}
}

func (f *fakePropertyStore) Create(ctx context.Context, draft models.PropertyDraft, ownerID string) (models.Property, error) {
	panic("not used in these tests")
}

func (f *fakePropertyStore) Browse(ctx context.Context, filter models.BrowseFilter) ([]models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	results := []models.Property{}
	for _, p := range f.properties {
		if p.Listed && p.Buyer == "" {
			results = append(results, *p)
		}
	}
	return results, nil
}

func (f *fakePropertyStore) ByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	panic("not used in these tests")
}

func (f *fakePropertyStore) ByBuyer(ctx context.Context, userID string) ([]models.Property, error) {
	panic("not used in these tests")
}

func (f *fakePropertyStore) ByIDs(ctx context.Context, ids []string) ([]models.Property, error) {
	panic("not used in these tests")
}

func (f *fakePropertyStore) ByID(ctx context.Context, id string) (*models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.properties[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, fmt.Errorf("property %s: %w", id, models.ErrNotFound)
}

func (f *fakePropertyStore) Replace(ctx context.Context, id string, draft models.PropertyDraft, ownerID string) error {
	panic("not used in these tests")
}

func (f *fakePropertyStore) Delete(ctx context.Context, id string, ownerID string) error {
	panic("not used in these tests")
}

func (f *fakePropertyStore) ExpressInterest(ctx context.Context, id string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[id]
	if !ok {
		return fmt.Errorf("property %s: %w", id, models.ErrNotFound)
	}
	if p.Buyer != "" {
		return fmt.Errorf("property %s is closed: %w", id, models.ErrConflict)
	}
	for _, u := range p.InterestedList {
		if u == userID {
			return nil
		}
	}
	p.InterestedList = append(p.InterestedList, userID)
	return nil
}

func (f *fakePropertyStore) WithdrawInterest(ctx context.Context, id string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[id]
	if !ok {
		return fmt.Errorf("property %s: %w", id, models.ErrNotFound)
	}
	kept := p.InterestedList[:0]
	for _, u := range p.InterestedList {
		if u != userID {
			kept = append(kept, u)
		}
	}
	p.InterestedList = kept
	return nil
}

func (f *fakePropertyStore) InterestedIDs(ctx context.Context, id string, ownerID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[id]
	if !ok || p.OwnerID != ownerID {
		return nil, fmt.Errorf("property %s not found or not owned: %w", id, models.ErrNotFound)
	}
	return append([]string{}, p.InterestedList...), nil
}

func (f *fakePropertyStore) Accept(ctx context.Context, id string, ownerID, tenantID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[id]
	if !ok || p.OwnerID != ownerID {
		return fmt.Errorf("property %s not found or not owned: %w", id, models.ErrNotFound)
	}
	interested := false
	for _, u := range p.InterestedList {
		if u == tenantID {
			interested = true
		}
	}
	if p.Buyer != "" || !interested {
		return fmt.Errorf("property %s already closed or tenant not interested: %w", id, models.ErrConflict)
	}
	p.Buyer = tenantID
	kept := p.InterestedList[:0]
	for _, u := range p.InterestedList {
		if u != tenantID {
			kept = append(kept, u)
		}
	}
	p.InterestedList = kept
	return nil
}

func (f *fakePropertyStore) Reject(ctx context.Context, id string, ownerID, tenantID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[id]
	if !ok || p.OwnerID != ownerID {
		return fmt.Errorf("property %s not found or not owned: %w", id, models.ErrNotFound)
	}
	kept := p.InterestedList[:0]
	for _, u := range p.InterestedList {
		if u != tenantID {
			kept = append(kept, u)
		}
	}
	p.InterestedList = kept
	return nil
}

// testRedis is never reachable; cache invalidation goroutines just log.
func testRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func authedRequest(method, target, body, userID string, vars map[string]string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.WithValue(r.Context(), UserIDKey, userID)
	r = r.WithContext(ctx)
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}

func TestLoginRejectsRoleMismatch(t *testing.T) {
	users := newFakeUserStore()
	hash, err := utils.HashPassword("landlord-pass")
	require.NoError(t, err)
	require.NoError(t, users.CreateRole(context.Background(), models.Role{
		UserID:   "landlord-1",
		Email:    "owner@example.com",
		Password: hash,
		UserRole: models.RoleLandlord,
	}))

	// Correct password, wrong role: an authentication failure.
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"owner@example.com","password":"landlord-pass","role":"Tenant"}`))
	LoginUser(users)(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Same credentials with the registered role succeed.
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"owner@example.com","password":"landlord-pass","role":"Landlord"}`))
	LoginUser(users)(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleLandlord, resp.Role)
}

func TestAnonymousSignInRepeatable(t *testing.T) {
	users := newFakeUserStore()
	handler := LoginAnonymous(users)

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodPost, "/anonymous", nil))
		require.Equal(t, http.StatusOK, w.Code, "anonymous sign-in %d must succeed", i+1)

		var resp models.AuthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, models.RoleAnonymous, resp.Role)
		assert.NotEmpty(t, resp.Token)
		assert.False(t, seen[resp.UserID], "each sign-in gets a fresh identity")
		seen[resp.UserID] = true
	}
	assert.Len(t, users.roles, 3)
}

func seedProperty(store *fakePropertyStore, id, ownerID string, interested ...string) {
	store.properties[id] = &models.Property{
		Listed:         true,
		OwnerID:        ownerID,
		InterestedList: append([]string{}, interested...),
		Buyer:          "",
	}
}

func TestExpressWithdrawRoundTrip(t *testing.T) {
	store := newFakePropertyStore()
	seedProperty(store, "prop-1", "landlord-1", "earlier-tenant")
	rc := testRedis()

	express := ExpressInterest(store, rc)
	withdraw := WithdrawInterest(store, rc)
	vars := map[string]string{"id": "prop-1"}

	// Express is idempotent under set semantics.
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		express(w, authedRequest(http.MethodPost, "/api/properties/prop-1/interest", "", "tenant-1", vars))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, []string{"earlier-tenant", "tenant-1"}, store.properties["prop-1"].InterestedList)

	// Withdraw restores the prior interested set.
	w := httptest.NewRecorder()
	withdraw(w, authedRequest(http.MethodDelete, "/api/properties/prop-1/interest", "", "tenant-1", vars))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"earlier-tenant"}, store.properties["prop-1"].InterestedList)
}

func TestExpressInterestOnClosedProperty(t *testing.T) {
	store := newFakePropertyStore()
	seedProperty(store, "prop-1", "landlord-1")
	store.properties["prop-1"].Buyer = "accepted-tenant"

	w := httptest.NewRecorder()
	ExpressInterest(store, testRedis())(w,
		authedRequest(http.MethodPost, "/api/properties/prop-1/interest", "", "tenant-1",
			map[string]string{"id": "prop-1"}))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAcceptClosesListing(t *testing.T) {
	store := newFakePropertyStore()
	seedProperty(store, "prop-1", "landlord-1", "tenant-1", "tenant-2")
	rc := testRedis()

	vars := map[string]string{"id": "prop-1", "userID": "tenant-1"}
	w := httptest.NewRecorder()
	AcceptInterestedUser(store, rc)(w,
		authedRequest(http.MethodPost, "/api/properties/prop-1/interested/tenant-1/accept", "", "landlord-1", vars))
	require.Equal(t, http.StatusOK, w.Code)

	p := store.properties["prop-1"]
	assert.Equal(t, "tenant-1", p.Buyer)
	assert.NotContains(t, p.InterestedList, "tenant-1")
	assert.Contains(t, p.InterestedList, "tenant-2")

	// A closed property never appears in browse, whatever Listed says.
	results, err := store.Browse(context.Background(), models.BrowseFilter{})
	require.NoError(t, err)
	assert.Empty(t, results)

	// Only one tenant per property can ever be accepted.
	w = httptest.NewRecorder()
	AcceptInterestedUser(store, rc)(w,
		authedRequest(http.MethodPost, "/api/properties/prop-1/interested/tenant-2/accept", "", "landlord-1",
			map[string]string{"id": "prop-1", "userID": "tenant-2"}))
	assert.Equal(t, http.StatusConflict, w.Code)
}
