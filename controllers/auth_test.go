package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcode-github/rental_marketplace/backend/models"
)

// Validation failures short-circuit before the repository is touched, so a
// nil repository is fine for these paths.

func postRegister(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	RegisterUser(nil)(w, r)
	return w
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	w := postRegister(t, `{"email":"a@b.com","password":"short","role":"Tenant"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "password")
}

func TestRegisterRejectsEmptyEmail(t *testing.T) {
	w := postRegister(t, `{"email":"  ","password":"longenough","role":"Tenant"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	w := postRegister(t, `{"email":"a@b.com","password":"longenough","role":"Admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRejectsAnonymousRole(t *testing.T) {
	// Anonymous identities come from anonymous sign-in, never signup.
	w := postRegister(t, `{"email":"a@b.com","password":"longenough","role":"Anonymous"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRejectsBadPayload(t *testing.T) {
	w := postRegister(t, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWriteErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, models.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp models.APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}
