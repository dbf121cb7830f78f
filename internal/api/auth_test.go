package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	s := setupTestServer(t)

	rec := s.perform(http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Name:     "Carol",
		Email:    "Carol@Example.com",
		Password: "supersecret",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered types.AuthResponse
	decode(t, rec, &registered)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "carol@example.com", registered.User.Email)
	assert.Equal(t, models.RoleUser, registered.User.Role)
	assert.NotContains(t, rec.Body.String(), "supersecret")

	rec = s.perform(http.MethodPost, "/api/v1/auth/login", types.LoginRequest{
		Email:    "carol@example.com",
		Password: "supersecret",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var loggedIn types.AuthResponse
	decode(t, rec, &loggedIn)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	// the issued token authenticates writes
	rec = s.perform(http.MethodPost, "/api/v1/recipes", recipeBody(), loggedIn.Token)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterErrors(t *testing.T) {
	s := setupTestServer(t)

	body := types.RegisterRequest{Name: "Dan", Email: "dan@example.com", Password: "password1"}
	rec := s.perform(http.MethodPost, "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("duplicate email", func(t *testing.T) {
		rec := s.perform(http.MethodPost, "/api/v1/auth/register", body, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("short password", func(t *testing.T) {
		rec := s.perform(http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
			Name: "Eve", Email: "eve@example.com", Password: "short",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad email", func(t *testing.T) {
		rec := s.perform(http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
			Name: "Eve", Email: "not-an-email", Password: "password1",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginErrors(t *testing.T) {
	s := setupTestServer(t)
	user, _ := s.createUserAndToken(t, "frank", models.RoleUser)

	tests := []struct {
		name string
		body types.LoginRequest
		want int
	}{
		{"wrong password", types.LoginRequest{Email: user.Email, Password: "wrong-password"}, http.StatusUnauthorized},
		{"unknown email", types.LoginRequest{Email: "nobody@example.com", Password: "password123"}, http.StatusUnauthorized},
		{"missing fields", types.LoginRequest{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.perform(http.MethodPost, "/api/v1/auth/login", tt.body, "")
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	rec := s.perform(http.MethodPost, "/api/v1/auth/login", types.LoginRequest{Email: user.Email, Password: "password123"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInvalidTokenRejected(t *testing.T) {
	s := setupTestServer(t)

	rec := s.perform(http.MethodGet, "/api/v1/recipes/my-recipes", nil, "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
