package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/models"
)

func TestAdminRoutesRequireAdmin(t *testing.T) {
	s := setupTestServer(t)
	_, userToken := s.createUserAndToken(t, "alice", models.RoleUser)

	rec := s.perform(http.MethodGet, "/api/v1/admin/users", nil, userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.perform(http.MethodGet, "/api/v1/admin/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminUsers(t *testing.T) {
	s := setupTestServer(t)
	admin, adminToken := s.createUserAndToken(t, "root", models.RoleAdmin)
	alice, aliceToken := s.createUserAndToken(t, "alice", models.RoleUser)
	createRecipe(t, s, aliceToken)
	createRecipe(t, s, aliceToken)

	rec := s.perform(http.MethodGet, "/api/v1/admin/users", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []models.User
	decode(t, rec, &users)
	require.Len(t, users, 2)
	assert.Equal(t, admin.ID, users[0].ID)

	rec = s.perform(http.MethodGet, "/api/v1/admin/users/"+alice.ID.String(), nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary struct {
		ID          uuid.UUID `json:"id"`
		Email       string    `json:"email"`
		RecipeCount int64     `json:"recipe_count"`
	}
	decode(t, rec, &summary)
	assert.Equal(t, alice.ID, summary.ID)
	assert.Equal(t, int64(2), summary.RecipeCount)

	rec = s.perform(http.MethodDelete, "/api/v1/admin/users/"+alice.ID.String(), nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.perform(http.MethodGet, "/api/v1/recipes", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = s.perform(http.MethodGet, "/api/v1/admin/users/"+alice.ID.String(), nil, adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminDeleteRecipe(t *testing.T) {
	s := setupTestServer(t)
	_, adminToken := s.createUserAndToken(t, "root", models.RoleAdmin)
	_, aliceToken := s.createUserAndToken(t, "alice", models.RoleUser)
	recipe := createRecipe(t, s, aliceToken)

	rec := s.perform(http.MethodDelete, "/api/v1/admin/recipes/"+recipe.ID.String(), nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.perform(http.MethodGet, "/api/v1/recipes/"+recipe.ID.String(), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.perform(http.MethodDelete, "/api/v1/admin/recipes/"+recipe.ID.String(), nil, adminToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
