package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/models"
)

func TestSetupTestDatabaseIsIsolated(t *testing.T) {
	first := SetupTestDatabase(t)
	second := SetupTestDatabase(t)

	user := CreateTestUser(t, first, "alice", models.RoleUser)
	require.NoError(t, first.Create(NewTestRecipe(user.ID, "Pancakes")).Error)

	var count int64
	require.NoError(t, second.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, first.Model(&models.Recipe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetupPostgresDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := SetupPostgresDatabase(t)

	user := CreateTestUser(t, db, "bob", models.RoleAdmin)
	assert.True(t, user.IsAdmin())

	recipe := NewTestRecipe(user.ID, "Stew")
	require.NoError(t, db.Create(recipe).Error)

	var loaded models.Recipe
	require.NoError(t, db.First(&loaded, "id = ?", recipe.ID).Error)
	assert.Equal(t, recipe.Instructions, loaded.Instructions)
	assert.Empty(t, loaded.Reviews)
}
