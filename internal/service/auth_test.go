package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/repository"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
	"github.com/pageza/recipebox/backend/internal/types"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	return service.NewAuthService(repository.NewUserRepository(db), testSecret, time.Hour, zap.NewNop())
}

func TestRegisterIssuesToken(t *testing.T) {
	auth := newAuthService(t)

	user, token, err := auth.Register(context.Background(), "Test User", "Test@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "Test User", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.False(t, claims.IsAdmin())
}

func TestRegisterValidation(t *testing.T) {
	auth := newAuthService(t)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		field    string
	}{
		{"missing name", "", "a@example.com", "password123", "name"},
		{"bad email", "A", "not-an-email", "password123", "email"},
		{"short password", "A", "a@example.com", "short", "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := auth.Register(context.Background(), tt.userName, tt.email, tt.password)
			var ve *service.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "First", "dup@example.com", "password123")
	require.NoError(t, err)

	_, _, err = auth.Register(ctx, "Second", " DUP@example.com ", "password456")
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestLogin(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	registered, _, err := auth.Register(ctx, "Login User", "login@example.com", "password123")
	require.NoError(t, err)

	user, token, err := auth.Login(ctx, "login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	_, _, err := auth.Register(ctx, "Login User", "login@example.com", "password123")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "login@example.com", "wrongpassword")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateTokenRejectsBadTokens(t *testing.T) {
	auth := newAuthService(t)
	user := &models.User{Name: "x", Role: models.RoleAdmin}

	other := service.NewAuthService(nil, "another-secret", time.Hour, zap.NewNop())
	foreign, err := other.GenerateToken(user)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
		UserID:           user.ID,
	})
	expiredToken, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "invalid.token",
		"wrong secret": foreign,
		"expired":      expiredToken,
	} {
		t.Run(name, func(t *testing.T) {
			claims, err := auth.ValidateToken(token)
			assert.ErrorIs(t, err, service.ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestAdminTokenCarriesRole(t *testing.T) {
	auth := newAuthService(t)

	token, err := auth.GenerateToken(&models.User{Name: "root", Role: models.RoleAdmin})
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

func TestCreateAccountWithRole(t *testing.T) {
	auth := newAuthService(t)
	ctx := context.Background()

	admin, err := auth.CreateAccount(ctx, "Root", "root@example.com", "password123", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	_, token, err := auth.Login(ctx, "root@example.com", "password123")
	require.NoError(t, err)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())

	_, err = auth.CreateAccount(ctx, "Mod", "mod@example.com", "password123", "moderator")
	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "role", ve.Field)
}
