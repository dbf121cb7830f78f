package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
)

// RecipeFilter narrows a recipe listing. A nil OwnerID lists every recipe.
// ExcludeOwnerID drops that user's recipes.
type RecipeFilter struct {
	OwnerID        *uuid.UUID
	ExcludeOwnerID *uuid.UUID
}

// RecipeRepository persists recipe aggregates.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]*models.Recipe, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Mutate(ctx context.Context, id uuid.UUID, fn func(*models.Recipe) error) (*models.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BlobStore stores recipe images.
type BlobStore interface {
	Put(ctx context.Context, data []byte, suggestedName string) (string, error)
	Delete(ctx context.Context, ref string) error
}

// ImageResolver turns a stored image reference into a data URI.
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input RecipeInput, image *Image) (*models.Recipe, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]*models.Recipe, error)
	Update(ctx context.Context, id, requesterID uuid.UUID, patch RecipePatch, image *Image) (*models.Recipe, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID) error
	DeleteAsAdmin(ctx context.Context, id uuid.UUID) error
	AddReview(ctx context.Context, id, reviewerID uuid.UUID, reviewerName string, rating int, comment string) (*models.Recipe, error)
	ListReviews(ctx context.Context, id uuid.UUID) (models.Reviews, error)
	Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Recipe, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IAdminService defines the interface for user moderation
type IAdminService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserSummary, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
