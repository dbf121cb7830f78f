package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/service"
)

var _ service.IRecipeService = (*MockRecipeService)(nil)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Create(ctx context.Context, ownerID uuid.UUID, input service.RecipeInput, image *service.Image) (*models.Recipe, error) {
	args := m.Called(ctx, ownerID, input, image)
	return recipeOrNil(args.Get(0)), args.Error(1)
}

func (m *MockRecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	return recipeOrNil(args.Get(0)), args.Error(1)
}

func (m *MockRecipeService) List(ctx context.Context, filter service.RecipeFilter) ([]*models.Recipe, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) Update(ctx context.Context, id, requesterID uuid.UUID, patch service.RecipePatch, image *service.Image) (*models.Recipe, error) {
	args := m.Called(ctx, id, requesterID, patch, image)
	return recipeOrNil(args.Get(0)), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	args := m.Called(ctx, id, requesterID)
	return args.Error(0)
}

func (m *MockRecipeService) DeleteAsAdmin(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeService) AddReview(ctx context.Context, id, reviewerID uuid.UUID, reviewerName string, rating int, comment string) (*models.Recipe, error) {
	args := m.Called(ctx, id, reviewerID, reviewerName, rating, comment)
	return recipeOrNil(args.Get(0)), args.Error(1)
}

func (m *MockRecipeService) ListReviews(ctx context.Context, id uuid.UUID) (models.Reviews, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Reviews), args.Error(1)
}

func (m *MockRecipeService) Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Recipe, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func recipeOrNil(v interface{}) *models.Recipe {
	if v == nil {
		return nil
	}
	return v.(*models.Recipe)
}
