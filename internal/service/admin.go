package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/models"
)

// UserSummary is a user as seen by an administrator.
type UserSummary struct {
	*models.User
	RecipeCount int64 `json:"recipe_count"`
}

// AdminService moderates users. Removing a user removes their recipes first,
// through the same path an owner delete takes, so their images are cleaned up.
type AdminService struct {
	users   UserRepository
	recipes RecipeRepository
	recipe  *RecipeService
	logger  *zap.Logger
}

func NewAdminService(users UserRepository, recipes RecipeRepository, recipe *RecipeService, logger *zap.Logger) *AdminService {
	return &AdminService{
		users:   users,
		recipes: recipes,
		recipe:  recipe,
		logger:  logger,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

func (s *AdminService) GetUser(ctx context.Context, id uuid.UUID) (*UserSummary, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.recipes.CountByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserSummary{User: user, RecipeCount: count}, nil
}

// DeleteUser removes the user and everything they own.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}

	owned, err := s.recipes.List(ctx, RecipeFilter{OwnerID: &id})
	if err != nil {
		return err
	}
	for _, recipe := range owned {
		if err := s.recipe.remove(ctx, recipe); err != nil {
			return err
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted",
		zap.String("user_id", id.String()),
		zap.Int("recipes_removed", len(owned)),
	)
	return nil
}
