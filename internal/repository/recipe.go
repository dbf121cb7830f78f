// Package repository persists recipes and users with GORM.
//
// Recipes are stored as one document per row: ingredients, instructions and
// reviews are JSON columns, so a recipe and everything embedded in it is read
// and written in a single statement.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/service"
)

// recipeBodyColumns are written by Update. Reviews and the derived rating are
// written only through Mutate so a body edit cannot drop a review appended
// concurrently.
var recipeBodyColumns = []string{
	"title", "description", "category", "ingredients", "instructions",
	"cooking_time", "image_ref", "updated_at",
}

// RecipeRepository stores recipes.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create validates and inserts a new recipe.
func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if recipe.Reviews == nil {
		recipe.Reviews = models.Reviews{}
	}
	if err := service.ValidateStruct(recipe); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// GetByID returns the recipe with its owner's and reviewers' current display
// names filled in.
func (r *RecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).Preload("Owner").First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	fillOwnerName(&recipe)
	if err := r.fillReviewerNames(ctx, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns recipes in insertion order, narrowed by filter.
func (r *RecipeRepository) List(ctx context.Context, filter service.RecipeFilter) ([]*models.Recipe, error) {
	query := r.db.WithContext(ctx).Preload("Owner")
	if filter.OwnerID != nil {
		query = query.Where("user_id = ?", *filter.OwnerID)
	}
	if filter.ExcludeOwnerID != nil {
		query = query.Where("user_id <> ?", *filter.ExcludeOwnerID)
	}

	recipes := make([]*models.Recipe, 0)
	if err := query.Order("created_at ASC").Order("id ASC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	for _, recipe := range recipes {
		fillOwnerName(recipe)
	}
	if err := r.fillReviewerNames(ctx, recipes...); err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountByOwner returns how many recipes ownerID has created.
func (r *RecipeRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("user_id = ?", ownerID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

// Update writes the recipe body. Concurrent body updates are last-write-wins.
func (r *RecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	if err := service.ValidateStruct(recipe); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&models.Recipe{ID: recipe.ID}).
		Select(recipeBodyColumns).
		Updates(recipe)
	if result.Error != nil {
		return fmt.Errorf("failed to update recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

// Mutate loads the recipe under a row lock, applies fn and saves its reviews
// and derived rating in the same transaction. Concurrent calls on the same
// recipe are serialized by the lock. If fn fails nothing is written.
func (r *RecipeRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(*models.Recipe) error) (*models.Recipe, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var recipe models.Recipe
		if err := query.First(&recipe, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		if err := fn(&recipe); err != nil {
			return err
		}
		if err := service.ValidateStruct(&recipe); err != nil {
			return err
		}

		return tx.Model(&models.Recipe{ID: recipe.ID}).
			Select("reviews", "rating", "num_reviews", "updated_at").
			Updates(&recipe).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the recipe.
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return service.ErrNotFound
	}
	return nil
}

// fillReviewerNames looks up the distinct reviewers of recipes in one query.
func (r *RecipeRepository) fillReviewerNames(ctx context.Context, recipes ...*models.Recipe) error {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, recipe := range recipes {
		for _, review := range recipe.Reviews {
			if _, ok := seen[review.UserID]; !ok {
				seen[review.UserID] = struct{}{}
				ids = append(ids, review.UserID)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var users []models.User
	err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return fmt.Errorf("failed to load reviewer names: %w", err)
	}
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	for _, recipe := range recipes {
		for i := range recipe.Reviews {
			recipe.Reviews[i].ReviewerName = names[recipe.Reviews[i].UserID]
		}
	}
	return nil
}

func fillOwnerName(recipe *models.Recipe) {
	if recipe.Owner != nil {
		recipe.OwnerName = recipe.Owner.Name
	}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrNotFound
	}
	return err
}
