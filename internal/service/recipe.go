package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/models"
)

// RecipeInput carries the fields of a new recipe.
type RecipeInput struct {
	Title        string
	Description  string
	Category     string
	Ingredients  []string
	Instructions []string
	CookingTime  int
}

// RecipePatch carries the fields to change on an existing recipe. Nil fields
// are left as they are.
type RecipePatch struct {
	Title        *string
	Description  *string
	Category     *string
	Ingredients  []string
	Instructions []string
	CookingTime  *int
}

// Recommendation limits
const (
	DefaultRecommendations = 10
	MaxRecommendations     = 50
)

// Image is an uploaded image file.
type Image struct {
	Data     []byte
	Filename string
}

// RecipeService handles recipe operations
type RecipeService struct {
	recipes  RecipeRepository
	blobs    BlobStore
	resolver ImageResolver
	logger   *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(recipes RecipeRepository, blobs BlobStore, resolver ImageResolver, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		recipes:  recipes,
		blobs:    blobs,
		resolver: resolver,
		logger:   logger,
	}
}

// Create stores the image, if any, and then the recipe. A failed image write
// fails the whole create.
func (s *RecipeService) Create(ctx context.Context, ownerID uuid.UUID, input RecipeInput, image *Image) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Ingredients:  copyList(input.Ingredients),
		Instructions: copyList(input.Instructions),
		CookingTime:  input.CookingTime,
		UserID:       ownerID,
		Reviews:      models.Reviews{},
	}
	if err := ValidateStruct(recipe); err != nil {
		return nil, err
	}

	ref, err := s.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}
	recipe.ImageRef = ref

	if err := s.recipes.Create(ctx, recipe); err != nil {
		if ref != "" {
			s.deleteImage(ctx, ref)
		}
		return nil, err
	}

	s.logger.Info("recipe created",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.Bool("has_image", recipe.HasImage()),
	)
	return s.Get(ctx, recipe.ID)
}

// Get returns the recipe with its image inlined. An unreadable image is
// dropped from the result rather than failing the read.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolveImage(ctx, recipe)
	return recipe, nil
}

// List returns recipes in repository order, resolving each image on its own.
func (s *RecipeService) List(ctx context.Context, filter RecipeFilter) ([]*models.Recipe, error) {
	recipes, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, recipe := range recipes {
		s.resolveImage(ctx, recipe)
	}
	return recipes, nil
}

// Update applies patch for the recipe owner. A new image replaces the
// reference; the previous blob is kept. The patched recipe is validated before
// any image is written.
func (s *RecipeService) Update(ctx context.Context, id, requesterID uuid.UUID, patch RecipePatch, image *Image) (*models.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != requesterID {
		s.logger.Warn("update attempt by non-owner",
			zap.String("recipe_id", id.String()),
			zap.String("requester_id", requesterID.String()),
		)
		return nil, ErrForbidden
	}

	applyPatch(recipe, patch)
	if err := ValidateStruct(recipe); err != nil {
		return nil, err
	}

	ref, err := s.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if ref != "" {
		recipe.ImageRef = ref
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		if ref != "" {
			s.deleteImage(ctx, ref)
		}
		return nil, err
	}

	s.logger.Info("recipe updated", zap.String("recipe_id", id.String()))
	return s.Get(ctx, id)
}

// Delete removes the recipe for its owner.
func (s *RecipeService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if recipe.UserID != requesterID {
		s.logger.Warn("delete attempt by non-owner",
			zap.String("recipe_id", id.String()),
			zap.String("requester_id", requesterID.String()),
		)
		return ErrForbidden
	}
	return s.remove(ctx, recipe)
}

// DeleteAsAdmin removes any recipe regardless of owner.
func (s *RecipeService) DeleteAsAdmin(ctx context.Context, id uuid.UUID) error {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, recipe)
}

// AddReview appends a review and refreshes the rating. Reviews from the same
// user, including the owner, are all kept.
func (s *RecipeService) AddReview(ctx context.Context, id, reviewerID uuid.UUID, reviewerName string, rating int, comment string) (*models.Recipe, error) {
	comment = strings.TrimSpace(comment)
	recipe, err := s.recipes.Mutate(ctx, id, func(r *models.Recipe) error {
		_, err := AppendReview(r, reviewerID, reviewerName, rating, comment)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("review added",
		zap.String("recipe_id", id.String()),
		zap.String("reviewer_id", reviewerID.String()),
		zap.Int("rating", rating),
	)
	s.resolveImage(ctx, recipe)
	return recipe, nil
}

// ListReviews returns the recipe's reviews in the order they were added.
func (s *RecipeService) ListReviews(ctx context.Context, id uuid.UUID) (models.Reviews, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.Reviews == nil {
		return models.Reviews{}, nil
	}
	return recipe.Reviews, nil
}

// Recommend returns the best rated recipes userID neither owns nor has
// reviewed, highest rating first. Ties go to the recipe with more reviews,
// then to the older one.
func (s *RecipeService) Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Recipe, error) {
	if limit <= 0 {
		limit = DefaultRecommendations
	}
	if limit > MaxRecommendations {
		limit = MaxRecommendations
	}

	candidates, err := s.recipes.List(ctx, RecipeFilter{ExcludeOwnerID: &userID})
	if err != nil {
		return nil, err
	}

	picks := make([]*models.Recipe, 0, len(candidates))
	for _, recipe := range candidates {
		if !reviewedBy(recipe, userID) {
			picks = append(picks, recipe)
		}
	}
	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].Rating != picks[j].Rating {
			return picks[i].Rating > picks[j].Rating
		}
		return picks[i].NumReviews > picks[j].NumReviews
	})
	if len(picks) > limit {
		picks = picks[:limit]
	}

	for _, recipe := range picks {
		s.resolveImage(ctx, recipe)
	}
	s.logger.Debug("recommendations built",
		zap.String("user_id", userID.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(picks)),
	)
	return picks, nil
}

func reviewedBy(recipe *models.Recipe, userID uuid.UUID) bool {
	for _, review := range recipe.Reviews {
		if review.UserID == userID {
			return true
		}
	}
	return false
}

// remove deletes the record. The image is deleted best effort; a failure is
// only logged.
func (s *RecipeService) remove(ctx context.Context, recipe *models.Recipe) error {
	if recipe.HasImage() {
		s.deleteImage(ctx, recipe.ImageRef)
	}
	if err := s.recipes.Delete(ctx, recipe.ID); err != nil {
		return err
	}
	s.logger.Info("recipe deleted", zap.String("recipe_id", recipe.ID.String()))
	return nil
}

func (s *RecipeService) storeImage(ctx context.Context, image *Image) (string, error) {
	if image == nil || len(image.Data) == 0 {
		return "", nil
	}
	ref, err := s.blobs.Put(ctx, image.Data, image.Filename)
	if err != nil {
		s.logger.Error("failed to store recipe image", zap.String("filename", image.Filename), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return ref, nil
}

func (s *RecipeService) deleteImage(ctx context.Context, ref string) {
	if err := s.blobs.Delete(ctx, ref); err != nil {
		s.logger.Warn("failed to delete recipe image", zap.String("ref", ref), zap.Error(err))
	}
}

func (s *RecipeService) resolveImage(ctx context.Context, recipe *models.Recipe) {
	recipe.Image = ""
	if !recipe.HasImage() {
		return
	}
	uri, err := s.resolver.Resolve(ctx, recipe.ImageRef)
	if err != nil {
		s.logger.Warn("recipe image unavailable",
			zap.String("recipe_id", recipe.ID.String()),
			zap.String("ref", recipe.ImageRef),
			zap.Error(err),
		)
		return
	}
	recipe.Image = uri
}

func applyPatch(recipe *models.Recipe, patch RecipePatch) {
	if patch.Title != nil {
		recipe.Title = *patch.Title
	}
	if patch.Description != nil {
		recipe.Description = *patch.Description
	}
	if patch.Category != nil {
		recipe.Category = *patch.Category
	}
	if patch.Ingredients != nil {
		recipe.Ingredients = copyList(patch.Ingredients)
	}
	if patch.Instructions != nil {
		recipe.Instructions = copyList(patch.Instructions)
	}
	if patch.CookingTime != nil {
		recipe.CookingTime = *patch.CookingTime
	}
}

// copyList keeps entries exactly as sent. Blank entries are left for the
// validator to reject.
func copyList(items []string) models.StringList {
	if items == nil {
		return nil
	}
	return append(models.StringList{}, items...)
}
