package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/models"
)

// ValidateReview checks a rating and comment before they are appended.
func ValidateReview(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return NewValidationError("rating", "must be between 1 and 5")
	}
	if strings.TrimSpace(comment) == "" {
		return NewValidationError("comment", "is required")
	}
	return nil
}

// AppendReview adds a review to the end of the recipe's reviews and refreshes
// the derived counters. An invalid review leaves the recipe untouched.
func AppendReview(recipe *models.Recipe, reviewerID uuid.UUID, reviewerName string, rating int, comment string) (*models.Review, error) {
	if err := ValidateReview(rating, comment); err != nil {
		return nil, err
	}

	review := models.Review{
		UserID:    reviewerID,
		Name:      reviewerName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	recipe.Reviews = append(recipe.Reviews, review)
	recipe.NumReviews, recipe.Rating = Recompute(recipe.Reviews)
	return &review, nil
}

// Recompute returns the review count and mean rating, 0 when there are no reviews.
func Recompute(reviews models.Reviews) (int, float64) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return len(reviews), float64(sum) / float64(len(reviews))
}
