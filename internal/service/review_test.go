package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/models"
)

func TestRecompute(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		count   int
		mean    float64
	}{
		{"empty", nil, 0, 0},
		{"single", []int{4}, 1, 4},
		{"mean", []int{5, 3}, 2, 4},
		{"fractional", []int{5, 4, 4}, 3, 13.0 / 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reviews models.Reviews
			for _, r := range tt.ratings {
				reviews = append(reviews, models.Review{Rating: r, Comment: "ok"})
			}
			count, mean := Recompute(reviews)
			assert.Equal(t, tt.count, count)
			assert.InDelta(t, tt.mean, mean, 1e-9)

			again, againMean := Recompute(reviews)
			assert.Equal(t, count, again)
			assert.Equal(t, mean, againMean)
		})
	}
}

func TestAppendReview(t *testing.T) {
	recipe := &models.Recipe{}
	reviewer := uuid.New()

	_, err := AppendReview(recipe, reviewer, "Ann", 5, "great")
	require.NoError(t, err)
	review, err := AppendReview(recipe, reviewer, "Ann", 3, "fine second time")
	require.NoError(t, err)

	assert.Equal(t, 2, recipe.NumReviews)
	assert.Equal(t, 4.0, recipe.Rating)
	assert.Equal(t, "great", recipe.Reviews[0].Comment)
	assert.Equal(t, "fine second time", recipe.Reviews[1].Comment)
	assert.Equal(t, "Ann", review.Name)
	assert.False(t, review.CreatedAt.IsZero())
}

func TestAppendReviewRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		comment string
		field   string
	}{
		{"rating too low", 0, "bad", "rating"},
		{"rating too high", 6, "wow", "rating"},
		{"empty comment", 3, "", "comment"},
		{"blank comment", 3, "   ", "comment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe := &models.Recipe{Reviews: models.Reviews{{Rating: 4, Comment: "ok"}}, NumReviews: 1, Rating: 4}

			_, err := AppendReview(recipe, uuid.New(), "Bob", tt.rating, tt.comment)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Len(t, recipe.Reviews, 1)
			assert.Equal(t, 1, recipe.NumReviews)
			assert.Equal(t, 4.0, recipe.Rating)
		})
	}
}
