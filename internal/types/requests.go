package types

import (
	"bytes"
	"encoding/json"

	"github.com/pageza/recipebox/backend/internal/models"
)

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// TextList is a list field that clients may also send as a single string,
// which becomes a one-item list.
type TextList []string

// UnmarshalJSON accepts a JSON array of strings or a single string
func (l *TextList) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*l = TextList{single}
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// CreateRecipeRequest represents the fields of a new recipe, sent as JSON or
// as multipart form fields next to a recipeImg file part. Missing fields are
// reported by the recipe service so the error names the field.
type CreateRecipeRequest struct {
	Title        string   `json:"title" form:"title"`
	Description  string   `json:"description" form:"description"`
	Category     string   `json:"category" form:"category"`
	Ingredients  TextList `json:"ingredients" form:"ingredients"`
	Instructions TextList `json:"instructions" form:"instructions"`
	CookingTime  int      `json:"cooking_time" form:"cooking_time"`
	// camelCase spelling used by browser clients
	CookingTimeAlias int `json:"cookingTime" form:"cookingTime"`
}

// Minutes returns cooking_time, falling back to cookingTime when unset
func (r *CreateRecipeRequest) Minutes() int {
	if r.CookingTime == 0 {
		return r.CookingTimeAlias
	}
	return r.CookingTime
}

// UpdateRecipeRequest carries only the fields to change
type UpdateRecipeRequest struct {
	Title            *string  `json:"title" form:"title"`
	Description      *string  `json:"description" form:"description"`
	Category         *string  `json:"category" form:"category"`
	Ingredients      TextList `json:"ingredients" form:"ingredients"`
	Instructions     TextList `json:"instructions" form:"instructions"`
	CookingTime      *int     `json:"cooking_time" form:"cooking_time"`
	CookingTimeAlias *int     `json:"cookingTime" form:"cookingTime"`
}

// Minutes returns the cooking time to set, or nil to leave it unchanged
func (r *UpdateRecipeRequest) Minutes() *int {
	if r.CookingTime == nil {
		return r.CookingTimeAlias
	}
	return r.CookingTime
}

// ReviewRequest represents the request body for reviewing a recipe
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// RecipeResponse wraps a recipe returned from a write
type RecipeResponse struct {
	Message string         `json:"message"`
	Recipe  *models.Recipe `json:"recipe"`
}

// MessageResponse is returned by operations without a body
type MessageResponse struct {
	Message string `json:"message"`
}
