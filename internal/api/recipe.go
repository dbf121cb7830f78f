package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	logger  *zap.Logger
}

func NewRecipeHandler(recipes service.IRecipeService, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, logger: logger}
}

// RegisterRoutes mounts the recipe routes. auth guards every write; the
// limiters are applied after auth since they key on the caller.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc, createLimit, reviewLimit *middleware.RateLimiter) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/my-recipes", auth, h.MyRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", limited(auth, createLimit, h.CreateRecipe)...)
		recipes.PUT("/:id", auth, h.UpdateRecipe)
		recipes.DELETE("/:id", auth, h.DeleteRecipe)
		recipes.POST("/:id/review", limited(auth, reviewLimit, h.AddReview)...)
		recipes.GET("/:id/reviews", h.ListReviews)
	}
	router.GET("/users/recommendations/:id", auth, h.Recommendations)
}

func limited(auth gin.HandlerFunc, limiter *middleware.RateLimiter, handler gin.HandlerFunc) []gin.HandlerFunc {
	if limiter == nil {
		return []gin.HandlerFunc{auth, handler}
	}
	return []gin.HandlerFunc{auth, limiter.RateLimitMiddleware(), handler}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context(), service.RecipeFilter{})
	if err != nil {
		respondError(c, h.logger, err, "recipe")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) MyRecipes(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipes, err := h.recipes.List(c.Request.Context(), service.RecipeFilter{OwnerID: &claims.UserID})
	if err != nil {
		respondError(c, h.logger, err, "recipe")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.CreateRecipeRequest
	image, err := bindRecipe(c, &req)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), claims.UserID, service.RecipeInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Ingredients:  formList(req.Ingredients),
		Instructions: formList(req.Instructions),
		CookingTime:  req.Minutes(),
	}, image)
	if err != nil {
		respondError(c, h.logger, err, "recipe")
		return
	}

	h.logger.Info("recipe created",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("user_id", claims.UserID.String()),
	)
	c.JSON(http.StatusCreated, types.RecipeResponse{Message: "Recipe created successfully", Recipe: recipe})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	var req types.UpdateRecipeRequest
	image, err := bindRecipe(c, &req)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	patch := service.RecipePatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CookingTime: req.Minutes(),
	}
	if req.Ingredients != nil {
		patch.Ingredients = formList(req.Ingredients)
	}
	if req.Instructions != nil {
		patch.Instructions = formList(req.Instructions)
	}

	recipe, err := h.recipes.Update(c.Request.Context(), id, claims.UserID, patch, image)
	if err != nil {
		respondError(c, h.logger, err, "recipe")
		return
	}
	c.JSON(http.StatusOK, types.RecipeResponse{Message: "Recipe updated successfully", Recipe: recipe})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		respondError(c, h.logger, err, "recipe")
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: "Recipe deleted successfully"})
}

func (h *RecipeHandler) AddReview(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	var req types.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	recipe, err := h.recipes.AddReview(c.Request.Context(), id, claims.UserID, claims.Username, req.Rating, req.Comment)
	if err != nil {
		respondError(c, h.logger, err, "recipe")
		return
	}
	c.JSON(http.StatusOK, types.RecipeResponse{Message: "Review added successfully", Recipe: recipe})
}

func (h *RecipeHandler) ListReviews(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	reviews, err := h.recipes.ListReviews(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "recipe")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Recommendations lists recipes for the user in the path. Only that user or
// an admin may ask.
func (h *RecipeHandler) Recommendations(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	userID, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if userID != claims.UserID && !claims.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to view these recommendations"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, h.logger, service.NewValidationError("limit", "must be a positive number"), "recipe")
			return
		}
		limit = n
	}

	recipes, err := h.recipes.Recommend(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, h.logger, err, "recipe")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) badRequest(c *gin.Context, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		respondError(c, h.logger, err, "recipe")
		return
	}
	h.logger.Debug("rejected request body", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": errBadBody.Error()})
}
