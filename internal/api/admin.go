package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// AdminHandler serves user and recipe moderation for admins.
type AdminHandler struct {
	admin   service.IAdminService
	recipes service.IRecipeService
	logger  *zap.Logger
}

func NewAdminHandler(admin service.IAdminService, recipes service.IRecipeService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, recipes: recipes, logger: logger}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	admin := router.Group("/admin", auth, middleware.RequireAdmin())
	{
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.DELETE("/recipes/:id", h.DeleteRecipe)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "user")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	user, err := h.admin.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "user")
		return
	}

	if claims, ok := middleware.CurrentUser(c); ok {
		h.logger.Info("user deleted by admin",
			zap.String("user_id", id.String()),
			zap.String("admin_id", claims.UserID.String()),
		)
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: "User deleted successfully"})
}

func (h *AdminHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	if err := h.recipes.DeleteAsAdmin(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "recipe")
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: "Recipe deleted successfully"})
}
