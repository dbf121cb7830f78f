package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
)

// Dependencies is everything the HTTP layer needs. Redis and the limiters
// may be nil.
type Dependencies struct {
	DB            *gorm.DB
	Redis         *redis.Client
	Auth          service.IAuthService
	Recipes       service.IRecipeService
	Admin         service.IAdminService
	CreateLimiter *middleware.RateLimiter
	ReviewLimiter *middleware.RateLimiter
	Logger        *zap.Logger
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", NewHealthHandler(deps.DB, deps.Redis, deps.Logger).Check)

	auth := middleware.AuthMiddleware(deps.Auth)

	v1 := router.Group("/api/v1")
	NewAuthHandler(deps.Auth, deps.Logger).RegisterRoutes(v1)
	NewRecipeHandler(deps.Recipes, deps.Logger).RegisterRoutes(v1, auth, deps.CreateLimiter, deps.ReviewLimiter)
	NewAdminHandler(deps.Admin, deps.Recipes, deps.Logger).RegisterRoutes(v1, auth)
}
