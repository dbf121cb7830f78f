package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/repository"
	"github.com/pageza/recipebox/backend/internal/server"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.IsDevelopment())
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	db, err := database.New(cfg, zl)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db, zl); err != nil {
		return err
	}

	// Redis backs the image cache and rate limits; both work without it
	redisClient, err := database.NewRedisClient(cfg, zl)
	if err != nil {
		zl.Warn("continuing without Redis", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	blobs, resolver, err := newImageStorage(cfg, redisClient, zl)
	if err != nil {
		return err
	}

	recipeRepo := repository.NewRecipeRepository(db)
	userRepo := repository.NewUserRepository(db)
	recipes := service.NewRecipeService(recipeRepo, blobs, resolver, zl)

	srv := server.New(cfg, api.Dependencies{
		DB:            db,
		Redis:         redisClient,
		Auth:          service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, zl),
		Recipes:       recipes,
		Admin:         service.NewAdminService(userRepo, recipeRepo, recipes, zl),
		CreateLimiter: middleware.NewRecipeCreationRateLimiter(redisClient, cfg.RecipeCreateLimit, cfg.RateLimitWindow, zl),
		ReviewLimiter: middleware.NewReviewRateLimiter(redisClient, cfg.ReviewLimit, cfg.RateLimitWindow, zl),
		Logger:        zl,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		zl.Info("received signal", zap.String("signal", sig.String()))
	}

	zl.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	zl.Info("server stopped")
	return nil
}

// newImageStorage picks the blob backend and stacks the resolver on top of
// it: data URI encoding, then the Redis cache when available. Only the remote
// backend sits behind the circuit breaker.
func newImageStorage(cfg *config.Config, redisClient *redis.Client, zl *zap.Logger) (service.BlobStore, service.ImageResolver, error) {
	var blobs storage.BlobStore
	switch cfg.StorageBackend {
	case "s3":
		s3Config, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to configure S3: %w", err)
		}
		blobs = storage.NewBreakerStore(storage.NewS3Store(s3Config, zl), storage.BreakerSettings{
			ConsecutiveFailures: cfg.BreakerFailures,
			OpenTimeout:         cfg.BreakerTimeout,
		}, zl)
	default:
		local, err := storage.NewLocalStore(cfg.UploadDir, zl)
		if err != nil {
			return nil, nil, err
		}
		blobs = local
	}

	var resolver storage.ImageResolver = storage.NewDataURIResolver(blobs)
	if redisClient != nil {
		resolver = storage.NewCachedResolver(resolver, redisClient, cfg.ImageCacheTTL, zl)
	}

	zl.Info("image storage ready", zap.String("backend", cfg.StorageBackend), zap.Bool("cache", redisClient != nil))
	return blobs, resolver, nil
}
