// Command seed fills a development database with accounts and sample
// recipes. Existing accounts are left as they are, so it can be rerun.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/repository"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/storage"
)

type seedUser struct {
	name  string
	email string
	role  string
}

var seedUsers = []seedUser{
	{"Admin User", "admin@example.com", models.RoleAdmin},
	{"John Doe", "john.doe@example.com", models.RoleUser},
	{"Jane Smith", "jane.smith@example.com", models.RoleUser},
}

var seedRecipes = []service.RecipeInput{
	{
		Title:        "Spaghetti Aglio e Olio",
		Description:  "Garlic, olive oil and chili over spaghetti.",
		Category:     "Dinner",
		Ingredients:  []string{"200g spaghetti", "4 cloves garlic", "60ml olive oil", "1 tsp chili flakes", "parsley"},
		Instructions: []string{"Boil the pasta in salted water.", "Gently fry sliced garlic and chili in the oil.", "Toss the pasta with the oil and parsley."},
		CookingTime:  20,
	},
	{
		Title:        "Overnight Oats",
		Description:  "No-cook breakfast prepared the night before.",
		Category:     "Breakfast",
		Ingredients:  []string{"50g rolled oats", "120ml milk", "1 tbsp honey", "berries"},
		Instructions: []string{"Mix oats, milk and honey in a jar.", "Refrigerate overnight.", "Top with berries."},
		CookingTime:  5,
	},
	{
		Title:        "Tomato Lentil Soup",
		Description:  "A thick red lentil soup with cumin.",
		Category:     "Lunch",
		Ingredients:  []string{"200g red lentils", "1 onion", "400g chopped tomatoes", "1 tsp cumin", "1l stock"},
		Instructions: []string{"Soften the onion.", "Add cumin, lentils, tomatoes and stock.", "Simmer for 25 minutes and blend."},
		CookingTime:  35,
	},
}

func main() {
	password := flag.String("password", "testpassword123", "password for every seeded account")
	withRecipes := flag.Bool("recipes", true, "also create sample recipes and reviews")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zl := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.IsDevelopment())
	defer func() { _ = zl.Sync() }()

	db, err := database.New(cfg, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, zl); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	userRepo := repository.NewUserRepository(db)
	auth := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, zl)

	var created []*models.User
	for _, u := range seedUsers {
		user, err := auth.CreateAccount(ctx, u.name, u.email, *password, u.role)
		if errors.Is(err, service.ErrConflict) {
			zl.Info("account already exists, skipping", zap.String("email", u.email))
			continue
		}
		if err != nil {
			zl.Fatal("failed to create account", zap.String("email", u.email), zap.Error(err))
		}
		zl.Info("created account", zap.String("email", u.email), zap.String("role", u.role))
		created = append(created, user)
	}

	if !*withRecipes || len(created) < 2 {
		return
	}

	store, err := storage.NewLocalStore(cfg.UploadDir, zl)
	if err != nil {
		zl.Fatal("failed to open upload directory", zap.Error(err))
	}
	recipes := service.NewRecipeService(repository.NewRecipeRepository(db), store, storage.NewDataURIResolver(store), zl)

	// recipes belong to the last account and are reviewed by the others
	owner := created[len(created)-1]
	for i, input := range seedRecipes {
		recipe, err := recipes.Create(ctx, owner.ID, input, nil)
		if err != nil {
			zl.Fatal("failed to create recipe", zap.String("title", input.Title), zap.Error(err))
		}
		for j, reviewer := range created[:len(created)-1] {
			rating := 5 - (i+j)%3
			if _, err := recipes.AddReview(ctx, recipe.ID, reviewer.ID, reviewer.Name, rating, "Made this at home."); err != nil {
				zl.Fatal("failed to add review", zap.Error(err))
			}
		}
		zl.Info("created recipe", zap.String("title", recipe.Title))
	}
}
