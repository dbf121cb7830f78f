package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/repository"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/storage"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
)

const testSecret = "test-secret-key"

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router  *gin.Engine
	db      *gorm.DB
	auth    *service.AuthService
	recipes *service.RecipeService
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWithLimits(t, nil, nil)
}

func setupTestServerWithLimits(t *testing.T, createLimit, reviewLimit *middleware.RateLimiter) *testServer {
	t.Helper()

	db := testhelpers.SetupTestDatabase(t)
	store, err := storage.NewLocalStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	recipeRepo := repository.NewRecipeRepository(db)
	userRepo := repository.NewUserRepository(db)
	recipes := service.NewRecipeService(recipeRepo, store, storage.NewDataURIResolver(store), zap.NewNop())
	auth := service.NewAuthService(userRepo, testSecret, 0, zap.NewNop())

	router := gin.New()
	RegisterRoutes(router, Dependencies{
		DB:            db,
		Auth:          auth,
		Recipes:       recipes,
		Admin:         service.NewAdminService(userRepo, recipeRepo, recipes, zap.NewNop()),
		CreateLimiter: createLimit,
		ReviewLimiter: reviewLimit,
		Logger:        zap.NewNop(),
	})

	return &testServer{router: router, db: db, auth: auth, recipes: recipes}
}

// createUserAndToken creates a user and returns it with a valid token.
func (s *testServer) createUserAndToken(t *testing.T, name, role string) (*models.User, string) {
	t.Helper()
	user := testhelpers.CreateTestUser(t, s.db, name, role)
	token, err := s.auth.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func (s *testServer) perform(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.serve(req, token)
}

func (s *testServer) performMultipart(method, path string, fields map[string][]string, image []byte, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, values := range fields {
		for _, v := range values {
			_ = w.WriteField(name, v)
		}
	}
	if image != nil {
		part, _ := w.CreateFormFile(imageField, "dish.png")
		_, _ = part.Write(image)
	}
	_ = w.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.serve(req, token)
}

func (s *testServer) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func recipeBody() map[string]interface{} {
	return map[string]interface{}{
		"title":        "Pasta",
		"description":  "Quick weeknight pasta",
		"category":     "Dinner",
		"ingredients":  []string{"pasta", "salt"},
		"instructions": []string{"boil water", "cook pasta"},
		"cooking_time": 20,
	}
}
