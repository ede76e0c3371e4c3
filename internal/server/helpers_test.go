package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andomorphia/devconnector/internal/config"
	"github.com/andomorphia/devconnector/internal/database"
	"github.com/andomorphia/devconnector/internal/models"
	"github.com/andomorphia/devconnector/internal/repository"
	"github.com/andomorphia/devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer wires a Server against an in-memory SQLite database with
// the full route table registered. Metrics and Redis are left out.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	s := &Server{
		config:         &config.Config{JWTSecret: "test_secret"},
		db:             db,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		postRepo:       postRepo,
		profileService: service.NewProfileService(profileRepo, userRepo),
		postService:    service.NewPostService(postRepo),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// registerTestUser persists a user directly and returns it with a valid
// bearer token.
func registerTestUser(t *testing.T, s *Server, name, email string) (*models.User, string) {
	t.Helper()

	user := &models.User{Name: name, Email: email, Password: "hashed", Avatar: "http://a/" + name + ".png"}
	require.NoError(t, s.db.Create(user).Error)

	token, err := s.generateToken(user)
	require.NoError(t, err)
	return user, "Bearer " + token
}

// jsonDecode decodes the response body into dest and closes it.
func jsonDecode(resp *http.Response, dest any) error {
	defer func() { _ = resp.Body.Close() }()
	return json.NewDecoder(resp.Body).Decode(dest)
}

func doJSON(t *testing.T, app *fiber.App, method, path, auth string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}
