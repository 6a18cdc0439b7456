package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"divespot/internal/config"
	"divespot/internal/database"
	"divespot/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret-key-that-is-long-enough-123",
		Port:             "5011",
		Env:              "test",
		ImageServiceURLs: "http://127.0.0.1:1",
	}
}

// setupTestServer builds a Server on an in-memory SQLite database with no Redis.
func setupTestServer(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	srv, err := NewServerWithDeps(testConfig(), db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, srv, db
}

// signupDiver registers an account through the API and returns the token and diver.
func signupDiver(t *testing.T, app *fiber.App, username string) (string, *models.Diver) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "Str0ng!Passw0rd",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Token string        `json:"token"`
		Diver *models.Diver `json:"diver"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	require.NotNil(t, body.Diver)
	return body.Token, body.Diver
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func createSpotViaAPI(t *testing.T, app *fiber.App, token, name string) *models.DiveSpot {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/spots", token, map[string]any{
		"name":       name,
		"latitude":   11.5,
		"longitude":  -60.9,
		"max_depth":  40,
		"difficulty": "Intermediate",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var spot models.DiveSpot
	decodeBody(t, resp, &spot)
	return &spot
}

func createPostViaAPI(t *testing.T, app *fiber.App, token, spotID string) *models.DivePost {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, map[string]any{
		"spot_id":            spotID,
		"caption":            "test dive",
		"max_depth":          18.5,
		"dive_duration":      42,
		"dive_date":          "2026-03-14",
		"visibility_quality": "Good",
		"wind_conditions":    "Calm",
		"current_conditions": "Light",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var post models.DivePost
	decodeBody(t, resp, &post)
	return &post
}
