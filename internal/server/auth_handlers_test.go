package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	app, _, _ := setupTestServer(t)

	tests := []struct {
		name           string
		requestBody    map[string]string
		expectedStatus int
	}{
		{
			name: "valid signup",
			requestBody: map[string]string{
				"username": "testdiver",
				"email":    "test@example.com",
				"password": "Str0ng!Passw0rd",
			},
			expectedStatus: fiber.StatusCreated,
		},
		{
			name: "missing username",
			requestBody: map[string]string{
				"email":    "test2@example.com",
				"password": "Str0ng!Passw0rd",
			},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name: "weak password",
			requestBody: map[string]string{
				"username": "testdiver2",
				"email":    "test2@example.com",
				"password": "weak",
			},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name: "invalid email",
			requestBody: map[string]string{
				"username": "testdiver3",
				"email":    "not-an-email",
				"password": "Str0ng!Passw0rd",
			},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name: "duplicate username",
			requestBody: map[string]string{
				"username": "testdiver",
				"email":    "other@example.com",
				"password": "Str0ng!Passw0rd",
			},
			expectedStatus: fiber.StatusConflict,
		},
		{
			name: "duplicate email",
			requestBody: map[string]string{
				"username": "freshname",
				"email":    "test@example.com",
				"password": "Str0ng!Passw0rd",
			},
			expectedStatus: fiber.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLogin(t *testing.T) {
	app, _, _ := setupTestServer(t)
	signupDiver(t, app, "loginuser")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "loginuser@example.com",
		"password": "Str0ng!Passw0rd",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "loginuser@example.com",
		"password": "WrongPassword1!",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "Str0ng!Passw0rd",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app, _, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/feed", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/divers/me", "garbage-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
