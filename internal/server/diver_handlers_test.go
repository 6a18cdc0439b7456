package server

import (
	"net/http"
	"testing"

	"divespot/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfileHidesPassword(t *testing.T) {
	app, _, _ := setupTestServer(t)
	token, _ := signupDiver(t, app, "private")

	resp := doJSON(t, app, http.MethodGet, "/api/divers/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var raw map[string]any
	decodeBody(t, resp, &raw)
	assert.Equal(t, "private", raw["username"])
	_, hasPassword := raw["password"]
	assert.False(t, hasPassword)
}

func TestUpdateMyProfile(t *testing.T) {
	app, _, _ := setupTestServer(t)
	token, _ := signupDiver(t, app, "wanderer")

	resp := doJSON(t, app, http.MethodPut, "/api/divers/me", token, map[string]any{
		"display_name":        "The Wanderer",
		"bio":                 "chasing thermoclines",
		"certification_level": "Rescue Diver",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got models.Diver
	decodeBody(t, resp, &got)
	assert.Equal(t, "The Wanderer", got.DisplayName)
	assert.Equal(t, "chasing thermoclines", got.Bio)
	assert.Equal(t, "Rescue Diver", got.CertificationLevel)
}

func TestUpdateFavoriteSpot(t *testing.T) {
	app, _, _ := setupTestServer(t)
	token, _ := signupDiver(t, app, "loyal")
	spot := createSpotViaAPI(t, app, token, "Home Reef")

	resp := doJSON(t, app, http.MethodPut, "/api/divers/me", token, map[string]any{
		"favorite_spot_id": spot.ID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got models.Diver
	decodeBody(t, resp, &got)
	require.NotNil(t, got.FavoriteSpotID)
	assert.Equal(t, spot.ID, *got.FavoriteSpotID)

	// A ghost spot is rejected, an empty string clears the favorite.
	resp = doJSON(t, app, http.MethodPut, "/api/divers/me", token, map[string]any{
		"favorite_spot_id": "no-such-spot",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/divers/me", token, map[string]any{
		"favorite_spot_id": "",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &got)
	assert.Nil(t, got.FavoriteSpotID)
}

func TestGetDiverPosts(t *testing.T) {
	app, _, _ := setupTestServer(t)
	token, diver := signupDiver(t, app, "logger")
	otherToken, _ := signupDiver(t, app, "bystander")
	spot := createSpotViaAPI(t, app, token, "Log Reef")
	createPostViaAPI(t, app, token, spot.ID)
	createPostViaAPI(t, app, otherToken, spot.ID)

	resp := doJSON(t, app, http.MethodGet, "/api/divers/"+diver.ID+"/posts", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var posts []*models.DivePost
	decodeBody(t, resp, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, diver.ID, posts[0].DiverID)
}

func TestDeleteDiverRequiresSelfOrAdmin(t *testing.T) {
	app, _, db := setupTestServer(t)
	victimToken, victim := signupDiver(t, app, "victim")
	strangerToken, _ := signupDiver(t, app, "meddler")
	adminToken, admin := signupDiver(t, app, "moderator")
	require.NoError(t, db.Model(&models.Diver{}).Where("id = ?", admin.ID).
		Update("is_admin", true).Error)

	resp := doJSON(t, app, http.MethodDelete, "/api/divers/"+victim.ID, strangerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/divers/"+victim.ID, adminToken, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/divers/me", victimToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteDiverRemovesEngagement(t *testing.T) {
	app, _, _ := setupTestServer(t)
	authorToken, _ := signupDiver(t, app, "survivor")
	fanToken, fan := signupDiver(t, app, "departing")
	spot := createSpotViaAPI(t, app, authorToken, "Memory Reef")
	post := createPostViaAPI(t, app, authorToken, spot.ID)

	resp := doJSON(t, app, http.MethodPost, "/api/posts/"+post.ID+"/like", fanToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/posts/"+post.ID+"/comments", fanToken,
		map[string]string{"content": "goodbye"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/divers/"+fan.ID, fanToken, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/posts/"+post.ID, authorToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got models.DivePost
	decodeBody(t, resp, &got)
	assert.Equal(t, 0, got.LikesCount)
	assert.Equal(t, 0, got.CommentsCount)
}
