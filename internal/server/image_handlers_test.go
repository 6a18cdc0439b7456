package server

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"divespot/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointImageService(t *testing.T, srv *Server, upstream *httptest.Server) {
	t.Helper()
	srv.imageService = service.NewImageServiceWithCandidates(
		[]string{upstream.URL}, 2*time.Second)
}

func TestGetImageProxiesUpstream(t *testing.T) {
	app, srv, _ := setupTestServer(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/files/reef.jpg", r.URL.Path)
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer upstream.Close()
	pointImageService(t, srv, upstream)

	resp := doJSON(t, app, http.MethodGet, "/api/images/reef.jpg", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Cache-Control"), "immutable")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "jpeg-bytes", string(body))
}

func TestGetImageMissEverywhereIs404(t *testing.T) {
	app, srv, _ := setupTestServer(t)

	upstream := httptest.NewServer(http.NotFoundHandler())
	defer upstream.Close()
	pointImageService(t, srv, upstream)

	resp := doJSON(t, app, http.MethodGet, "/api/images/ghost.jpg", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUploadImageForwardsAndNormalizes(t *testing.T) {
	app, srv, _ := setupTestServer(t)
	token, _ := signupDiver(t, app, "photographer")

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload", r.URL.Path)
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "wreck.png", header.Filename)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"file_url": "/files/abc123_wreck.png"}`))
	}))
	defer upstream.Close()
	pointImageService(t, srv, upstream)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "wreck.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out map[string]string
	decodeBody(t, resp, &out)
	assert.Equal(t, "/api/images/abc123_wreck.png", out["image_url"])
}

func TestUploadImageRequiresFile(t *testing.T) {
	app, _, _ := setupTestServer(t)
	token, _ := signupDiver(t, app, "forgetful")

	resp := doJSON(t, app, http.MethodPost, "/api/images", token, map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
