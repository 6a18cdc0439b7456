package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"divespot/internal/config"
	"divespot/internal/middleware"
	"divespot/internal/models"
)

const maxImageUploadBytes = 10 * 1024 * 1024

// Legacy rows store absolute URLs pointing straight at the image service.
// Any host is accepted; only the port and path identify such a reference.
var legacyImageRef = regexp.MustCompile(`^http://[^/]+:5010/files/(.+)$`)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// NormalizeImageURL rewrites a stored image reference into the API-relative
// serving path. Anything that is not a legacy image service URL passes
// through unchanged. Pure and idempotent; applied at read time only, stored
// values are never rewritten.
func NormalizeImageURL(u string) string {
	if m := legacyImageRef.FindStringSubmatch(u); m != nil {
		return "/api/images/" + m[1]
	}
	return u
}

// ImageService proxies image fetches and uploads to the standalone image
// service. Several base URLs may be configured; they are probed in order and
// the first responsive one wins.
type ImageService struct {
	candidates []string
	client     *http.Client
	timeout    time.Duration
}

func NewImageService(cfg *config.Config) *ImageService {
	return NewImageServiceWithCandidates(cfg.ImageCandidates(), cfg.ImageTimeout())
}

// NewImageServiceWithCandidates builds an ImageService with explicit probe
// targets. Used by tests.
func NewImageServiceWithCandidates(candidates []string, timeout time.Duration) *ImageService {
	return &ImageService{
		candidates: candidates,
		client:     &http.Client{},
		timeout:    timeout,
	}
}

// Fetch retrieves the named image from the first candidate that answers with
// a 2xx. Candidates that time out, refuse connections or answer non-2xx are
// skipped. When every candidate fails the image is reported as not found.
func (s *ImageService) Fetch(ctx context.Context, name string) ([]byte, string, error) {
	if err := validateImageName(name); err != nil {
		return nil, "", err
	}

	for _, base := range s.candidates {
		body, contentType, err := s.fetchFrom(ctx, base, name)
		if err != nil {
			middleware.ImageFallbacks.WithLabelValues("miss").Inc()
			middleware.Logger.DebugContext(ctx, "image candidate failed",
				slog.String("base", base),
				slog.String("name", name),
				slog.String("error", err.Error()),
			)
			continue
		}
		middleware.ImageFallbacks.WithLabelValues("hit").Inc()
		return body, contentType, nil
	}

	middleware.ImageFallbacks.WithLabelValues("exhausted").Inc()
	return nil, "", models.NewNotFoundError("Image", name)
}

func (s *ImageService) fetchFrom(ctx context.Context, base, name string) ([]byte, string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, base+"/files/"+name, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// Upload forwards the file to the first reachable candidate and returns the
// API-relative reference for the stored image.
func (s *ImageService) Upload(ctx context.Context, filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if len(content) > maxImageUploadBytes {
		return "", models.NewValidationError("File too large (max 10MB)")
	}
	ext := strings.ToLower(path.Ext(filename))
	if !allowedImageExtensions[ext] {
		return "", models.NewValidationError("Invalid file type (png, jpg, jpeg, gif)")
	}

	var lastErr error
	for _, base := range s.candidates {
		ref, err := s.uploadTo(ctx, base, filename, content)
		if err != nil {
			lastErr = err
			continue
		}
		return ref, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no image service candidates configured")
	}
	return "", models.NewInternalError(fmt.Errorf("image upload failed: %w", lastErr))
}

func (s *ImageService) uploadTo(ctx context.Context, base, filename string, content []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(content); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, base+"/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out struct {
		FileURL string `json:"file_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	name := strings.TrimPrefix(out.FileURL, "/files/")
	if name == "" || name == out.FileURL {
		return "", fmt.Errorf("unexpected upload response %q", out.FileURL)
	}
	return "/api/images/" + name, nil
}

func validateImageName(name string) error {
	if name == "" {
		return models.NewValidationError("Image name is required")
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return models.NewValidationError("Invalid image name")
	}
	return nil
}
