package server

import (
	"io"

	"divespot/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetImage handles GET /api/images/:name by proxying the configured image
// service candidates.
func (s *Server) GetImage(c *fiber.Ctx) error {
	body, contentType, err := s.imageService.Fetch(c.Context(), c.Params("name"))
	if err != nil {
		return respondServiceError(c, err)
	}

	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	// Stored images are immutable; the unique filename changes on re-upload.
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400, immutable")
	return c.Send(body)
}

// UploadImage handles POST /api/images by forwarding the multipart file to
// the image service and returning the normalized reference.
func (s *Server) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A file form field is required"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	ref, err := s.imageService.Upload(c.Context(), fileHeader.Filename, content)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"image_url": ref,
	})
}
