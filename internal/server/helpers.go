package server

import (
	"context"
	"errors"

	"divespot/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// currentDiverID returns the authenticated diver id from locals, or "".
func currentDiverID(c *fiber.Ctx) string {
	if did, ok := c.Locals("diverID").(string); ok {
		return did
	}
	return ""
}

// respondServiceError maps service and repository errors to HTTP responses.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "CONFLICT":
			return models.RespondWithError(c, fiber.StatusConflict, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusForbidden, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, appErr)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Resource", "requested"))
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Resource already exists"))
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}

func (s *Server) isAdminByDiverID(ctx context.Context, diverID string) (bool, error) {
	var diver models.Diver
	if err := s.db.WithContext(ctx).Select("is_admin").First(&diver, "id = ?", diverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return diver.IsAdmin, nil
}
