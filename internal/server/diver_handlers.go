package server

import (
	"divespot/internal/models"
	"divespot/internal/repository"
	"divespot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetDivers handles GET /api/divers
func (s *Server) GetDivers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	divers, err := s.diverService.ListDivers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(divers)
}

// GetDiver handles GET /api/divers/:id
func (s *Server) GetDiver(c *fiber.Ctx) error {
	diver, err := s.diverService.GetDiver(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(diver)
}

// GetDiverCached handles GET /api/divers/:id/cached
func (s *Server) GetDiverCached(c *fiber.Ctx) error {
	diver, err := s.diverService.GetDiverCached(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(diver)
}

// GetDiverPosts handles GET /api/divers/:id/posts
func (s *Server) GetDiverPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.postService.ListPosts(c.Context(),
		repository.PostFilter{DiverID: c.Params("id")}, p.Limit, p.Offset, currentDiverID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetMyProfile handles GET /api/divers/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	diver, err := s.diverService.GetDiver(c.Context(), currentDiverID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(diver)
}

// UpdateMyProfile handles PUT /api/divers/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		DisplayName        *string `json:"display_name"`
		Bio                *string `json:"bio"`
		ProfileImageURL    *string `json:"profile_image_url"`
		Location           *string `json:"location"`
		CertificationLevel *string `json:"certification_level"`
		FavoriteSpotID     *string `json:"favorite_spot_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	diver, err := s.diverService.UpdateDiver(c.Context(), service.UpdateDiverInput{
		DiverID:            currentDiverID(c),
		DisplayName:        req.DisplayName,
		Bio:                req.Bio,
		ProfileImageURL:    req.ProfileImageURL,
		Location:           req.Location,
		CertificationLevel: req.CertificationLevel,
		FavoriteSpotID:     req.FavoriteSpotID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(diver)
}

// DeleteDiver handles DELETE /api/divers/:id
func (s *Server) DeleteDiver(c *fiber.Ctx) error {
	callerID := currentDiverID(c)
	isAdmin, err := s.isAdminByDiverID(c.Context(), callerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.diverService.DeleteDiver(c.Context(), callerID, c.Params("id"), isAdmin); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
