package server

import (
	"divespot/internal/models"
	"divespot/internal/repository"
	"divespot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSpots handles GET /api/spots with optional name and difficulty filters
func (s *Server) GetSpots(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	spots, err := s.spotService.ListSpots(c.Context(), repository.SpotFilter{
		Name:       c.Query("name"),
		Difficulty: c.Query("difficulty"),
	}, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(spots)
}

// SearchSpots handles GET /api/spots/search?q=
func (s *Server) SearchSpots(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	spots, err := s.spotService.SearchSpots(c.Context(), c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(spots)
}

// GetSpot handles GET /api/spots/:id
func (s *Server) GetSpot(c *fiber.Ctx) error {
	spot, err := s.spotService.GetSpot(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(spot)
}

// GetSpotCached handles GET /api/spots/:id/cached
func (s *Server) GetSpotCached(c *fiber.Ctx) error {
	spot, err := s.spotService.GetSpotCached(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(spot)
}

// CreateSpot handles POST /api/spots
func (s *Server) CreateSpot(c *fiber.Ctx) error {
	var req struct {
		Name           string  `json:"name"`
		Description    string  `json:"description"`
		Latitude       float64 `json:"latitude"`
		Longitude      float64 `json:"longitude"`
		Address        string  `json:"address"`
		MaxDepth       float64 `json:"max_depth"`
		Difficulty     string  `json:"difficulty"`
		WaterType      string  `json:"water_type"`
		AvgVisibility  float64 `json:"avg_visibility"`
		AvgTemperature float64 `json:"avg_temperature"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	spot, err := s.spotService.CreateSpot(c.Context(), service.CreateSpotInput{
		CreatedBy:      currentDiverID(c),
		Name:           req.Name,
		Description:    req.Description,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Address:        req.Address,
		MaxDepth:       req.MaxDepth,
		Difficulty:     req.Difficulty,
		WaterType:      req.WaterType,
		AvgVisibility:  req.AvgVisibility,
		AvgTemperature: req.AvgTemperature,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(spot)
}

// UpdateSpot handles PUT /api/spots/:id
func (s *Server) UpdateSpot(c *fiber.Ctx) error {
	var req struct {
		Name           *string  `json:"name"`
		Description    *string  `json:"description"`
		Address        *string  `json:"address"`
		MaxDepth       *float64 `json:"max_depth"`
		Difficulty     *string  `json:"difficulty"`
		WaterType      *string  `json:"water_type"`
		AvgVisibility  *float64 `json:"avg_visibility"`
		AvgTemperature *float64 `json:"avg_temperature"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	callerID := currentDiverID(c)
	isAdmin, err := s.isAdminByDiverID(c.Context(), callerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	spot, err := s.spotService.UpdateSpot(c.Context(), service.UpdateSpotInput{
		SpotID:         c.Params("id"),
		CallerID:       callerID,
		IsAdmin:        isAdmin,
		Name:           req.Name,
		Description:    req.Description,
		Address:        req.Address,
		MaxDepth:       req.MaxDepth,
		Difficulty:     req.Difficulty,
		WaterType:      req.WaterType,
		AvgVisibility:  req.AvgVisibility,
		AvgTemperature: req.AvgTemperature,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(spot)
}

// DeleteSpot handles DELETE /api/spots/:id
func (s *Server) DeleteSpot(c *fiber.Ctx) error {
	callerID := currentDiverID(c)
	isAdmin, err := s.isAdminByDiverID(c.Context(), callerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.spotService.DeleteSpot(c.Context(), callerID, c.Params("id"), isAdmin); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
