package server

import (
	"divespot/internal/models"
	"divespot/internal/repository"
	"divespot/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts with optional diver_id and spot_id filters
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.postService.ListPosts(c.Context(), repository.PostFilter{
		DiverID: c.Query("diver_id"),
		SpotID:  c.Query("spot_id"),
	}, p.Limit, p.Offset, currentDiverID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetFeed handles GET /api/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	items, err := s.postService.Feed(c.Context(), p.Limit, p.Offset, currentDiverID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(items)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.Context(), c.Params("id"), currentDiverID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		SpotID            string   `json:"spot_id"`
		Caption           string   `json:"caption"`
		ImageURLs         []string `json:"image_urls"`
		DiveDate          string   `json:"dive_date"`
		DiveTimestamp     string   `json:"dive_timestamp"`
		MaxDepth          float64  `json:"max_depth"`
		DiveDuration      int      `json:"dive_duration"`
		VisibilityQuality string   `json:"visibility_quality"`
		WaterTemp         float64  `json:"water_temp"`
		WindConditions    string   `json:"wind_conditions"`
		CurrentConditions string   `json:"current_conditions"`
		SeaLife           []string `json:"sea_life"`
		BuddyNames        []string `json:"buddy_names"`
		Equipment         []string `json:"equipment"`
		Notes             string   `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		DiverID:           currentDiverID(c),
		SpotID:            req.SpotID,
		Caption:           req.Caption,
		ImageURLs:         req.ImageURLs,
		DiveDate:          req.DiveDate,
		DiveTimestamp:     req.DiveTimestamp,
		MaxDepth:          req.MaxDepth,
		DiveDuration:      req.DiveDuration,
		VisibilityQuality: req.VisibilityQuality,
		WaterTemp:         req.WaterTemp,
		WindConditions:    req.WindConditions,
		CurrentConditions: req.CurrentConditions,
		SeaLife:           req.SeaLife,
		BuddyNames:        req.BuddyNames,
		Equipment:         req.Equipment,
		Notes:             req.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	var req struct {
		Caption           *string  `json:"caption"`
		Notes             *string  `json:"notes"`
		SeaLife           []string `json:"sea_life"`
		BuddyNames        []string `json:"buddy_names"`
		Equipment         []string `json:"equipment"`
		VisibilityQuality *string  `json:"visibility_quality"`
		WindConditions    *string  `json:"wind_conditions"`
		CurrentConditions *string  `json:"current_conditions"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		DiverID:           currentDiverID(c),
		PostID:            c.Params("id"),
		Caption:           req.Caption,
		Notes:             req.Notes,
		SeaLife:           req.SeaLife,
		BuddyNames:        req.BuddyNames,
		Equipment:         req.Equipment,
		VisibilityQuality: req.VisibilityQuality,
		WindConditions:    req.WindConditions,
		CurrentConditions: req.CurrentConditions,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	callerID := currentDiverID(c)
	isAdmin, err := s.isAdminByDiverID(c.Context(), callerID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.postService.DeletePost(c.Context(), callerID, c.Params("id"), isAdmin); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	if err := s.postService.LikePost(c.Context(), currentDiverID(c), c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"liked": true})
}

// UnlikePost handles DELETE /api/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	if err := s.postService.UnlikePost(c.Context(), currentDiverID(c), c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"liked": false})
}

// GetPostLikes handles GET /api/posts/:id/likes
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	likes, err := s.postService.GetLikes(c.Context(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(likes)
}
