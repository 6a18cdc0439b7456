package service

import (
	"context"

	"divespot/internal/models"
	"divespot/internal/repository"
)

// SpotService manages dive spot validation and persistence.
type SpotService struct {
	spotRepo repository.SpotRepository
}

type CreateSpotInput struct {
	CreatedBy      string
	Name           string
	Description    string
	Latitude       float64
	Longitude      float64
	Address        string
	MaxDepth       float64
	Difficulty     string
	WaterType      string
	AvgVisibility  float64
	AvgTemperature float64
}

type UpdateSpotInput struct {
	SpotID         string
	CallerID       string
	IsAdmin        bool
	Name           *string
	Description    *string
	Address        *string
	MaxDepth       *float64
	Difficulty     *string
	WaterType      *string
	AvgVisibility  *float64
	AvgTemperature *float64
}

func NewSpotService(spotRepo repository.SpotRepository) *SpotService {
	return &SpotService{spotRepo: spotRepo}
}

// CreateSpot validates and stores a new spot. The creator is always the
// authenticated caller.
func (s *SpotService) CreateSpot(ctx context.Context, in CreateSpotInput) (*models.DiveSpot, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return nil, models.NewValidationError("latitude must be between -90 and 90")
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return nil, models.NewValidationError("longitude must be between -180 and 180")
	}
	if in.Difficulty != "" && !models.ValidDifficulty(in.Difficulty) {
		return nil, models.NewValidationError("Invalid difficulty")
	}
	waterType := in.WaterType
	if waterType == "" {
		waterType = "Salt"
	}
	if !models.ValidWaterType(waterType) {
		return nil, models.NewValidationError("Invalid water_type")
	}

	spot := &models.DiveSpot{
		Name:           in.Name,
		Description:    in.Description,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Address:        in.Address,
		MaxDepth:       in.MaxDepth,
		Difficulty:     in.Difficulty,
		WaterType:      waterType,
		AvgVisibility:  in.AvgVisibility,
		AvgTemperature: in.AvgTemperature,
		CreatedBy:      in.CreatedBy,
	}
	if err := s.spotRepo.Create(ctx, spot); err != nil {
		return nil, err
	}
	return spot, nil
}

func (s *SpotService) GetSpot(ctx context.Context, id string) (*models.DiveSpot, error) {
	return s.spotRepo.GetByID(ctx, id)
}

func (s *SpotService) GetSpotCached(ctx context.Context, id string) (*models.DiveSpot, error) {
	return s.spotRepo.GetByIDCached(ctx, id)
}

func (s *SpotService) ListSpots(ctx context.Context, filter repository.SpotFilter, limit, offset int) ([]*models.DiveSpot, error) {
	if filter.Difficulty != "" && !models.ValidDifficulty(filter.Difficulty) {
		return nil, models.NewValidationError("Invalid difficulty")
	}
	return s.spotRepo.List(ctx, filter, limit, offset)
}

func (s *SpotService) SearchSpots(ctx context.Context, query string, limit, offset int) ([]*models.DiveSpot, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.spotRepo.Search(ctx, query, limit, offset)
}

func (s *SpotService) UpdateSpot(ctx context.Context, in UpdateSpotInput) (*models.DiveSpot, error) {
	spot, err := s.spotRepo.GetByID(ctx, in.SpotID)
	if err != nil {
		return nil, err
	}
	if spot.CreatedBy != in.CallerID && !in.IsAdmin {
		return nil, models.NewUnauthorizedError("You can only update spots you created")
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewValidationError("Name is required")
		}
		spot.Name = *in.Name
	}
	if in.Description != nil {
		spot.Description = *in.Description
	}
	if in.Address != nil {
		spot.Address = *in.Address
	}
	if in.MaxDepth != nil {
		spot.MaxDepth = *in.MaxDepth
	}
	if in.Difficulty != nil {
		if !models.ValidDifficulty(*in.Difficulty) {
			return nil, models.NewValidationError("Invalid difficulty")
		}
		spot.Difficulty = *in.Difficulty
	}
	if in.WaterType != nil {
		if !models.ValidWaterType(*in.WaterType) {
			return nil, models.NewValidationError("Invalid water_type")
		}
		spot.WaterType = *in.WaterType
	}
	if in.AvgVisibility != nil {
		spot.AvgVisibility = *in.AvgVisibility
	}
	if in.AvgTemperature != nil {
		spot.AvgTemperature = *in.AvgTemperature
	}

	if err := s.spotRepo.Update(ctx, spot); err != nil {
		return nil, err
	}
	return spot, nil
}

func (s *SpotService) DeleteSpot(ctx context.Context, callerID, spotID string, isAdmin bool) error {
	spot, err := s.spotRepo.GetByID(ctx, spotID)
	if err != nil {
		return err
	}
	if spot.CreatedBy != callerID && !isAdmin {
		return models.NewUnauthorizedError("You can only delete spots you created")
	}
	return s.spotRepo.Delete(ctx, spotID)
}
