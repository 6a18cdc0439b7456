package service

import (
	"context"
	"errors"

	"divespot/internal/models"
	"divespot/internal/repository"

	"gorm.io/gorm"
)

// DiverService manages diver profile reads and updates.
type DiverService struct {
	diverRepo repository.DiverRepository
	spotRepo  repository.SpotRepository
}

// UpdateDiverInput carries the mutable profile fields. Nil means unchanged.
type UpdateDiverInput struct {
	DiverID            string
	DisplayName        *string
	Bio                *string
	ProfileImageURL    *string
	Location           *string
	CertificationLevel *string
	FavoriteSpotID     *string
}

func NewDiverService(diverRepo repository.DiverRepository, spotRepo repository.SpotRepository) *DiverService {
	return &DiverService{diverRepo: diverRepo, spotRepo: spotRepo}
}

func (s *DiverService) GetDiver(ctx context.Context, id string) (*models.Diver, error) {
	diver, err := s.diverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	diver.ProfileImageURL = NormalizeImageURL(diver.ProfileImageURL)
	return diver, nil
}

func (s *DiverService) GetDiverCached(ctx context.Context, id string) (*models.Diver, error) {
	diver, err := s.diverRepo.GetByIDCached(ctx, id)
	if err != nil {
		return nil, err
	}
	diver.ProfileImageURL = NormalizeImageURL(diver.ProfileImageURL)
	return diver, nil
}

func (s *DiverService) ListDivers(ctx context.Context, limit, offset int) ([]*models.Diver, error) {
	divers, err := s.diverRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, d := range divers {
		d.ProfileImageURL = NormalizeImageURL(d.ProfileImageURL)
	}
	return divers, nil
}

func (s *DiverService) UpdateDiver(ctx context.Context, in UpdateDiverInput) (*models.Diver, error) {
	diver, err := s.diverRepo.GetByID(ctx, in.DiverID)
	if err != nil {
		return nil, err
	}

	if in.DisplayName != nil {
		diver.DisplayName = *in.DisplayName
	}
	if in.Bio != nil {
		diver.Bio = *in.Bio
	}
	if in.ProfileImageURL != nil {
		diver.ProfileImageURL = *in.ProfileImageURL
	}
	if in.Location != nil {
		diver.Location = *in.Location
	}
	if in.CertificationLevel != nil {
		diver.CertificationLevel = *in.CertificationLevel
	}
	if in.FavoriteSpotID != nil {
		if *in.FavoriteSpotID == "" {
			diver.FavoriteSpotID = nil
		} else {
			if _, err := s.spotRepo.GetByID(ctx, *in.FavoriteSpotID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, models.NewValidationError("favorite_spot_id does not reference an existing spot")
				}
				return nil, err
			}
			diver.FavoriteSpotID = in.FavoriteSpotID
		}
	}

	if err := s.diverRepo.Update(ctx, diver); err != nil {
		return nil, err
	}
	diver.ProfileImageURL = NormalizeImageURL(diver.ProfileImageURL)
	return diver, nil
}

func (s *DiverService) DeleteDiver(ctx context.Context, callerID, targetID string, isAdmin bool) error {
	if callerID != targetID && !isAdmin {
		return models.NewUnauthorizedError("You can only delete your own account")
	}
	if _, err := s.diverRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.diverRepo.Delete(ctx, targetID)
}
