package repository

import (
	"context"
	"strings"

	"divespot/internal/cache"
	"divespot/internal/models"

	"gorm.io/gorm"
)

// SpotFilter narrows spot listings. Zero values mean no filtering.
type SpotFilter struct {
	Name       string
	Difficulty string
}

// SpotRepository defines the interface for dive spot data operations
type SpotRepository interface {
	Create(ctx context.Context, spot *models.DiveSpot) error
	GetByID(ctx context.Context, id string) (*models.DiveSpot, error)
	GetByIDCached(ctx context.Context, id string) (*models.DiveSpot, error)
	List(ctx context.Context, filter SpotFilter, limit, offset int) ([]*models.DiveSpot, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.DiveSpot, error)
	Update(ctx context.Context, spot *models.DiveSpot) error
	Delete(ctx context.Context, id string) error
}

type spotRepository struct {
	db *gorm.DB
}

// NewSpotRepository creates a new dive spot repository
func NewSpotRepository(db *gorm.DB) SpotRepository {
	return &spotRepository{db: db}
}

func (r *spotRepository) Create(ctx context.Context, spot *models.DiveSpot) error {
	return r.db.WithContext(ctx).Create(spot).Error
}

func (r *spotRepository) GetByID(ctx context.Context, id string) (*models.DiveSpot, error) {
	var spot models.DiveSpot
	if err := r.db.WithContext(ctx).First(&spot, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &spot, nil
}

func (r *spotRepository) GetByIDCached(ctx context.Context, id string) (*models.DiveSpot, error) {
	var spot models.DiveSpot
	err := cache.Aside(ctx, cache.SpotKey(id), &spot, cache.SpotTTL, func() error {
		return r.db.WithContext(ctx).First(&spot, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &spot, nil
}

func (r *spotRepository) List(ctx context.Context, filter SpotFilter, limit, offset int) ([]*models.DiveSpot, error) {
	var spots []*models.DiveSpot
	q := r.db.WithContext(ctx).Model(&models.DiveSpot{})
	if filter.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty = ?", filter.Difficulty)
	}
	err := q.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&spots).Error
	return spots, err
}

func (r *spotRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.DiveSpot, error) {
	var spots []*models.DiveSpot
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(address) LIKE ?",
			pattern, pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&spots).Error
	return spots, err
}

func (r *spotRepository) Update(ctx context.Context, spot *models.DiveSpot) error {
	err := r.db.WithContext(ctx).Save(spot).Error
	if err == nil {
		cache.InvalidateSpot(ctx, spot.ID)
	}
	return err
}

// Delete removes the spot and every post logged against it, with that
// post engagement going too. Cached entries for the removed posts are
// dropped after commit.
func (r *spotRepository) Delete(ctx context.Context, id string) error {
	var postIDs []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DivePost{}).
			Where("spot_id = ?", id).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostComment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("spot_id = ?", id).Delete(&models.DivePost{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.DiveSpot{}, "id = ?", id).Error
	})
	if err == nil {
		cache.InvalidateSpot(ctx, id)
		for _, pid := range postIDs {
			cache.InvalidatePost(ctx, pid)
		}
	}
	return err
}
