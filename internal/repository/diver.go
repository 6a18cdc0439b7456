// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"divespot/internal/cache"
	"divespot/internal/models"

	"gorm.io/gorm"
)

// DiverRepository defines the interface for diver data operations
type DiverRepository interface {
	Create(ctx context.Context, diver *models.Diver) error
	GetByID(ctx context.Context, id string) (*models.Diver, error)
	GetByIDCached(ctx context.Context, id string) (*models.Diver, error)
	GetByUsername(ctx context.Context, username string) (*models.Diver, error)
	GetByEmail(ctx context.Context, email string) (*models.Diver, error)
	List(ctx context.Context, limit, offset int) ([]*models.Diver, error)
	Update(ctx context.Context, diver *models.Diver) error
	Delete(ctx context.Context, id string) error
}

type diverRepository struct {
	db *gorm.DB
}

// NewDiverRepository creates a new diver repository
func NewDiverRepository(db *gorm.DB) DiverRepository {
	return &diverRepository{db: db}
}

func (r *diverRepository) Create(ctx context.Context, diver *models.Diver) error {
	return r.db.WithContext(ctx).Create(diver).Error
}

func (r *diverRepository) GetByID(ctx context.Context, id string) (*models.Diver, error) {
	var diver models.Diver
	if err := r.db.WithContext(ctx).First(&diver, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &diver, nil
}

func (r *diverRepository) GetByIDCached(ctx context.Context, id string) (*models.Diver, error) {
	var diver models.Diver
	err := cache.Aside(ctx, cache.DiverKey(id), &diver, cache.DiverTTL, func() error {
		return r.db.WithContext(ctx).First(&diver, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &diver, nil
}

func (r *diverRepository) GetByUsername(ctx context.Context, username string) (*models.Diver, error) {
	var diver models.Diver
	if err := r.db.WithContext(ctx).First(&diver, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &diver, nil
}

func (r *diverRepository) GetByEmail(ctx context.Context, email string) (*models.Diver, error) {
	var diver models.Diver
	if err := r.db.WithContext(ctx).First(&diver, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &diver, nil
}

func (r *diverRepository) List(ctx context.Context, limit, offset int) ([]*models.Diver, error) {
	var divers []*models.Diver
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&divers).Error
	return divers, err
}

func (r *diverRepository) Update(ctx context.Context, diver *models.Diver) error {
	err := r.db.WithContext(ctx).Save(diver).Error
	if err == nil {
		cache.InvalidateDiver(ctx, diver.ID)
	}
	return err
}

// Delete removes the diver together with all their content. The diver's
// engagement on other divers' posts is removed first and those posts are
// recounted, then the diver's own posts go with their likes and comments.
// Cached entries for every recounted and every removed post are dropped
// after commit so reads cannot resurrect pre-cascade counters.
func (r *diverRepository) Delete(ctx context.Context, id string) error {
	var ownPostIDs, recountedPostIDs []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DivePost{}).
			Where("diver_id = ?", id).
			Pluck("id", &ownPostIDs).Error; err != nil {
			return err
		}

		// Foreign posts that lose a like or comment need their counters redone.
		var touchedPostIDs []string
		if err := tx.Model(&models.PostLike{}).
			Distinct("post_id").
			Where("diver_id = ?", id).
			Pluck("post_id", &touchedPostIDs).Error; err != nil {
			return err
		}
		var commentedPostIDs []string
		if err := tx.Model(&models.PostComment{}).
			Distinct("post_id").
			Where("diver_id = ?", id).
			Pluck("post_id", &commentedPostIDs).Error; err != nil {
			return err
		}
		touchedPostIDs = append(touchedPostIDs, commentedPostIDs...)

		if err := tx.Where("diver_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("diver_id = ?", id).Delete(&models.PostComment{}).Error; err != nil {
			return err
		}

		own := make(map[string]bool, len(ownPostIDs))
		for _, pid := range ownPostIDs {
			own[pid] = true
		}
		seen := make(map[string]bool, len(touchedPostIDs))
		for _, pid := range touchedPostIDs {
			if own[pid] || seen[pid] {
				continue
			}
			seen[pid] = true
			if err := recalculateCounts(tx, pid); err != nil {
				return err
			}
			recountedPostIDs = append(recountedPostIDs, pid)
		}

		if len(ownPostIDs) > 0 {
			if err := tx.Where("post_id IN ?", ownPostIDs).Delete(&models.PostLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", ownPostIDs).Delete(&models.PostComment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("diver_id = ?", id).Delete(&models.DivePost{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Diver{}, "id = ?", id).Error
	})
	if err == nil {
		cache.InvalidateDiver(ctx, id)
		for _, pid := range recountedPostIDs {
			cache.InvalidatePost(ctx, pid)
		}
		for _, pid := range ownPostIDs {
			cache.InvalidatePost(ctx, pid)
		}
	}
	return err
}
