package repository

import (
	"context"

	"divespot/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for post comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.PostComment) error
	GetByID(ctx context.Context, id string) (*models.PostComment, error)
	GetByPostID(ctx context.Context, postID string, limit, offset int) ([]*models.PostComment, error)
	Update(ctx context.Context, comment *models.PostComment) error
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.PostComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.PostComment, error) {
	var comment models.PostComment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) GetByPostID(ctx context.Context, postID string, limit, offset int) ([]*models.PostComment, error) {
	var comments []*models.PostComment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.PostComment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.PostComment{}, "id = ?", id).Error
}
