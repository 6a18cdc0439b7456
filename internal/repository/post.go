package repository

import (
	"context"
	"errors"
	"time"

	"divespot/internal/cache"
	"divespot/internal/middleware"
	"divespot/internal/models"

	"gorm.io/gorm"
)

// PostFilter narrows post listings. Zero values mean no filtering.
type PostFilter struct {
	DiverID string
	SpotID  string
}

// PostRepository defines the interface for dive post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.DivePost) error
	GetByID(ctx context.Context, id string, currentDiverID string) (*models.DivePost, error)
	List(ctx context.Context, filter PostFilter, limit, offset int, currentDiverID string) ([]*models.DivePost, error)
	Feed(ctx context.Context, limit, offset int, currentDiverID string) ([]*models.FeedItem, error)
	Update(ctx context.Context, post *models.DivePost) error
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, diverID, postID string) error
	Unlike(ctx context.Context, diverID, postID string) error
	IsLiked(ctx context.Context, diverID, postID string) (bool, error)
	GetLikes(ctx context.Context, postID string) ([]*models.PostLike, error)
	GetLikedPostIDs(ctx context.Context, diverID string, postIDs []string) ([]string, error)
	RecalculateCounts(ctx context.Context, postID, trigger string) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new dive post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create persists the post and folds it into the diver's lifetime statistics
// and the spot's dive tally in a single transaction. A post referencing an
// unknown diver or spot still persists; the stats update just matches zero
// rows. Stats are never unwound when a post is deleted later.
func (r *postRepository) Create(ctx context.Context, post *models.DivePost) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}

		now := time.Now().UTC()

		// CASE keeps the max-depth update portable between postgres and sqlite.
		if err := tx.Model(&models.Diver{}).
			Where("id = ?", post.DiverID).
			Updates(map[string]any{
				"total_dives":       gorm.Expr("total_dives + 1"),
				"total_bottom_time": gorm.Expr("total_bottom_time + ?", post.DiveDuration),
				"max_depth_achieved": gorm.Expr(
					"CASE WHEN max_depth_achieved < ? THEN ? ELSE max_depth_achieved END",
					post.MaxDepth, post.MaxDepth),
				"last_active_at": now,
			}).Error; err != nil {
			return err
		}

		return tx.Model(&models.DiveSpot{}).
			Where("id = ?", post.SpotID).
			Updates(map[string]any{
				"total_dives_logged": gorm.Expr("total_dives_logged + 1"),
				"updated_at":         now,
			}).Error
	})
	if err != nil {
		return err
	}

	middleware.PostsCreated.Inc()
	cache.InvalidateDiver(ctx, post.DiverID)
	cache.InvalidateSpot(ctx, post.SpotID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string, currentDiverID string) (*models.DivePost, error) {
	var post models.DivePost

	var err error
	if currentDiverID == "" {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
			return r.db.WithContext(ctx).First(&post, "id = ?", id).Error
		})
	} else {
		err = r.db.WithContext(ctx).First(&post, "id = ?", id).Error
	}
	if err != nil {
		return nil, err
	}

	if currentDiverID != "" {
		liked, err := r.IsLiked(ctx, currentDiverID, id)
		if err != nil {
			return nil, err
		}
		post.Liked = liked
	}

	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, limit, offset int, currentDiverID string) ([]*models.DivePost, error) {
	var posts []*models.DivePost
	q := r.db.WithContext(ctx).Model(&models.DivePost{})
	if filter.DiverID != "" {
		q = q.Where("diver_id = ?", filter.DiverID)
	}
	if filter.SpotID != "" {
		q = q.Where("spot_id = ?", filter.SpotID)
	}
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	if err := r.markLiked(ctx, posts, currentDiverID); err != nil {
		return nil, err
	}
	return posts, nil
}

// Feed returns recent posts enriched with their diver and spot. Posts whose
// diver or spot has since vanished keep nil references instead of dropping
// out of the feed.
func (r *postRepository) Feed(ctx context.Context, limit, offset int, currentDiverID string) ([]*models.FeedItem, error) {
	posts, err := r.List(ctx, PostFilter{}, limit, offset, currentDiverID)
	if err != nil {
		return nil, err
	}

	diverIDs := make([]string, 0, len(posts))
	spotIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		diverIDs = append(diverIDs, p.DiverID)
		spotIDs = append(spotIDs, p.SpotID)
	}

	divers := make(map[string]*models.Diver)
	if len(diverIDs) > 0 {
		var rows []*models.Diver
		if err := r.db.WithContext(ctx).Where("id IN ?", diverIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, d := range rows {
			divers[d.ID] = d
		}
	}

	spots := make(map[string]*models.DiveSpot)
	if len(spotIDs) > 0 {
		var rows []*models.DiveSpot
		if err := r.db.WithContext(ctx).Where("id IN ?", spotIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, s := range rows {
			spots[s.ID] = s
		}
	}

	items := make([]*models.FeedItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, &models.FeedItem{
			DivePost: *p,
			Diver:    divers[p.DiverID],
			Spot:     spots[p.SpotID],
		})
	}
	return items, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.DivePost) error {
	err := r.db.WithContext(ctx).Save(post).Error
	if err == nil {
		cache.InvalidatePost(ctx, post.ID)
	}
	return err
}

// Delete removes the post with its likes and comments. Diver and spot stats
// stay untouched.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DivePost{}, "id = ?", id).Error
	})
	if err == nil {
		cache.InvalidatePost(ctx, id)
	}
	return err
}

// Like records the diver's like. A duplicate insert means the like already
// exists and is absorbed as success; the unique index arbitrates concurrent
// likes so there is no racy existence pre-check.
func (r *postRepository) Like(ctx context.Context, diverID, postID string) error {
	like := &models.PostLike{DiverID: diverID, PostID: postID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	return r.RecalculateCounts(ctx, postID, "like")
}

// Unlike removes the diver's like. Deleting an absent like is success.
func (r *postRepository) Unlike(ctx context.Context, diverID, postID string) error {
	if err := r.db.WithContext(ctx).
		Where("diver_id = ? AND post_id = ?", diverID, postID).
		Delete(&models.PostLike{}).Error; err != nil {
		return err
	}
	return r.RecalculateCounts(ctx, postID, "unlike")
}

func (r *postRepository) IsLiked(ctx context.Context, diverID, postID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("diver_id = ? AND post_id = ?", diverID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) GetLikes(ctx context.Context, postID string) ([]*models.PostLike, error) {
	var likes []*models.PostLike
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&likes).Error
	return likes, err
}

func (r *postRepository) GetLikedPostIDs(ctx context.Context, diverID string, postIDs []string) ([]string, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var liked []string
	err := r.db.WithContext(ctx).
		Model(&models.PostLike{}).
		Where("diver_id = ? AND post_id IN ?", diverID, postIDs).
		Pluck("post_id", &liked).Error
	return liked, err
}

// RecalculateCounts overwrites both engagement counters with a full recount
// of surviving rows. A missing post makes the UPDATE match nothing, which is
// the intended no-op.
func (r *postRepository) RecalculateCounts(ctx context.Context, postID, trigger string) error {
	if err := recalculateCounts(r.db.WithContext(ctx), postID); err != nil {
		return err
	}
	middleware.CounterRecalcs.WithLabelValues(trigger).Inc()
	cache.InvalidatePost(ctx, postID)
	return nil
}

func recalculateCounts(db *gorm.DB, postID string) error {
	return db.Model(&models.DivePost{}).
		Where("id = ?", postID).
		Updates(map[string]any{
			"likes_count":    gorm.Expr("(SELECT COUNT(*) FROM post_likes WHERE post_id = ?)", postID),
			"comments_count": gorm.Expr("(SELECT COUNT(*) FROM post_comments WHERE post_id = ?)", postID),
		}).Error
}

func (r *postRepository) markLiked(ctx context.Context, posts []*models.DivePost, currentDiverID string) error {
	if currentDiverID == "" || len(posts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	liked, err := r.GetLikedPostIDs(ctx, currentDiverID, ids)
	if err != nil {
		return err
	}
	likedSet := make(map[string]bool, len(liked))
	for _, id := range liked {
		likedSet[id] = true
	}
	for _, p := range posts {
		p.Liked = likedSet[p.ID]
	}
	return nil
}
