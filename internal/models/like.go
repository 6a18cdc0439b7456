package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostLike records that a diver liked a post. The composite unique index is
// the source of truth for at-most-one-like-per-diver; concurrent likes race
// on the insert and the loser's duplicate-key error is absorbed as success.
type PostLike struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	DiverID   string    `gorm:"size:36;not null;uniqueIndex:idx_post_likes_diver_post" json:"diver_id"`
	PostID    string    `gorm:"size:36;not null;uniqueIndex:idx_post_likes_diver_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (l *PostLike) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
