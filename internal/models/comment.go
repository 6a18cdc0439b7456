package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostComment represents a comment left on a dive post.
type PostComment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	DiverID   string    `gorm:"size:36;not null;index" json:"diver_id"`
	PostID    string    `gorm:"size:36;not null;index" json:"post_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *PostComment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
