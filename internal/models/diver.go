// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Diver represents a registered diver account.
type Diver struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	Username           string     `gorm:"uniqueIndex;not null" json:"username"`
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	Password           string     `gorm:"not null" json:"-"`
	DisplayName        string     `json:"display_name"`
	Bio                string     `gorm:"type:text" json:"bio"`
	ProfileImageURL    string     `json:"profile_image_url"`
	Location           string     `json:"location"`
	CertificationLevel string     `gorm:"default:'Open Water'" json:"certification_level"`
	FavoriteSpotID     *string    `gorm:"size:36;index" json:"favorite_spot_id,omitempty"`
	EmailVerified      bool       `gorm:"default:false" json:"email_verified"`
	IsAdmin            bool       `gorm:"default:false" json:"is_admin"`
	// Lifetime dive statistics, updated on every post creation and never
	// decremented when posts are deleted.
	TotalDives       int        `gorm:"default:0" json:"total_dives"`
	MaxDepthAchieved float64    `gorm:"default:0" json:"max_depth_achieved"`
	TotalBottomTime  int        `gorm:"default:0" json:"total_bottom_time"`
	LastActiveAt     *time.Time `json:"last_active_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when the caller did not set one.
func (d *Diver) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
