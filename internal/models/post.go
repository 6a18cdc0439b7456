package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DivePost represents a logged dive shared by a diver at a spot.
type DivePost struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	DiverID string `gorm:"size:36;not null;index" json:"diver_id"`
	SpotID  string `gorm:"size:36;not null;index" json:"spot_id"`
	Caption string `gorm:"type:text" json:"caption"`

	ImageURLs []string `gorm:"serializer:json" json:"image_urls"`

	// Dive conditions as recorded by the diver.
	DiveDate          time.Time `json:"dive_date"`
	DiveTimestamp     time.Time `json:"dive_timestamp"`
	MaxDepth          float64   `gorm:"not null" json:"max_depth"`
	DiveDuration      int       `gorm:"not null" json:"dive_duration"`
	VisibilityQuality string    `json:"visibility_quality"`
	WaterTemp         float64   `json:"water_temp"`
	WindConditions    string    `json:"wind_conditions"`
	CurrentConditions string    `json:"current_conditions"`

	SeaLife    []string `gorm:"serializer:json" json:"sea_life"`
	BuddyNames []string `gorm:"serializer:json" json:"buddy_names"`
	Equipment  []string `gorm:"serializer:json" json:"equipment"`
	Notes      string   `gorm:"type:text" json:"notes"`

	// Denormalized engagement counters. Overwritten by a full recount after
	// every like, unlike, comment creation and comment deletion.
	LikesCount    int `gorm:"default:0" json:"likes_count"`
	CommentsCount int `gorm:"default:0" json:"comments_count"`

	// Liked indicates whether the current requesting diver liked this post (computed)
	Liked bool `gorm:"-" json:"liked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *DivePost) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// FeedItem is a post enriched with its diver and spot for feed responses.
type FeedItem struct {
	DivePost
	Diver *Diver    `json:"diver,omitempty"`
	Spot  *DiveSpot `json:"spot,omitempty"`
}
