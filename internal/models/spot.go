package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiveSpot represents a named dive location divers can log posts against.
type DiveSpot struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Name        string  `gorm:"not null;index" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Address     string  `json:"address"`
	MaxDepth    float64 `json:"max_depth"`
	Difficulty  string  `gorm:"index" json:"difficulty"`
	WaterType   string  `gorm:"default:'Salt'" json:"water_type"`
	// AvgRating is stored but never recomputed; ratings never made it past
	// the data model.
	AvgRating        float64   `gorm:"default:0" json:"avg_rating"`
	AvgVisibility    float64   `json:"avg_visibility"`
	AvgTemperature   float64   `json:"avg_temperature"`
	TotalDivesLogged int       `gorm:"default:0" json:"total_dives_logged"`
	CreatedBy        string    `gorm:"size:36;index" json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (s *DiveSpot) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
