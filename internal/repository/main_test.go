package repository

import (
	"context"
	"testing"
	"time"

	"divespot/internal/cache"
	"divespot/internal/database"
	"divespot/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func setupTestCache(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
}

func createTestDiver(t *testing.T, db *gorm.DB, username string) *models.Diver {
	t.Helper()
	diver := &models.Diver{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(diver).Error)
	return diver
}

func createTestSpot(t *testing.T, db *gorm.DB, name string) *models.DiveSpot {
	t.Helper()
	spot := &models.DiveSpot{
		Name:       name,
		Latitude:   12.5,
		Longitude:  -61.4,
		MaxDepth:   30,
		Difficulty: "Intermediate",
		WaterType:  "Salt",
	}
	require.NoError(t, db.Create(spot).Error)
	return spot
}

func createTestPost(t *testing.T, db *gorm.DB, repo PostRepository, diverID, spotID string) *models.DivePost {
	t.Helper()
	post := &models.DivePost{
		DiverID:      diverID,
		SpotID:       spotID,
		Caption:      "morning drift dive",
		MaxDepth:     18.5,
		DiveDuration: 42,
		DiveDate:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}

func reloadPost(t *testing.T, db *gorm.DB, id string) *models.DivePost {
	t.Helper()
	var post models.DivePost
	require.NoError(t, db.First(&post, "id = ?", id).Error)
	return &post
}
