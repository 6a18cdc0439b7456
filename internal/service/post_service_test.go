package service

import (
	"context"
	"testing"
	"time"

	"divespot/internal/database"
	"divespot/internal/models"
	"divespot/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedDiverAndSpot(t *testing.T, db *gorm.DB) (*models.Diver, *models.DiveSpot) {
	t.Helper()
	diver := &models.Diver{Username: "tester", Email: "tester@example.com", Password: "hashed"}
	require.NoError(t, db.Create(diver).Error)
	spot := &models.DiveSpot{Name: "Test Reef", Difficulty: "Beginner", WaterType: "Salt"}
	require.NoError(t, db.Create(spot).Error)
	return diver, spot
}

func validPostInput(diverID, spotID string) CreatePostInput {
	return CreatePostInput{
		DiverID:           diverID,
		SpotID:            spotID,
		MaxDepth:          18,
		DiveDuration:      45,
		DiveDate:          "2026-03-14",
		VisibilityQuality: "Good",
		WindConditions:    "Calm",
		CurrentConditions: "None",
	}
}

func TestCreatePostValidation(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewPostService(repository.NewPostRepository(db))
	diver, spot := seedDiverAndSpot(t, db)
	ctx := context.Background()

	base := func() CreatePostInput { return validPostInput(diver.ID, spot.ID) }

	tests := []struct {
		name    string
		mutate  func(*CreatePostInput)
		wantErr string
	}{
		{name: "valid input", mutate: func(in *CreatePostInput) {}},
		{name: "missing diver", mutate: func(in *CreatePostInput) { in.DiverID = "" }, wantErr: "diver_id"},
		{name: "missing spot", mutate: func(in *CreatePostInput) { in.SpotID = "" }, wantErr: "spot_id"},
		{name: "zero depth", mutate: func(in *CreatePostInput) { in.MaxDepth = 0 }, wantErr: "max_depth"},
		{name: "negative duration", mutate: func(in *CreatePostInput) { in.DiveDuration = -5 }, wantErr: "dive_duration"},
		{name: "bad visibility", mutate: func(in *CreatePostInput) { in.VisibilityQuality = "Crystal" }, wantErr: "visibility_quality"},
		{name: "bad wind", mutate: func(in *CreatePostInput) { in.WindConditions = "Hurricane" }, wantErr: "wind_conditions"},
		{name: "bad current", mutate: func(in *CreatePostInput) { in.CurrentConditions = "Ripping" }, wantErr: "current_conditions"},
		{name: "missing visibility", mutate: func(in *CreatePostInput) { in.VisibilityQuality = "" }, wantErr: "visibility_quality"},
		{name: "missing wind", mutate: func(in *CreatePostInput) { in.WindConditions = "" }, wantErr: "wind_conditions"},
		{name: "missing current", mutate: func(in *CreatePostInput) { in.CurrentConditions = "" }, wantErr: "current_conditions"},
		{name: "bad date", mutate: func(in *CreatePostInput) { in.DiveDate = "14-03-2026" }, wantErr: "dive_date"},
		{name: "missing date", mutate: func(in *CreatePostInput) { in.DiveDate = "" }, wantErr: "dive_date"},
		{name: "bad timestamp", mutate: func(in *CreatePostInput) { in.DiveTimestamp = "yesterday" }, wantErr: "dive_timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.mutate(&in)
			_, err := svc.CreatePost(ctx, in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCreatePostAcceptsBothTimestampFormats(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewPostService(repository.NewPostRepository(db))
	diver, spot := seedDiverAndSpot(t, db)
	ctx := context.Background()

	for _, ts := range []string{"2026-03-14T09:30:00Z", "2026-03-14 09:30:00"} {
		in := validPostInput(diver.ID, spot.ID)
		in.DiveTimestamp = ts
		_, err := svc.CreatePost(ctx, in)
		assert.NoError(t, err, "timestamp %q should parse", ts)
	}

	// An absent timestamp defaults to the time of logging.
	created, err := svc.CreatePost(ctx, validPostInput(diver.ID, spot.ID))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created.DiveTimestamp, time.Minute)
}

func TestGetPostNormalizesImageURLs(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewPostService(repository.NewPostRepository(db))
	diver, spot := seedDiverAndSpot(t, db)
	ctx := context.Background()

	in := validPostInput(diver.ID, spot.ID)
	in.ImageURLs = []string{
		"http://localhost:5010/files/reef.jpg",
		"https://cdn.example.com/other.jpg",
	}
	created, err := svc.CreatePost(ctx, in)
	require.NoError(t, err)

	got, err := svc.GetPost(ctx, created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/images/reef.jpg", "https://cdn.example.com/other.jpg"}, got.ImageURLs)

	// The stored value stays untouched; normalization is read-time only.
	var raw models.DivePost
	require.NoError(t, db.First(&raw, "id = ?", created.ID).Error)
	assert.Equal(t, "http://localhost:5010/files/reef.jpg", raw.ImageURLs[0])
}

func TestUpdatePostOwnershipAndImmutability(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewPostService(repository.NewPostRepository(db))
	diver, spot := seedDiverAndSpot(t, db)
	ctx := context.Background()

	in := validPostInput(diver.ID, spot.ID)
	in.MaxDepth = 22
	in.DiveDuration = 35
	created, err := svc.CreatePost(ctx, in)
	require.NoError(t, err)

	caption := "updated caption"
	_, err = svc.UpdatePost(ctx, UpdatePostInput{DiverID: "someone-else", PostID: created.ID, Caption: &caption})
	require.Error(t, err)

	updated, err := svc.UpdatePost(ctx, UpdatePostInput{DiverID: diver.ID, PostID: created.ID, Caption: &caption})
	require.NoError(t, err)
	assert.Equal(t, "updated caption", updated.Caption)
	assert.Equal(t, 22.0, updated.MaxDepth)
	assert.Equal(t, 35, updated.DiveDuration)
}

func TestLikeUnlikeThroughService(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewPostService(repository.NewPostRepository(db))
	diver, spot := seedDiverAndSpot(t, db)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, validPostInput(diver.ID, spot.ID))
	require.NoError(t, err)

	require.Error(t, svc.LikePost(ctx, "", created.ID), "empty diver id is rejected")
	require.Error(t, svc.LikePost(ctx, diver.ID, "missing-post"), "missing post is an error")

	require.NoError(t, svc.LikePost(ctx, diver.ID, created.ID))
	require.NoError(t, svc.LikePost(ctx, diver.ID, created.ID))

	got, err := svc.GetPost(ctx, created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)

	likes, err := svc.GetLikes(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)

	require.NoError(t, svc.UnlikePost(ctx, diver.ID, created.ID))
	require.NoError(t, svc.UnlikePost(ctx, diver.ID, created.ID))

	got, err = svc.GetPost(ctx, created.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikesCount)
}
