package repository

import (
	"context"
	"testing"

	"divespot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDiverCreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDiverRepository(db)
	ctx := context.Background()

	diver := &models.Diver{Username: "deepblue", Email: "deep@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(ctx, diver))
	assert.NotEmpty(t, diver.ID)
	assert.Equal(t, "Open Water", func() string {
		got, err := repo.GetByID(ctx, diver.ID)
		require.NoError(t, err)
		return got.CertificationLevel
	}())

	byName, err := repo.GetByUsername(ctx, "deepblue")
	require.NoError(t, err)
	assert.Equal(t, diver.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "deep@example.com")
	require.NoError(t, err)
	assert.Equal(t, diver.ID, byEmail.ID)
}

func TestDiverDuplicateUsernameRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDiverRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Diver{Username: "dup", Email: "a@example.com", Password: "x"}))
	err := repo.Create(ctx, &models.Diver{Username: "dup", Email: "b@example.com", Password: "x"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestDiverDeleteCascadesAndRecountsForeignPosts(t *testing.T) {
	db := setupTestDB(t)
	diverRepo := NewDiverRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	victim := createTestDiver(t, db, "leaving")
	other := createTestDiver(t, db, "staying")
	spot := createTestSpot(t, db, "Canyon")

	// The departing diver engages with someone else's post.
	foreign := createTestPost(t, db, postRepo, other.ID, spot.ID)
	require.NoError(t, postRepo.Like(ctx, victim.ID, foreign.ID))
	require.NoError(t, db.Create(&models.PostComment{DiverID: victim.ID, PostID: foreign.ID, Content: "see you down there"}).Error)
	require.NoError(t, postRepo.RecalculateCounts(ctx, foreign.ID, "comment_create"))
	require.Equal(t, 1, reloadPost(t, db, foreign.ID).LikesCount)
	require.Equal(t, 1, reloadPost(t, db, foreign.ID).CommentsCount)

	// And owns a post that others engaged with.
	own := createTestPost(t, db, postRepo, victim.ID, spot.ID)
	require.NoError(t, postRepo.Like(ctx, other.ID, own.ID))

	require.NoError(t, diverRepo.Delete(ctx, victim.ID))

	_, err := diverRepo.GetByID(ctx, victim.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Own post and its engagement are gone.
	_, err = postRepo.GetByID(ctx, own.ID, "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	var remaining int64
	require.NoError(t, db.Model(&models.PostLike{}).Where("post_id = ?", own.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	// Foreign post survives with recounted engagement.
	got := reloadPost(t, db, foreign.ID)
	assert.Equal(t, 0, got.LikesCount)
	assert.Equal(t, 0, got.CommentsCount)
}

func TestDiverDeleteDropsCachedPosts(t *testing.T) {
	db := setupTestDB(t)
	setupTestCache(t)
	diverRepo := NewDiverRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	victim := createTestDiver(t, db, "ghost")
	other := createTestDiver(t, db, "witness")
	spot := createTestSpot(t, db, "Blue Hole")

	foreign := createTestPost(t, db, postRepo, other.ID, spot.ID)
	require.NoError(t, postRepo.Like(ctx, victim.ID, foreign.ID))
	own := createTestPost(t, db, postRepo, victim.ID, spot.ID)

	// Warm the cache with pre-cascade state.
	warmed, err := postRepo.GetByID(ctx, foreign.ID, "")
	require.NoError(t, err)
	require.Equal(t, 1, warmed.LikesCount)
	_, err = postRepo.GetByID(ctx, own.ID, "")
	require.NoError(t, err)

	require.NoError(t, diverRepo.Delete(ctx, victim.ID))

	// The recounted post serves fresh counters, not the cached ones.
	fresh, err := postRepo.GetByID(ctx, foreign.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.LikesCount)

	// The deleted post no longer resurrects from cache.
	_, err = postRepo.GetByID(ctx, own.ID, "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
