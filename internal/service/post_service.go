// Package service implements the application's business logic layer.
package service

import (
	"context"
	"time"

	"divespot/internal/models"
	"divespot/internal/repository"
)

const (
	maxCaptionLen = 2200
	maxNotesLen   = 10000
)

// PostService coordinates dive post validation and persistence.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the fields accepted when logging a dive.
type CreatePostInput struct {
	DiverID           string
	SpotID            string
	Caption           string
	ImageURLs         []string
	DiveDate          string
	DiveTimestamp     string
	MaxDepth          float64
	DiveDuration      int
	VisibilityQuality string
	WaterTemp         float64
	WindConditions    string
	CurrentConditions string
	SeaLife           []string
	BuddyNames        []string
	Equipment         []string
	Notes             string
}

// UpdatePostInput carries the mutable fields of an existing post.
type UpdatePostInput struct {
	DiverID           string
	PostID            string
	Caption           *string
	Notes             *string
	SeaLife           []string
	BuddyNames        []string
	Equipment         []string
	VisibilityQuality *string
	WindConditions    *string
	CurrentConditions *string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost validates the dive log and persists it. The repository folds
// the new dive into diver and spot statistics atomically; unknown diver or
// spot references are allowed and skipped there.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.DivePost, error) {
	if in.DiverID == "" {
		return nil, models.NewValidationError("diver_id is required")
	}
	if in.SpotID == "" {
		return nil, models.NewValidationError("spot_id is required")
	}
	if in.MaxDepth <= 0 {
		return nil, models.NewValidationError("max_depth must be a positive number")
	}
	if in.DiveDuration <= 0 {
		return nil, models.NewValidationError("dive_duration must be a positive number of minutes")
	}
	if len(in.Caption) > maxCaptionLen {
		return nil, models.NewValidationError("Caption too long (max 2200 characters)")
	}
	if len(in.Notes) > maxNotesLen {
		return nil, models.NewValidationError("Notes too long (max 10000 characters)")
	}
	if in.VisibilityQuality == "" {
		return nil, models.NewValidationError("visibility_quality is required")
	}
	if in.WindConditions == "" {
		return nil, models.NewValidationError("wind_conditions is required")
	}
	if in.CurrentConditions == "" {
		return nil, models.NewValidationError("current_conditions is required")
	}
	if err := validateConditions(in.VisibilityQuality, in.WindConditions, in.CurrentConditions); err != nil {
		return nil, err
	}

	diveDate, err := parseDiveDate(in.DiveDate)
	if err != nil {
		return nil, err
	}
	diveTimestamp, err := parseDiveTimestamp(in.DiveTimestamp)
	if err != nil {
		return nil, err
	}

	post := &models.DivePost{
		DiverID:           in.DiverID,
		SpotID:            in.SpotID,
		Caption:           in.Caption,
		ImageURLs:         in.ImageURLs,
		DiveDate:          diveDate,
		DiveTimestamp:     diveTimestamp,
		MaxDepth:          in.MaxDepth,
		DiveDuration:      in.DiveDuration,
		VisibilityQuality: in.VisibilityQuality,
		WaterTemp:         in.WaterTemp,
		WindConditions:    in.WindConditions,
		CurrentConditions: in.CurrentConditions,
		SeaLife:           in.SeaLife,
		BuddyNames:        in.BuddyNames,
		Equipment:         in.Equipment,
		Notes:             in.Notes,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	normalizePostImages(post)
	return post, nil
}

// GetPost returns the post with image references normalized for serving.
func (s *PostService) GetPost(ctx context.Context, id, currentDiverID string) (*models.DivePost, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentDiverID)
	if err != nil {
		return nil, err
	}
	normalizePostImages(post)
	return post, nil
}

// ListPosts returns posts matching the filter, image references normalized.
func (s *PostService) ListPosts(ctx context.Context, filter repository.PostFilter, limit, offset int, currentDiverID string) ([]*models.DivePost, error) {
	posts, err := s.postRepo.List(ctx, filter, limit, offset, currentDiverID)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		normalizePostImages(p)
	}
	return posts, nil
}

// Feed returns recent posts enriched with diver and spot.
func (s *PostService) Feed(ctx context.Context, limit, offset int, currentDiverID string) ([]*models.FeedItem, error) {
	items, err := s.postRepo.Feed(ctx, limit, offset, currentDiverID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		normalizePostImages(&item.DivePost)
		if item.Diver != nil {
			item.Diver.ProfileImageURL = NormalizeImageURL(item.Diver.ProfileImageURL)
		}
	}
	return items, nil
}

// UpdatePost applies in-place edits. Dive identity (diver, spot), measured
// depth and duration are immutable once logged.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.DivePost, error) {
	// Fetch as the editing diver so the read bypasses the cache; the whole
	// row is written back and must not carry cached counters.
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.DiverID)
	if err != nil {
		return nil, err
	}
	if post.DiverID != in.DiverID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	if in.Caption != nil {
		if len(*in.Caption) > maxCaptionLen {
			return nil, models.NewValidationError("Caption too long (max 2200 characters)")
		}
		post.Caption = *in.Caption
	}
	if in.Notes != nil {
		if len(*in.Notes) > maxNotesLen {
			return nil, models.NewValidationError("Notes too long (max 10000 characters)")
		}
		post.Notes = *in.Notes
	}
	if in.SeaLife != nil {
		post.SeaLife = in.SeaLife
	}
	if in.BuddyNames != nil {
		post.BuddyNames = in.BuddyNames
	}
	if in.Equipment != nil {
		post.Equipment = in.Equipment
	}
	if in.VisibilityQuality != nil {
		post.VisibilityQuality = *in.VisibilityQuality
	}
	if in.WindConditions != nil {
		post.WindConditions = *in.WindConditions
	}
	if in.CurrentConditions != nil {
		post.CurrentConditions = *in.CurrentConditions
	}
	if err := validateConditions(post.VisibilityQuality, post.WindConditions, post.CurrentConditions); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	normalizePostImages(post)
	return post, nil
}

// DeletePost removes the post and its engagement. Diver and spot statistics
// are lifetime accumulators and stay as they are.
func (s *PostService) DeletePost(ctx context.Context, diverID, postID string, isAdmin bool) error {
	post, err := s.postRepo.GetByID(ctx, postID, "")
	if err != nil {
		return err
	}
	if post.DiverID != diverID && !isAdmin {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// LikePost records the diver's like; liking twice is success.
func (s *PostService) LikePost(ctx context.Context, diverID, postID string) error {
	if diverID == "" {
		return models.NewValidationError("diver_id is required")
	}
	if _, err := s.postRepo.GetByID(ctx, postID, ""); err != nil {
		return err
	}
	return s.postRepo.Like(ctx, diverID, postID)
}

// UnlikePost removes the diver's like; removing an absent like is success.
func (s *PostService) UnlikePost(ctx context.Context, diverID, postID string) error {
	if diverID == "" {
		return models.NewValidationError("diver_id is required")
	}
	if _, err := s.postRepo.GetByID(ctx, postID, ""); err != nil {
		return err
	}
	return s.postRepo.Unlike(ctx, diverID, postID)
}

// GetLikes lists the likes on a post.
func (s *PostService) GetLikes(ctx context.Context, postID string) ([]*models.PostLike, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, ""); err != nil {
		return nil, err
	}
	return s.postRepo.GetLikes(ctx, postID)
}

func validateConditions(visibility, wind, current string) error {
	if visibility != "" && !models.ValidVisibilityQuality(visibility) {
		return models.NewValidationError("Invalid visibility_quality")
	}
	if wind != "" && !models.ValidWindConditions(wind) {
		return models.NewValidationError("Invalid wind_conditions")
	}
	if current != "" && !models.ValidCurrentConditions(current) {
		return models.NewValidationError("Invalid current_conditions")
	}
	return nil
}

func parseDiveDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, models.NewValidationError("dive_date is required")
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, models.NewValidationError("dive_date must be formatted YYYY-MM-DD")
	}
	return t, nil
}

// parseDiveTimestamp defaults an absent timestamp to the moment the dive is
// logged; the dive date itself is always caller supplied.
func parseDiveTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02 15:04:05", raw)
	if err != nil {
		return time.Time{}, models.NewValidationError("dive_timestamp must be RFC3339 or YYYY-MM-DD HH:MM:SS")
	}
	return t, nil
}

func normalizePostImages(post *models.DivePost) {
	for i, u := range post.ImageURLs {
		post.ImageURLs[i] = NormalizeImageURL(u)
	}
}
