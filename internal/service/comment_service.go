package service

import (
	"context"

	"divespot/internal/models"
	"divespot/internal/repository"
)

const maxCommentLen = 2000

// CommentService manages the comment lifecycle. Creating and deleting a
// comment both trigger a full recount of the parent post's counters;
// editing content in place does not.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	DiverID string
	PostID  string
	Content string
}

type UpdateCommentInput struct {
	DiverID   string
	CommentID string
	Content   string
}

type DeleteCommentInput struct {
	DiverID   string
	CommentID string
	IsAdmin   bool
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.PostComment, error) {
	if in.DiverID == "" {
		return nil, models.NewValidationError("diver_id is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID, ""); err != nil {
		return nil, err
	}

	comment := &models.PostComment{
		DiverID: in.DiverID,
		PostID:  in.PostID,
		Content: in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if err := s.postRepo.RecalculateCounts(ctx, in.PostID, "comment_create"); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID string, limit, offset int) ([]*models.PostComment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, ""); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByPostID(ctx, postID, limit, offset)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.PostComment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.DiverID != in.DiverID {
		return nil, models.NewUnauthorizedError("You can only update your own comments")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if comment.DiverID != in.DiverID && !in.IsAdmin {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return err
	}

	return s.postRepo.RecalculateCounts(ctx, comment.PostID, "comment_delete")
}
