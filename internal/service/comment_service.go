package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

const maxCommentLen = 10000

// CommentService implements comment creation and listing. Comment targets
// are resolved through the owner-scoped post lookup, so commenting on a
// foreign or missing post yields NotFound.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// CreateCommentInput carries a comment submission.
type CreateCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Create links a comment to the post and its author.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetOwnedByID(ctx, in.PostID, in.UserID); err != nil {
		return nil, err
	}

	if in.Text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Text:   in.Text,
		UserID: in.UserID,
		PostID: in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost returns all comments on an owned post, oldest first.
func (s *CommentService) ListByPost(ctx context.Context, postID, ownerID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetOwnedByID(ctx, postID, ownerID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}
