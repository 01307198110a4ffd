package service

import (
	"context"
	"time"

	"quill/internal/models"
	"quill/internal/repository"
)

// PostService implements post management. Every operation acts on behalf of
// the authenticated owner; foreign posts surface as NotFound.
type PostService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

// CreatePostInput carries an already-validated post submission.
type CreatePostInput struct {
	OwnerID uint
	Title   string
	Text    string
}

// UpdatePostInput carries an edit submission for an existing post.
type UpdatePostInput struct {
	OwnerID uint
	PostID  uint
	Title   string
	Text    string
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo, now: time.Now}
}

// Create stamps the calendar date, zeroes the like counter and persists the
// post under the owner.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		Title:  in.Title,
		Text:   in.Text,
		Date:   s.now().Format(models.PostDateLayout),
		UserID: in.OwnerID,
		Likes:  0,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListByOwner returns all posts owned by the given user, newest first.
func (s *PostService) ListByOwner(ctx context.Context, ownerID uint) ([]*models.Post, error) {
	return s.postRepo.ListByOwner(ctx, ownerID)
}

// GetOwned fetches a single post owned by the given user.
func (s *PostService) GetOwned(ctx context.Context, postID, ownerID uint) (*models.Post, error) {
	return s.postRepo.GetOwnedByID(ctx, postID, ownerID)
}

// Update mutates title and text of an owned post in place.
func (s *PostService) Update(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetOwnedByID(ctx, in.PostID, in.OwnerID)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Text = in.Text
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes an owned post.
func (s *PostService) Delete(ctx context.Context, postID, ownerID uint) error {
	return s.postRepo.Delete(ctx, postID, ownerID)
}

// Like increments the post's like counter by exactly one and returns the
// refreshed post. Repeated likes keep incrementing; there is no per-user
// dedup.
func (s *PostService) Like(ctx context.Context, postID, ownerID uint) (*models.Post, error) {
	if err := s.postRepo.IncrementLikes(ctx, postID, ownerID); err != nil {
		return nil, err
	}
	return s.postRepo.GetOwnedByID(ctx, postID, ownerID)
}
