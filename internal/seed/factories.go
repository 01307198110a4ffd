// Package seed provides fake-data factories for development databases and
// tests.
package seed

import (
	"fmt"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every factory user gets, so seeded
// accounts can be logged into during development.
const DefaultPassword = "password123"

// Factory creates persisted fake records. Override funcs mutate the record
// before it is saved.
type Factory struct {
	db *gorm.DB
}

// NewFactory creates a Factory bound to the given database.
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{db: db}
}

// CreateUser persists a fake user with a bcrypt-hashed DefaultPassword.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     gofakeit.Email(),
		Password:  string(hash),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seeding user: %w", err)
	}
	return user, nil
}

// CreatePost persists a fake post owned by the given user.
func (f *Factory) CreatePost(owner *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Title:  gofakeit.Sentence(4),
		Text:   gofakeit.Paragraph(1, 3, 12, " "),
		Date:   time.Now().Format(models.PostDateLayout),
		UserID: owner.ID,
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("seeding post: %w", err)
	}
	return post, nil
}

// CreateComment persists a fake comment by the given user on the given post.
func (f *Factory) CreateComment(author *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Text:   gofakeit.Sentence(8),
		UserID: author.ID,
		PostID: post.ID,
	}
	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("seeding comment: %w", err)
	}
	return comment, nil
}

// LikePost bumps the post's like counter n times.
func (f *Factory) LikePost(post *models.Post, n int) error {
	res := f.db.Model(&models.Post{}).
		Where("id = ?", post.ID).
		UpdateColumn("likes", gorm.Expr("likes + ?", n))
	if res.Error != nil {
		return fmt.Errorf("seeding likes: %w", res.Error)
	}
	post.Likes += n
	return nil
}
