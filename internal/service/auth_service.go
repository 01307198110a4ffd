// Package service contains the application's business logic.
package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is the single error returned for both a missing
// account and a wrong password, so login failures never reveal whether the
// email exists.
var ErrInvalidCredentials = models.NewUnauthorizedError("Incorrect username or password")

// AuthService implements registration and credential verification.
type AuthService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries an already-validated registration submission.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register hashes the password and persists a new user. A duplicate email
// fails with a validation error; no partial record is left behind.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("An account with that email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  string(hashedPassword),
	}

	// The unique index still backstops a concurrent registration race; the
	// repository maps that violation to the same validation error.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the email/password pair. bcrypt's comparison is
// constant-time over the hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
