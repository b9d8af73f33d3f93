package service

import (
	"context"

	"quill/internal/auth"
	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"
)

// UserService implements registration, login, profile and status use cases.
type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// LoginResult carries the issued token and the authenticated user's id.
type LoginResult struct {
	Token  string
	UserID uint
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenService) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens}
}

// Register validates the input (accumulating every violation), rejects
// duplicate emails and persists the new user with a hashed password. The
// returned user's Password field holds the hash and is never serialized.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if errs := validation.ValidateNewUser(in.Email, in.Password); len(errs) > 0 {
		return nil, models.NewValidationError("Invalid input", errs...)
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists!")
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    in.Email,
		Password: hashed,
		Name:     in.Name,
		Status:   models.DefaultStatus,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues an identity token.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User")
	}

	if !auth.CheckPassword(password, user.Password) {
		return nil, models.NewUnauthenticatedError("Passwords incorrect!")
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &LoginResult{Token: token, UserID: user.ID}, nil
}

// CurrentUser resolves the viewer to their stored profile, posts included.
func (s *UserService) CurrentUser(ctx context.Context, viewer auth.Viewer) (*models.User, error) {
	if err := requireAuth(viewer); err != nil {
		return nil, err
	}
	return s.userRepo.GetByIDWithPosts(ctx, viewer.UserID)
}

// UpdateStatus overwrites the viewer's own status unconditionally.
func (s *UserService) UpdateStatus(ctx context.Context, viewer auth.Viewer, status string) (*models.User, error) {
	if err := requireAuth(viewer); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
