package app

import (
	"context"
	"errors"
	"time"

	"inventoried/internal/domain"
)

// ErrUserNotFound indicates that no user exists with the requested id.
var ErrUserNotFound = errors.New("user not found")

// UserService encapsulates the user-account CRUD use cases.
type UserService struct {
	repo domain.UserRepository
}

// NewUserService creates a UserService backed by the given repository.
func NewUserService(repo domain.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Create validates and stores a new user. An omitted role defaults to
// "user". Uniqueness of username and email is enforced by the store.
func (s *UserService) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	user.ID = ""
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = domain.DefaultRole
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial update, refreshing UpdatedAt unconditionally.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	user, err := s.repo.Update(ctx, id, patch, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Delete removes the user and returns the removed record.
func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
