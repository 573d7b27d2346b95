package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/blogapi/internal/auth"
	"github.com/dtroode/blogapi/internal/logger"
	"github.com/dtroode/blogapi/internal/model"
)

// User provides the admin-only user management operations.
type User struct {
	userStore model.UserStore
	logger    *logger.Logger
}

func NewUser(userStore model.UserStore, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		logger:    logger,
	}
}

// List returns all users.
func (s *User) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Get returns a single user by id.
func (s *User) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// UpdateUserParams is a partial admin update of a user. A non-nil Password
// is re-hashed before persistence.
type UpdateUserParams struct {
	Username *string
	Name     *string
	Role     *model.Role
	Password *string
}

// Update applies a partial update to a user.
func (s *User) Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (model.User, error) {
	update := model.UserUpdate{
		Username: params.Username,
		Name:     params.Name,
	}

	if params.Role != nil {
		if !params.Role.Valid() {
			return model.User{}, model.NewValidationError("unknown role: %s", *params.Role)
		}
		update.Role = params.Role
	}

	if params.Password != nil {
		if len(*params.Password) < model.MinPasswordLength {
			return model.User{}, model.NewValidationError("password must be at least %d characters", model.MinPasswordLength)
		}
		hash, err := auth.HashPassword(*params.Password)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		update.PasswordHash = &hash
	}

	user, err := s.userStore.Update(ctx, id, update)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: user updated", "user_id", id)

	return user, nil
}

// Delete removes a user and, via cascade, their posts and comments.
func (s *User) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User service: user deleted", "user_id", id)

	return nil
}
