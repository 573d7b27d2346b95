package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/blogapi/internal/auth"
	"github.com/dtroode/blogapi/internal/logger"
	"github.com/dtroode/blogapi/internal/model"
	"github.com/dtroode/blogapi/internal/token"
)

// Auth orchestrates account operations: registration, login, password
// change, profile updates and the reset-token lifecycle.
type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	mailer       model.Mailer
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	tokenManager model.TokenManager,
	mailer model.Mailer,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		mailer:       mailer,
		logger:       logger,
	}
}

// RegisterParams holds input for user registration.
type RegisterParams struct {
	Username string
	Password string
	Name     string
	Role     model.Role
}

func validateCredentials(username, password string) error {
	if username == "" {
		return model.NewValidationError("Username must be required")
	}
	if len(password) < model.MinPasswordLength {
		return model.NewValidationError("password must be at least %d characters", model.MinPasswordLength)
	}
	return nil
}

// Register creates a new user and issues a session token for it.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.User, string, error) {
	if err := validateCredentials(params.Username, params.Password); err != nil {
		return model.User{}, "", err
	}

	role := params.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return model.User{}, "", model.NewValidationError("unknown role: %s", role)
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Name:         params.Name,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	sessionToken, err := a.tokenManager.GenerateSessionToken(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", user.Username,
		"user_id", user.ID)

	return user, sessionToken, nil
}

// Login verifies credentials and issues a session token. Unknown usernames
// and wrong passwords produce the same error.
func (a *Auth) Login(ctx context.Context, username, password string) (model.User, string, error) {
	if username == "" || password == "" {
		return model.User{}, "", model.NewValidationError("Please provide username and password")
	}

	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, "", model.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return model.User{}, "", model.ErrInvalidCredentials
	}

	sessionToken, err := a.tokenManager.GenerateSessionToken(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"username", user.Username,
		"user_id", user.ID)

	return user, sessionToken, nil
}

// Me returns the user for the given id.
func (a *Auth) Me(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// UpdateDetails updates the allow-listed mutable profile fields. Only the
// display name can be changed through this path.
func (a *Auth) UpdateDetails(ctx context.Context, userID uuid.UUID, name string) (model.User, error) {
	user, err := a.userStore.Update(ctx, userID, model.UserUpdate{Name: &name})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user details: %w", err)
	}

	return user, nil
}

// UpdatePassword re-hashes and stores a new password after verifying the
// current one, then issues a fresh session token.
func (a *Auth) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) (model.User, string, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, currentPassword); err != nil {
		return model.User{}, "", model.ErrInvalidCredentials
	}

	if len(newPassword) < model.MinPasswordLength {
		return model.User{}, "", model.NewValidationError("password must be at least %d characters", model.MinPasswordLength)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err = a.userStore.Update(ctx, userID, model.UserUpdate{PasswordHash: &hash})
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to update password: %w", err)
	}

	sessionToken, err := a.tokenManager.GenerateSessionToken(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	a.logger.Info("Auth service: password updated", "user_id", user.ID)

	return user, sessionToken, nil
}

// ForgotPassword issues a reset token for the user, persists its hash and
// mails the plaintext. The stored token is cleared again if the mail cannot
// be sent, so an undelivered token is never usable.
func (a *Auth) ForgotPassword(ctx context.Context, username, resetURLBase string) error {
	user, err := a.userStore.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to get user by username: %w", err)
	}

	resetToken, err := token.NewResetToken()
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	if err := a.userStore.SetResetToken(ctx, user.ID, resetToken.Hash, resetToken.ExpiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/api/v1/auth/resetpassword/%s", resetURLBase, resetToken.Plaintext)
	body := fmt.Sprintf("You are receiving this email because you (or someone else) has requested a password reset. Please make a PATCH request to:\n\n%s", resetURL)

	if err := a.mailer.Send(ctx, user.Username, "Reset password", body); err != nil {
		a.logger.Error("Auth service: failed to send reset email",
			"user_id", user.ID,
			"error", err.Error())

		if clearErr := a.userStore.ClearResetToken(ctx, user.ID); clearErr != nil {
			a.logger.Error("Auth service: failed to clear reset token after send failure",
				"user_id", user.ID,
				"error", clearErr.Error())
		}

		return model.ErrMailDelivery
	}

	a.logger.Info("Auth service: reset email sent", "user_id", user.ID)

	return nil
}

// ResetPassword consumes a reset token: it looks up the user by the token's
// digest, sets the new password, clears the token and issues a fresh session
// token.
func (a *Auth) ResetPassword(ctx context.Context, plaintext, newPassword string) (model.User, string, error) {
	user, err := a.userStore.GetByResetTokenHash(ctx, token.HashResetToken(plaintext))
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, "", model.ErrInvalidToken
	}
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to get user by reset token: %w", err)
	}

	if len(newPassword) < model.MinPasswordLength {
		return model.User{}, "", model.NewValidationError("password must be at least %d characters", model.MinPasswordLength)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err = a.userStore.Update(ctx, user.ID, model.UserUpdate{PasswordHash: &hash})
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to update password: %w", err)
	}

	if err := a.userStore.ClearResetToken(ctx, user.ID); err != nil {
		return model.User{}, "", fmt.Errorf("failed to clear reset token: %w", err)
	}

	sessionToken, err := a.tokenManager.GenerateSessionToken(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	a.logger.Info("Auth service: password reset", "user_id", user.ID)

	return user, sessionToken, nil
}
