package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of permission classes a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// In reports whether the role is a member of the allowed set.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 4

// User represents a stored user account. The password hash and reset-token
// fields are never serialized.
type User struct {
	ID                  uuid.UUID  `json:"id"`
	Username            string     `json:"username"`
	Name                string     `json:"name,omitempty"`
	Role                Role       `json:"role"`
	PasswordHash        string     `json:"-"`
	ResetTokenHash      *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// UserUpdate is a partial update of mutable user fields. Nil fields are
// left untouched.
type UserUpdate struct {
	Username     *string
	Name         *string
	Role         *Role
	PasswordHash *string
}

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	// GetByResetTokenHash returns the user holding an unexpired reset token
	// with the given hash.
	GetByResetTokenHash(ctx context.Context, hash string) (User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (User, error)
	SetResetToken(ctx context.Context, id uuid.UUID, hash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
