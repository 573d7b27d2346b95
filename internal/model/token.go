package model

import "github.com/google/uuid"

// TokenManager generates and validates signed session tokens.
type TokenManager interface {
	GenerateSessionToken(userID uuid.UUID) (string, error)
	ParseSessionToken(token string) (uuid.UUID, error)
}
