package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	resetTokenBytes = 20
	resetTokenTTL   = 10 * time.Minute
)

// ResetToken is a one-time password-reset credential. Only the hash and
// expiry are persisted; the plaintext goes to the user out-of-band.
type ResetToken struct {
	Plaintext string
	Hash      string
	ExpiresAt time.Time
}

// NewResetToken generates a random reset token with its SHA-256 digest and
// a 10 minute expiry.
func NewResetToken() (ResetToken, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return ResetToken{}, fmt.Errorf("failed to generate reset token: %w", err)
	}

	plaintext := hex.EncodeToString(buf)
	return ResetToken{
		Plaintext: plaintext,
		Hash:      HashResetToken(plaintext),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}, nil
}

// HashResetToken recomputes the stored digest of a plaintext reset token.
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
