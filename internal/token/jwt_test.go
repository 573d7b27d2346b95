package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_Roundtrip(t *testing.T) {
	manager := NewJWT("test-secret", 1)
	userID := uuid.New()

	tokenString, err := manager.GenerateSessionToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsed, err := manager.ParseSessionToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWT_WrongSecret(t *testing.T) {
	tokenString, err := NewJWT("secret-a", 1).GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	_, err = NewJWT("secret-b", 1).ParseSessionToken(tokenString)
	assert.Error(t, err)
}

func TestJWT_Expired(t *testing.T) {
	j := &JWT{secretKey: "test-secret", ttl: -time.Minute}

	tokenString, err := j.GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	_, err = j.ParseSessionToken(tokenString)
	assert.Error(t, err)
}

func TestJWT_Malformed(t *testing.T) {
	_, err := NewJWT("test-secret", 1).ParseSessionToken("not.a.token")
	assert.Error(t, err)
}

func TestJWT_RejectsUnsignedToken(t *testing.T) {
	userID := uuid.New()
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: userID,
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWT("test-secret", 1).ParseSessionToken(tokenString)
	assert.Error(t, err)
}
