package token

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	rt, err := NewResetToken()
	require.NoError(t, err)

	raw, err := hex.DecodeString(rt.Plaintext)
	require.NoError(t, err)
	assert.Len(t, raw, resetTokenBytes)

	assert.Equal(t, HashResetToken(rt.Plaintext), rt.Hash)
	assert.NotEqual(t, rt.Plaintext, rt.Hash)

	assert.WithinDuration(t, time.Now().Add(resetTokenTTL), rt.ExpiresAt, 5*time.Second)
}

func TestNewResetToken_Unique(t *testing.T) {
	a, err := NewResetToken()
	require.NoError(t, err)
	b, err := NewResetToken()
	require.NoError(t, err)

	assert.NotEqual(t, a.Plaintext, b.Plaintext)
	assert.NotEqual(t, a.Hash, b.Hash)
}

func TestHashResetToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashResetToken("abc"), HashResetToken("abc"))
	assert.NotEqual(t, HashResetToken("abc"), HashResetToken("abd"))
}
