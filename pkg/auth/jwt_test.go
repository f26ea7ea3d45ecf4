package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", 0)

	token, err := m.GenerateToken(7, "cliente1")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "cliente1", claims.Username)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateToken(1, "a")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManager_Invalid(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := other.GenerateToken(1, "a")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
