package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savaan_backend/pkg/apperrors"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Generate("user-1", "ravi@gmail.com", "DEPT-1")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ravi@gmail.com", claims.Email)
	assert.Equal(t, "DEPT-1", claims.DepartmentID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Parse(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken, token)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := signer.Generate("user-1", "ravi@gmail.com", "DEPT-1")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	m.ttl = -time.Minute

	token, err := m.Generate("user-1", "ravi@gmail.com", "DEPT-1")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestIssuedBefore(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	token, err := m.Generate("user-1", "ravi@gmail.com", "DEPT-1")
	require.NoError(t, err)
	claims, err := m.Parse(token)
	require.NoError(t, err)

	assert.True(t, claims.IssuedBefore(time.Now().Add(time.Minute)))
	assert.False(t, claims.IssuedBefore(time.Now().Add(-time.Minute)))
}
