package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savaan_backend/pkg/apperrors"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret@1")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret@1", hash)

	assert.True(t, CheckPasswordHash("Secret@1", hash))
	assert.False(t, CheckPasswordHash("Secret@2", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestValidateNewPassword(t *testing.T) {
	assert.NoError(t, ValidateNewPassword("Secret@1"))

	for _, p := range []string{"", "short", "alllower@1", "ALLUPPER@1", "NoSpecial1"} {
		err := ValidateNewPassword(p)
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword, p)
	}
}

func TestValidateLoginPassword(t *testing.T) {
	// Login only checks length so accounts predating a policy change can
	// still sign in.
	assert.NoError(t, ValidateLoginPassword("oldpassword"))
	assert.Error(t, ValidateLoginPassword("abc"))
}
