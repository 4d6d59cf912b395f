package auth

import (
	"savaan_backend/internal/validator"
	"savaan_backend/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword creates a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash verifies a password against its hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidateNewPassword enforces the registration password policy: 6+
// characters with uppercase, lowercase and a special character.
func ValidateNewPassword(password string) error {
	if !validator.IsStrongPassword(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}

// ValidateLoginPassword enforces only the minimum length; the strength rule
// applies to new passwords, not to credentials issued before it existed.
func ValidateLoginPassword(password string) error {
	if len(password) < 6 {
		return apperrors.BadRequest("Password must be at least 6 characters long")
	}
	return nil
}
