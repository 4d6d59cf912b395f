package auth

import (
	"fmt"
	"time"

	"savaan_backend/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed session claim set bound to a registrant.
type Claims struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	DepartmentID string `json:"departmentId"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens. The secret comes from
// configuration; startup fails before a TokenManager with an empty secret can
// exist.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Generate issues an HS256 token for the user with the configured expiry.
func (m *TokenManager) Generate(userID, email, departmentID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:       userID,
		Email:        email,
		DepartmentID: departmentID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates signature and expiry and returns the claims. Any decode
// failure maps to ErrInvalidToken.
func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// IssuedBefore reports whether the token was issued before t. Used to reject
// sessions created before a password reset.
func (c *Claims) IssuedBefore(t time.Time) bool {
	return c.IssuedAt != nil && c.IssuedAt.Time.Before(t)
}
