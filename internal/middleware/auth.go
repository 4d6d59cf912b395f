package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"savaan_backend/internal/auth"
	"savaan_backend/internal/logger"
	"savaan_backend/pkg/apperrors"
)

const claimsKey = "authClaims"

// AuthMiddleware verifies the Bearer token and stores the claims for the
// handler. The user identity also lands in the request context for log
// correlation.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// GetClaims extracts the verified claims set by AuthMiddleware.
func GetClaims(c *gin.Context) *auth.Claims {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
