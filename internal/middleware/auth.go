package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"confhub-backend/internal/auth"
)

type tokenValidator interface {
	Validate(token string) (auth.Claims, error)
}

// OptionalAuth attaches the user when a valid bearer token is present.
// Requests without a token continue anonymously; a bad token is rejected.
func OptionalAuth(validator tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		if !authenticate(c, validator, token) {
			return
		}
		c.Next()
	}
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(validator tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !authenticate(c, validator, token) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, validator tokenValidator, token string) bool {
	claims, err := validator.Validate(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return false
	}
	c.Set(userIDKey, claims.UserID)
	c.Set(emailKey, claims.Email)
	return true
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
