package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey = "request_id"
	userIDKey    = "user_id"
	emailKey     = "email"

	RequestIDHeader = "X-Request-Id"
)

// UserID returns the authenticated user, or false for anonymous requests.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func UserEmail(c *gin.Context) string {
	return c.GetString(emailKey)
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
