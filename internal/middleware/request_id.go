package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssignRequestID reuses the caller's X-Request-Id or generates one, and
// echoes it on the response.
func AssignRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
