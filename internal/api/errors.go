package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"confhub-backend/internal/models"
	"confhub-backend/internal/newsletter"
)

// respondError maps a service error to a status code and a JSON body.
// Unexpected errors are logged and reported without detail.
func (s *Server) respondError(c *gin.Context, err error) {
	var ve *models.ValidationError
	var se *newsletter.SignupError

	switch {
	case errors.As(err, &ve):
		body := gin.H{"error": ve.Error()}
		if len(ve.Errors) > 1 {
			fields := make(map[string]string, len(ve.Errors))
			for _, fe := range ve.Errors {
				fields[fe.Field] = fe.Message
			}
			body["fields"] = fields
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.As(err, &se):
		s.log.WarnContext(c.Request.Context(), "upstream signup rejected",
			slog.Int("status", se.StatusCode),
			slog.String("body", se.Body),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "signup service rejected the request"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	case errors.Is(err, context.Canceled):
		c.Status(499)
	default:
		_ = c.Error(err)
		s.log.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
