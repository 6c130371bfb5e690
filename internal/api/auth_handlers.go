package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"confhub-backend/internal/models"
)

// SignIn mails a one-time code. The response is the same whether or not
// the address has signed in before.
func (s *Server) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := s.auth.RequestCode(c.Request.Context(), req.Email); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Sign-in code sent"})
}

func (s *Server) VerifyCode(c *gin.Context) {
	var req models.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	res, err := s.auth.VerifyCode(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) SubscribeNewsletter(c *gin.Context) {
	if s.newsletter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "newsletter signup is not configured"})
		return
	}

	var req models.NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := s.newsletter.Subscribe(c.Request.Context(), req.Email, req.Consent); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed"})
}
