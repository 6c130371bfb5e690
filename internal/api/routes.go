package api

import (
	"github.com/gin-gonic/gin"

	"confhub-backend/internal/middleware"
)

// SetupRoutes installs the middleware chain and every endpoint on router.
func SetupRoutes(router *gin.Engine, s *Server, origins []string) {
	router.Use(
		middleware.AssignRequestID(),
		middleware.Logger(s.log),
		middleware.Recovery(s.log),
		middleware.CORS(origins),
	)

	optional := middleware.OptionalAuth(s.tokens)
	required := middleware.RequireAuth(s.tokens)

	router.GET("/health", s.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", s.Health)

		events := v1.Group("/events")
		{
			events.GET("", optional, s.GetEvents)
			events.GET("/calendar", optional, s.GetCalendar)
			events.GET("/map", optional, s.GetMap)
			events.GET("/:id", optional, s.GetEvent)
			events.POST("/:id/bookmark", required, s.ToggleBookmark)
		}
		v1.GET("/events.ics", s.ExportICS)

		me := v1.Group("/me", required)
		{
			me.GET("/bookmarks", s.GetBookmarks)
			me.GET("/notifications", s.GetNotifications)
			me.POST("/notifications/:id/read", s.MarkNotificationRead)
		}

		auth := v1.Group("/auth")
		{
			auth.POST("/sign-in", s.SignIn)
			auth.POST("/verify", s.VerifyCode)
		}

		v1.POST("/newsletter", s.SubscribeNewsletter)
	}
}
