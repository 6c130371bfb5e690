package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) ToggleBookmark(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid event ID")
		return
	}

	on, err := s.events.ToggleBookmark(c.Request.Context(), viewerID(c), eventID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event_id": eventID, "bookmarked": on})
}

func (s *Server) GetBookmarks(c *gin.Context) {
	list, err := s.events.ListBookmarked(c.Request.Context(), viewerID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": list, "total": len(list)})
}

func (s *Server) GetNotifications(c *gin.Context) {
	list, err := s.notifications.List(c.Request.Context(), viewerID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	unread := 0
	for _, n := range list {
		if !n.IsRead {
			unread++
		}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list, "unread": unread})
}

func (s *Server) MarkNotificationRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid notification ID")
		return
	}

	if err := s.notifications.MarkRead(c.Request.Context(), viewerID(c), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "read": true})
}
