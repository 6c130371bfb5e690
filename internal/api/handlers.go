package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"confhub-backend/internal/calendar"
	"confhub-backend/internal/events"
	"confhub-backend/internal/middleware"
	"confhub-backend/internal/models"
)

const (
	dayLayout   = "2006-01-02"
	icsFilename = "confhub-events.ics"
)

// Health reports liveness and, when a database is configured, its
// reachability.
func (s *Server) Health(c *gin.Context) {
	body := gin.H{"status": "ok", "service": "confhub-backend"}
	if s.db != nil {
		if err := s.db.Ping(c.Request.Context()); err != nil {
			body["status"] = "degraded"
			body["database"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["database"] = "ok"
	}
	c.JSON(http.StatusOK, body)
}

// filterFromQuery reads tags, q, timeframe and group_by. Unknown timeframe
// or grouping values are rejected.
func filterFromQuery(c *gin.Context) (events.FilterConfig, error) {
	var errs []error

	tf, err := events.ParseTimeframe(c.Query("timeframe"))
	errs = append(errs, err)
	gb, err := events.ParseGroupBy(c.Query("group_by"))
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		return events.FilterConfig{}, err
	}

	var tags []models.Tag
	for _, raw := range c.QueryArray("tags") {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				tags = append(tags, models.Tag(t))
			}
		}
	}

	return events.FilterConfig{
		SelectedTags: tags,
		SearchQuery:  c.Query("q"),
		Timeframe:    tf,
		GroupBy:      gb,
	}, nil
}

func viewerID(c *gin.Context) uuid.UUID {
	id, _ := middleware.UserID(c)
	return id
}

func (s *Server) GetEvents(c *gin.Context) {
	cfg, err := filterFromQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	res, err := s.events.Browse(c.Request.Context(), viewerID(c), cfg)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) GetCalendar(c *gin.Context) {
	cfg, err := filterFromQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	mode, err := events.ParseCalendarMode(c.Query("mode"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	var anchor time.Time
	if raw := c.Query("anchor"); raw != "" {
		anchor, err = time.ParseInLocation(dayLayout, raw, s.loc)
		if err != nil {
			badRequest(c, fmt.Sprintf("anchor must be a YYYY-MM-DD date, got %q", raw))
			return
		}
	}

	res, err := s.events.Calendar(c.Request.Context(), viewerID(c), cfg, anchor, mode)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) GetMap(c *gin.Context) {
	cfg, err := filterFromQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	list, err := s.events.Map(c.Request.Context(), viewerID(c), cfg)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": list, "total": len(list)})
}

// ExportICS streams the filtered events as an iCalendar file.
func (s *Server) ExportICS(c *gin.Context) {
	cfg, err := filterFromQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	list, err := s.events.Export(c.Request.Context(), cfg)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, icsFilename))
	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Status(http.StatusOK)
	if err := calendar.Write(c.Writer, list, s.now()); err != nil {
		_ = c.Error(err)
	}
}

func (s *Server) GetEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid event ID")
		return
	}

	ev, err := s.events.Get(c.Request.Context(), viewerID(c), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}
