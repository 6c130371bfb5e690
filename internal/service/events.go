package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"confhub-backend/internal/events"
	"confhub-backend/internal/models"
)

type EventService struct {
	store     EventStore
	bookmarks bookmarkRepo
	loc       *time.Location
	now       func() time.Time
	log       *slog.Logger
}

func NewEventService(log *slog.Logger, store EventStore, bookmarks bookmarkRepo, loc *time.Location) *EventService {
	if loc == nil {
		loc = time.UTC
	}
	return &EventService{
		store:     store,
		bookmarks: bookmarks,
		loc:       loc,
		now:       time.Now,
		log:       log.With("service", "events"),
	}
}

type BrowseResult struct {
	Groups      []EventGroup `json:"groups"`
	Total       int          `json:"total"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// Browse filters and groups all events for the viewer. userID may be
// uuid.Nil for anonymous viewers. One instant is captured and used for both
// the timeframe filter and every countdown.
func (s *EventService) Browse(ctx context.Context, userID uuid.UUID, cfg events.FilterConfig) (*BrowseResult, error) {
	all, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	groups := events.View(all, cfg, now)

	res := &BrowseResult{Groups: make([]EventGroup, 0, len(groups)), GeneratedAt: now}
	for _, g := range groups {
		views := s.withCountdown(g.Events, now)
		res.Total += len(views)
		res.Groups = append(res.Groups, EventGroup{Key: g.Key, Events: views})
	}
	return res, nil
}

type CalendarDayView struct {
	Date     string      `json:"date"`
	InPeriod bool        `json:"in_period"`
	IsToday  bool        `json:"is_today"`
	Events   []EventView `json:"events"`
}

type CalendarResult struct {
	Mode   events.CalendarMode `json:"mode"`
	Label  string              `json:"label"`
	Anchor string              `json:"anchor"`
	Prev   string              `json:"prev"`
	Next   string              `json:"next"`
	Days   []CalendarDayView   `json:"days"`
}

const dayLayout = "2006-01-02"

// Calendar buckets events into the days of the period around anchor.
// Tag and search filters apply; the timeframe filter does not.
func (s *EventService) Calendar(ctx context.Context, userID uuid.UUID, cfg events.FilterConfig, anchor time.Time, mode events.CalendarMode) (*CalendarResult, error) {
	all, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	if anchor.IsZero() {
		anchor = now
	}
	y, m, d := anchor.Date()
	anchor = time.Date(y, m, d, 0, 0, 0, 0, s.loc)

	cfg.Timeframe = events.TimeframeAll
	filtered := events.Filter(all, cfg, now)

	days := events.Calendar(filtered, anchor, mode, now)
	res := &CalendarResult{
		Mode:   mode,
		Label:  events.PeriodLabel(anchor, mode),
		Anchor: anchor.Format(dayLayout),
		Prev:   events.ShiftPeriod(anchor, mode, -1).Format(dayLayout),
		Next:   events.ShiftPeriod(anchor, mode, 1).Format(dayLayout),
		Days:   make([]CalendarDayView, len(days)),
	}
	for i, day := range days {
		res.Days[i] = CalendarDayView{
			Date:     day.Date.Format(dayLayout),
			InPeriod: day.InPeriod,
			IsToday:  day.IsToday,
			Events:   s.withCountdown(day.Events, now),
		}
	}
	return res, nil
}

// Map returns the filtered events that have an address to pin.
func (s *EventService) Map(ctx context.Context, userID uuid.UUID, cfg events.FilterConfig) ([]EventView, error) {
	all, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now().In(s.loc)
	return s.withCountdown(events.Locatable(events.Filter(all, cfg, now)), now), nil
}

// Export returns the filtered events without grouping or viewer state.
func (s *EventService) Export(ctx context.Context, cfg events.FilterConfig) ([]models.Event, error) {
	all, err := s.load(ctx, uuid.Nil)
	if err != nil {
		return nil, err
	}
	return events.Filter(all, cfg, s.now().In(s.loc)), nil
}

func (s *EventService) Get(ctx context.Context, userID, id uuid.UUID) (*EventView, error) {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.toLocal(e)

	if userID != uuid.Nil {
		ids, err := s.bookmarks.EventIDs(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load bookmarks: %w", err)
		}
		for _, b := range ids {
			if b == e.ID {
				e.IsBookmarked = true
				break
			}
		}
	}

	now := s.now().In(s.loc)
	return &EventView{Event: *e, Countdown: events.Classify(now, e.StartDate)}, nil
}

// ToggleBookmark flips the viewer's bookmark on an existing event and
// returns the new state.
func (s *EventService) ToggleBookmark(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, models.ErrUnauthorized
	}
	if _, err := s.store.GetByID(ctx, eventID); err != nil {
		return false, err
	}

	on, err := s.bookmarks.Toggle(ctx, userID, eventID)
	if err != nil {
		return false, err
	}
	s.log.InfoContext(ctx, "bookmark toggled",
		slog.String("user_id", userID.String()),
		slog.String("event_id", eventID.String()),
		slog.Bool("bookmarked", on),
	)
	return on, nil
}

// ListBookmarked returns the viewer's bookmarked events in start order.
func (s *EventService) ListBookmarked(ctx context.Context, userID uuid.UUID) ([]EventView, error) {
	if userID == uuid.Nil {
		return nil, models.ErrUnauthorized
	}
	all, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	marked := make([]models.Event, 0)
	for _, e := range all {
		if e.IsBookmarked {
			marked = append(marked, e)
		}
	}
	return s.withCountdown(marked, s.now().In(s.loc)), nil
}

// load fetches all events, converts them to the display zone and marks the
// viewer's bookmarks.
func (s *EventService) load(ctx context.Context, userID uuid.UUID) ([]models.Event, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	var marked map[uuid.UUID]bool
	if userID != uuid.Nil {
		ids, err := s.bookmarks.EventIDs(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load bookmarks: %w", err)
		}
		marked = make(map[uuid.UUID]bool, len(ids))
		for _, id := range ids {
			marked[id] = true
		}
	}

	for i := range all {
		s.toLocal(&all[i])
		all[i].IsBookmarked = marked[all[i].ID]
	}
	return all, nil
}

func (s *EventService) toLocal(e *models.Event) {
	e.StartDate = e.StartDate.In(s.loc)
	e.EndDate = e.EndDate.In(s.loc)
}

func (s *EventService) withCountdown(list []models.Event, now time.Time) []EventView {
	out := make([]EventView, len(list))
	for i, e := range list {
		out[i] = EventView{Event: e, Countdown: events.Classify(now, e.StartDate)}
	}
	return out
}
