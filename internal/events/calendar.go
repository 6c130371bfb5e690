package events

import (
	"fmt"
	"strings"
	"time"

	"confhub-backend/internal/models"
)

type CalendarMode string

const (
	CalendarMonth   CalendarMode = "month"
	CalendarQuarter CalendarMode = "quarter"
)

func ParseCalendarMode(s string) (CalendarMode, error) {
	switch m := CalendarMode(strings.ToLower(strings.TrimSpace(s))); m {
	case CalendarMonth, CalendarQuarter:
		return m, nil
	case "":
		return CalendarMonth, nil
	default:
		return "", models.NewValidationError("mode", fmt.Sprintf("unknown calendar mode %q", s))
	}
}

// CalendarDay is one cell of a calendar page.
type CalendarDay struct {
	Date     time.Time      `json:"date"`
	InPeriod bool           `json:"in_period"`
	IsToday  bool           `json:"is_today"`
	Events   []models.Event `json:"events"`
}

// CalendarRange returns the first and last day shown for the period holding
// anchor. Month pages are padded to whole Sunday-first weeks.
func CalendarRange(anchor time.Time, mode CalendarMode) (time.Time, time.Time) {
	first, last := periodBounds(anchor, mode)
	if mode == CalendarQuarter {
		return first, last
	}
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))
	return start, end
}

func periodBounds(anchor time.Time, mode CalendarMode) (time.Time, time.Time) {
	y, m, _ := anchor.Date()
	loc := anchor.Location()
	if mode == CalendarQuarter {
		qm := time.Month((quarterOf(anchor)-1)*3 + 1)
		first := time.Date(y, qm, 1, 0, 0, 0, 0, loc)
		return first, first.AddDate(0, 3, -1)
	}
	first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	return first, first.AddDate(0, 1, -1)
}

// ShiftPeriod moves anchor by delta months or quarters.
func ShiftPeriod(anchor time.Time, mode CalendarMode, delta int) time.Time {
	y, m, _ := anchor.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, anchor.Location())
	if mode == CalendarQuarter {
		return first.AddDate(0, 3*delta, 0)
	}
	return first.AddDate(0, delta, 0)
}

func PeriodLabel(anchor time.Time, mode CalendarMode) string {
	if mode == CalendarQuarter {
		return GroupKey(anchor, GroupQuarter)
	}
	return GroupKey(anchor, GroupMonth)
}

// Calendar lays events out over the days of the period holding anchor.
func Calendar(events []models.Event, anchor time.Time, mode CalendarMode, now time.Time) []CalendarDay {
	start, end := CalendarRange(anchor, mode)
	first, last := periodBounds(anchor, mode)

	var days []CalendarDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, CalendarDay{
			Date:     d,
			InPeriod: !d.Before(first) && !d.After(last),
			IsToday:  sameDay(d, now.In(d.Location())),
			Events:   EventsOnDay(events, d),
		})
	}
	return days
}

// EventsOnDay returns events whose span covers day or that start or end on it.
func EventsOnDay(events []models.Event, day time.Time) []models.Event {
	var out []models.Event
	for _, ev := range events {
		start := ev.StartDate.In(day.Location())
		end := ev.EndDate.In(day.Location())
		if (!start.After(day) && !end.Before(day)) || sameDay(start, day) || sameDay(end, day) {
			out = append(out, ev)
		}
	}
	return out
}

// Locatable keeps events that carry an address for map display.
func Locatable(events []models.Event) []models.Event {
	var out []models.Event
	for _, ev := range events {
		if ev.Location != nil && ev.Location.Address != "" {
			out = append(out, ev)
		}
	}
	return out
}
