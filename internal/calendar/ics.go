// Package calendar renders events as an iCalendar feed.
package calendar

import (
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"confhub-backend/internal/models"
)

const productID = "-//ConfHub//Conference Calendar//EN"

// Build returns a PUBLISH calendar with one all-day VEVENT per event.
// DTEND is exclusive, so it is the day after the last event day.
func Build(events []models.Event, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName("ConfHub conferences")

	for _, e := range events {
		ve := cal.AddEvent(e.ID.String() + "@confhub")
		ve.SetDtStampTime(stamp.UTC())
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if loc := locationText(e.Location); loc != "" {
			ve.SetLocation(loc)
		}
		if e.WebsiteURL != "" {
			ve.SetURL(e.WebsiteURL)
		}
		if len(e.Tags) > 0 {
			ve.SetProperty(ical.ComponentPropertyCategories, joinTags(e.Tags))
		}
		if e.Organizer != "" {
			ve.SetProperty(ical.ComponentPropertyComment, "Organized by "+e.Organizer)
		}

		start := dateOnly(e.StartDate)
		end := dateOnly(e.EndDate)
		if end.Before(start) {
			end = start
		}
		ve.SetAllDayStartAt(start)
		ve.SetAllDayEndAt(end.AddDate(0, 0, 1))
	}
	return cal
}

// Write serializes the calendar for events to w.
func Write(w io.Writer, events []models.Event, stamp time.Time) error {
	_, err := io.WriteString(w, Build(events, stamp).Serialize())
	return err
}

func joinTags(tags []models.Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func locationText(l *models.Location) string {
	if l == nil {
		return ""
	}
	if l.Address != "" {
		return l.Address
	}
	return l.Name
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
