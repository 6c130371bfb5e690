package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// storage rows carry either full RFC 3339 timestamps or bare dates.
var rowDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseRowDate(s string) (time.Time, error) {
	for _, layout := range rowDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", s)
}

// ToEvent converts a storage row into the canonical Event. A missing end
// date falls back to the start date.
func (r *EventRow) ToEvent() (Event, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return Event{}, fmt.Errorf("event row id %q: %w", r.ID, err)
	}
	start, err := parseRowDate(r.StartDate)
	if err != nil {
		return Event{}, fmt.Errorf("event %s start_date: %w", id, err)
	}
	end := start
	if r.EndDate != "" {
		if end, err = parseRowDate(r.EndDate); err != nil {
			return Event{}, fmt.Errorf("event %s end_date: %w", id, err)
		}
	}

	e := Event{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		StartDate:   start,
		EndDate:     end,
		Organizer:   deref(r.Organizer),
		ImageURL:    deref(r.ImageURL),
		WebsiteURL:  deref(r.WebsiteURL),
		Tags:        make([]Tag, 0, len(r.Tags)),
	}
	for _, t := range r.Tags {
		e.Tags = append(e.Tags, Tag(t))
	}
	if r.LocationName != nil || r.LocationAddress != nil {
		e.Location = &Location{Name: deref(r.LocationName), Address: deref(r.LocationAddress)}
	}
	return e, nil
}

// NewEventRow flattens an Event into its storage shape.
func NewEventRow(e Event) EventRow {
	r := EventRow{
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate.UTC().Format(time.RFC3339),
		EndDate:     e.EndDate.UTC().Format(time.RFC3339),
		Organizer:   ref(e.Organizer),
		ImageURL:    ref(e.ImageURL),
		WebsiteURL:  ref(e.WebsiteURL),
		Tags:        make([]string, 0, len(e.Tags)),
	}
	if e.ID != uuid.Nil {
		r.ID = e.ID.String()
	}
	for _, t := range e.Tags {
		r.Tags = append(r.Tags, string(t))
	}
	if e.Location != nil {
		r.LocationName = ref(e.Location.Name)
		r.LocationAddress = ref(e.Location.Address)
	}
	return r
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
