package models

import (
	"time"

	"github.com/google/uuid"
)

type Tag string

const (
	TagAI         Tag = "ai"
	TagGenAI      Tag = "genai"
	TagData       Tag = "data"
	TagHealth     Tag = "health"
	TagTech       Tag = "tech"
	TagBusiness   Tag = "business"
	TagIndustry   Tag = "industry"
	TagConference Tag = "conference"
	TagOther      Tag = "other"
)

type Location struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Event is the canonical conference record. IsBookmarked is a per-viewer
// decoration and is never persisted.
type Event struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Location     *Location `json:"location,omitempty"`
	Organizer    string    `json:"organizer,omitempty"`
	Tags         []Tag     `json:"tags"`
	ImageURL     string    `json:"image_url,omitempty"`
	WebsiteURL   string    `json:"website_url,omitempty"`
	IsBookmarked bool      `json:"is_bookmarked"`
}

// PrimaryTag returns the first tag, falling back to conference.
func (e *Event) PrimaryTag() Tag {
	if len(e.Tags) == 0 {
		return TagConference
	}
	return e.Tags[0]
}

func (e *Event) HasAnyTag(tags []Tag) bool {
	for _, t := range e.Tags {
		for _, want := range tags {
			if t == want {
				return true
			}
		}
	}
	return false
}

// LocationName returns the location name or an empty string when absent.
func (e *Event) LocationName() string {
	if e.Location == nil {
		return ""
	}
	return e.Location.Name
}

// EventRow is the storage shape of an event as exchanged with the data
// source: dates are ISO-8601 text and location is flattened.
type EventRow struct {
	ID              string   `json:"id,omitempty" db:"id"`
	Title           string   `json:"title" db:"title"`
	Description     string   `json:"description" db:"description"`
	StartDate       string   `json:"start_date" db:"start_date"`
	EndDate         string   `json:"end_date" db:"end_date"`
	LocationName    *string  `json:"location_name" db:"location_name"`
	LocationAddress *string  `json:"location_address" db:"location_address"`
	Organizer       *string  `json:"organizer" db:"organizer"`
	Tags            []string `json:"tags" db:"tags"`
	ImageURL        *string  `json:"image_url" db:"image_url"`
	WebsiteURL      *string  `json:"website_url" db:"website_url"`
}

// RawEventRecord is one line of the seed import table.
type RawEventRecord struct {
	Line      int
	Title     string
	StartDate string
	EndDate   string
}
