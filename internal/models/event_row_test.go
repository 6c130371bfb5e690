package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRow_ToEvent(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	name := "Las Vegas"
	row := EventRow{
		ID:           id.String(),
		Title:        "AWS re:Invent",
		StartDate:    "2025-12-01T00:00:00Z",
		EndDate:      "2025-12-05",
		LocationName: &name,
		Tags:         []string{"conference", "tech"},
	}

	e, err := row.ToEvent()
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), e.StartDate)
	assert.Equal(t, time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC), e.EndDate)
	assert.Equal(t, []Tag{TagConference, TagTech}, e.Tags)
	require.NotNil(t, e.Location)
	assert.Equal(t, "Las Vegas", e.Location.Name)
	assert.Empty(t, e.Location.Address)
	assert.Empty(t, e.ImageURL)
}

func TestEventRow_ToEvent_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  EventRow
	}{
		{name: "bad id", row: EventRow{ID: "nope", StartDate: "2025-01-01"}},
		{name: "bad start", row: EventRow{ID: uuid.NewString(), StartDate: "01/02/2025"}},
		{name: "bad end", row: EventRow{ID: uuid.NewString(), StartDate: "2025-01-01", EndDate: "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.row.ToEvent()
			assert.Error(t, err)
		})
	}
}

func TestNewEventRow_RoundTrip(t *testing.T) {
	t.Parallel()

	e := Event{
		ID:        uuid.New(),
		Title:     "Snowflake Summit",
		StartDate: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC),
		Location:  &Location{Name: "San Francisco", Address: "San Francisco"},
		Tags:      []Tag{TagConference, TagData},
		ImageURL:  "https://images.example/x.jpg",
	}
	row := NewEventRow(e)
	assert.Nil(t, row.Organizer)
	assert.Nil(t, row.WebsiteURL)
	assert.Equal(t, "2025-06-02T00:00:00Z", row.StartDate)

	back, err := row.ToEvent()
	require.NoError(t, err)
	assert.Equal(t, e, back)
}
