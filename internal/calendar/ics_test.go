package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confhub-backend/internal/models"
)

func TestWrite_RoundTrip(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	events := []models.Event{
		{
			ID:          id,
			Title:       "AWS re:Invent",
			Description: "Cloud things",
			StartDate:   time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC),
			Location:    &models.Location{Name: "Las Vegas", Address: "Venetian Convention Center Las Vegas NV"},
			Tags:        []models.Tag{"conference", "tech"},
			WebsiteURL:  "https://reinvent.example",
		},
		{
			ID:        uuid.New(),
			Title:     "Single Day",
			StartDate: time.Date(2025, time.March, 3, 18, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, time.March, 3, 21, 0, 0, 0, time.UTC),
			Location:  &models.Location{Name: "London"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, events, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, strings.HasPrefix(buf.String(), "BEGIN:VCALENDAR"))

	cal, err := ical.ParseCalendar(&buf)
	require.NoError(t, err)
	vevents := cal.Events()
	require.Len(t, vevents, 2)

	first := vevents[0]
	assert.Equal(t, id.String()+"@confhub", first.GetProperty(ical.ComponentPropertyUniqueId).Value)
	assert.Equal(t, "AWS re:Invent", first.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "Venetian Convention Center Las Vegas NV", first.GetProperty(ical.ComponentPropertyLocation).Value)
	assert.Equal(t, "https://reinvent.example", first.GetProperty(ical.ComponentPropertyUrl).Value)
	assert.Equal(t, "20251201", first.GetProperty(ical.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20251206", first.GetProperty(ical.ComponentPropertyDtEnd).Value)

	second := vevents[1]
	assert.Equal(t, "London", second.GetProperty(ical.ComponentPropertyLocation).Value)
	assert.Equal(t, "20250303", second.GetProperty(ical.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20250304", second.GetProperty(ical.ComponentPropertyDtEnd).Value)
	assert.Nil(t, second.GetProperty(ical.ComponentPropertyUrl))
	assert.Nil(t, second.GetProperty(ical.ComponentPropertyDescription))
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	cal := Build(nil, time.Now())
	assert.Empty(t, cal.Events())
	assert.Contains(t, cal.Serialize(), "PRODID:"+productID)
}
