package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confhub-backend/internal/models"
)

func TestCalendarRange(t *testing.T) {
	t.Parallel()

	start, end := CalendarRange(date(2025, time.March, 14), CalendarMonth)
	assert.Equal(t, date(2025, time.February, 23), start)
	assert.Equal(t, date(2025, time.April, 5), end)

	start, end = CalendarRange(date(2025, time.February, 14), CalendarQuarter)
	assert.Equal(t, date(2025, time.January, 1), start)
	assert.Equal(t, date(2025, time.March, 31), end)

	start, end = CalendarRange(date(2025, time.November, 1), CalendarQuarter)
	assert.Equal(t, date(2025, time.October, 1), start)
	assert.Equal(t, date(2025, time.December, 31), end)
}

func TestCalendar(t *testing.T) {
	t.Parallel()

	multi := ev("Three Day Summit", date(2025, time.March, 3), "")
	multi.EndDate = date(2025, time.March, 5)
	single := ev("One Day", date(2025, time.March, 4), "")
	other := ev("Elsewhere", date(2025, time.May, 4), "")

	days := Calendar([]models.Event{multi, single, other}, date(2025, time.March, 1), CalendarMonth, date(2025, time.March, 4))
	require.Len(t, days, 42)

	assert.False(t, days[0].InPeriod)
	assert.Equal(t, date(2025, time.February, 23), days[0].Date)

	byDay := map[int][]string{}
	for _, d := range days {
		if d.Date.Month() == time.March {
			byDay[d.Date.Day()] = titles(d.Events)
		}
		if d.IsToday {
			assert.Equal(t, date(2025, time.March, 4), d.Date)
		}
	}
	assert.Equal(t, []string{"Three Day Summit"}, byDay[3])
	assert.Equal(t, []string{"Three Day Summit", "One Day"}, byDay[4])
	assert.Equal(t, []string{"Three Day Summit"}, byDay[5])
	assert.Empty(t, byDay[6])
}

func TestEventsOnDay_PartialDayBounds(t *testing.T) {
	t.Parallel()

	e := ev("Evening", time.Date(2025, time.March, 3, 18, 0, 0, 0, time.UTC), "")
	e.EndDate = time.Date(2025, time.March, 3, 21, 0, 0, 0, time.UTC)

	assert.Len(t, EventsOnDay([]models.Event{e}, date(2025, time.March, 3)), 1)
	assert.Empty(t, EventsOnDay([]models.Event{e}, date(2025, time.March, 4)))
}

func TestPeriodNavigation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "March 2025", PeriodLabel(date(2025, time.March, 31), CalendarMonth))
	assert.Equal(t, "Q4 2024", PeriodLabel(date(2024, time.December, 1), CalendarQuarter))
	assert.Equal(t, date(2025, time.February, 1), ShiftPeriod(date(2025, time.January, 31), CalendarMonth, 1))
	assert.Equal(t, date(2024, time.October, 1), ShiftPeriod(date(2025, time.January, 15), CalendarQuarter, -1))

	m, err := ParseCalendarMode("")
	require.NoError(t, err)
	assert.Equal(t, CalendarMonth, m)
	_, err = ParseCalendarMode("week")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestLocatable(t *testing.T) {
	t.Parallel()

	events := []models.Event{
		ev("Has Address", date(2025, time.March, 1), "Austin"),
		ev("No Location", date(2025, time.March, 2), ""),
		{Title: "Name Only", Location: &models.Location{Name: "Somewhere"}},
	}
	assert.Equal(t, []string{"Has Address"}, titles(Locatable(events)))
}
