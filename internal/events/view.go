// Package events holds the pure event logic: countdown classification,
// category tagging, import normalization and the filter/grouping view.
// Apart from loading a catalog file nothing here performs I/O.
package events

import (
	"fmt"
	"strings"
	"time"

	"confhub-backend/internal/models"
)

type Timeframe string

const (
	TimeframeAll      Timeframe = "all"
	TimeframeUpcoming Timeframe = "upcoming"
	TimeframePast     Timeframe = "past"
)

type GroupBy string

const (
	GroupNone    GroupBy = "none"
	GroupMonth   GroupBy = "month"
	GroupQuarter GroupBy = "quarter"
)

// ParseTimeframe reads a timeframe name. An empty value selects upcoming
// events, matching what a fresh browse shows.
func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(strings.ToLower(strings.TrimSpace(s))); tf {
	case TimeframeAll, TimeframeUpcoming, TimeframePast:
		return tf, nil
	case "":
		return TimeframeUpcoming, nil
	default:
		return "", models.NewValidationError("timeframe", fmt.Sprintf("unknown timeframe %q", s))
	}
}

func ParseGroupBy(s string) (GroupBy, error) {
	switch g := GroupBy(strings.ToLower(strings.TrimSpace(s))); g {
	case GroupNone, GroupMonth, GroupQuarter:
		return g, nil
	case "":
		return GroupNone, nil
	default:
		return "", models.NewValidationError("group_by", fmt.Sprintf("unknown grouping %q", s))
	}
}

// FilterConfig is the viewer-selected filtering and grouping state.
type FilterConfig struct {
	SelectedTags []models.Tag
	SearchQuery  string
	Timeframe    Timeframe
	GroupBy      GroupBy
}

// Group is one bucket of the view. Key is empty when grouping is disabled.
type Group struct {
	Key    string         `json:"key"`
	Events []models.Event `json:"events"`
}

// View filters events and buckets them by the configured granularity.
// Groups appear in order of first encounter and events keep their input
// order, so callers pass events sorted by start date. The input slice is
// not modified.
func View(events []models.Event, cfg FilterConfig, now time.Time) []Group {
	filtered := Filter(events, cfg, now)

	if cfg.GroupBy == GroupNone || cfg.GroupBy == "" {
		return []Group{{Key: "", Events: filtered}}
	}

	var groups []Group
	index := make(map[string]int)
	for _, ev := range filtered {
		key := GroupKey(ev.StartDate, cfg.GroupBy)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Events = append(groups[i].Events, ev)
	}
	return groups
}

// Filter returns the events satisfying tag, search and timeframe predicates.
func Filter(events []models.Event, cfg FilterConfig, now time.Time) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if MatchesTags(&ev, cfg.SelectedTags) &&
			MatchesSearch(&ev, cfg.SearchQuery) &&
			matchesTimeframe(&ev, cfg.Timeframe, now) {
			out = append(out, ev)
		}
	}
	return out
}

// MatchesTags reports whether ev carries any selected tag. No selection
// matches everything.
func MatchesTags(ev *models.Event, selected []models.Tag) bool {
	return len(selected) == 0 || ev.HasAnyTag(selected)
}

// MatchesSearch is a case-insensitive substring test over title and
// location name.
func MatchesSearch(ev *models.Event, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(ev.Title), q) ||
		strings.Contains(strings.ToLower(ev.LocationName()), q)
}

// The boundary instant counts as upcoming.
func matchesTimeframe(ev *models.Event, tf Timeframe, now time.Time) bool {
	switch tf {
	case TimeframeUpcoming:
		return !ev.StartDate.Before(now)
	case TimeframePast:
		return ev.StartDate.Before(now)
	default:
		return true
	}
}

// GroupKey labels t with its month ("March 2025") or quarter ("Q1 2025").
func GroupKey(t time.Time, g GroupBy) string {
	switch g {
	case GroupMonth:
		return t.Format("January 2006")
	case GroupQuarter:
		return fmt.Sprintf("Q%d %d", quarterOf(t), t.Year())
	default:
		return ""
	}
}

func quarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}
