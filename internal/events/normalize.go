package events

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"confhub-backend/internal/models"
)

var ErrMalformedDate = errors.New("malformed date")

// RecordError reports a raw record that was dropped during normalization.
type RecordError struct {
	Line  int
	Title string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Title, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Report summarizes one normalization run.
type Report struct {
	Read       int
	Accepted   int
	Empty      int
	Duplicates int
	Rejected   []RecordError
}

// capitalizedPhrase matches a run of capitalized words such as "San Jose".
var capitalizedPhrase = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s[A-Z][a-z]+)*\b`)

const titleDelimiters = "|-"

// Normalizer turns raw import rows into canonical events.
type Normalizer struct {
	log        *slog.Logger
	catalog    *Catalog
	classifier *Classifier
	images     ImagePicker
	loc        *time.Location
	newID      func() uuid.UUID
}

type NormalizerOption func(*Normalizer)

func WithImagePicker(p ImagePicker) NormalizerOption {
	return func(n *Normalizer) { n.images = p }
}

// WithLocation sets the time zone import dates are interpreted in.
func WithLocation(loc *time.Location) NormalizerOption {
	return func(n *Normalizer) { n.loc = loc }
}

func WithIDFunc(fn func() uuid.UUID) NormalizerOption {
	return func(n *Normalizer) { n.newID = fn }
}

func NewNormalizer(log *slog.Logger, c *Catalog, opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		log:        log,
		catalog:    c,
		classifier: NewClassifier(c),
		images:     NewHashPicker(c),
		loc:        time.UTC,
		newID:      uuid.New,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts records into events sorted by start date. Bad records
// are reported and skipped; the batch itself never fails. The first record
// carrying a given title wins.
func (n *Normalizer) Normalize(records []models.RawEventRecord) ([]models.Event, Report) {
	var report Report
	out := make([]models.Event, 0, len(records))
	seen := make(map[string]bool, len(records))

	for _, rec := range records {
		report.Read++

		title := strings.TrimSpace(rec.Title)
		if title == "" {
			report.Empty++
			continue
		}
		if seen[title] {
			report.Duplicates++
			continue
		}
		seen[title] = true

		ev, err := n.normalizeOne(title, rec)
		if err != nil {
			recErr := RecordError{Line: rec.Line, Title: title, Err: err}
			report.Rejected = append(report.Rejected, recErr)
			n.log.Warn("skipping event record",
				slog.Int("line", rec.Line),
				slog.String("title", title),
				slog.String("error", err.Error()),
			)
			continue
		}
		out = append(out, ev)
	}

	slices.SortStableFunc(out, func(a, b models.Event) int {
		return a.StartDate.Compare(b.StartDate)
	})
	report.Accepted = len(out)
	return out, report
}

func (n *Normalizer) normalizeOne(title string, rec models.RawEventRecord) (models.Event, error) {
	start, err := ParseDate(rec.StartDate, n.loc)
	if err != nil {
		return models.Event{}, fmt.Errorf("start date: %w", err)
	}
	end := start
	if strings.TrimSpace(rec.EndDate) != "" {
		end, err = ParseDate(rec.EndDate, n.loc)
		if err != nil {
			return models.Event{}, fmt.Errorf("end date: %w", err)
		}
	}

	clean := CleanTitle(title)
	tags := n.classifier.Classify(title)

	return models.Event{
		ID:          n.newID(),
		Title:       clean,
		Description: n.Describe(clean, tags),
		StartDate:   start,
		EndDate:     end,
		Location:    n.ExtractLocation(title),
		Tags:        tags,
		ImageURL:    n.images.Pick(clean, tags),
	}, nil
}

// ParseDate parses month/day/year text into midnight of that day in loc.
// Out-of-range values such as 02/30/2024 are rejected, not rolled over.
func ParseDate(text string, loc *time.Location) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, text)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, text)
		}
		nums[i] = v
	}
	month, dayOfMonth, year := nums[0], nums[1], nums[2]
	if year <= 0 || month < 1 || month > 12 || dayOfMonth < 1 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, text)
	}

	t := time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, loc)
	if t.Day() != dayOfMonth || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrMalformedDate, text)
	}
	return t, nil
}

// CleanTitle keeps the part of a title before the first pipe or dash.
func CleanTitle(title string) string {
	clean := title
	if i := strings.IndexAny(title, titleDelimiters); i >= 0 {
		clean = title[:i]
	}
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return strings.TrimSpace(title)
	}
	return clean
}

// ExtractLocation looks the title up in the known-location table and falls
// back to the first delimited segment that holds a capitalized phrase. The
// title segment itself is a candidate.
func (n *Normalizer) ExtractLocation(title string) *models.Location {
	for _, loc := range n.catalog.Locations {
		if strings.Contains(title, loc.Name) || strings.Contains(title, strings.ToUpper(loc.Name)) {
			return &models.Location{Name: loc.Name, Address: loc.Address}
		}
	}

	parts := strings.Split(strings.ReplaceAll(title, "-", "|"), "|")
	if len(parts) < 2 {
		return nil
	}
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if capitalizedPhrase.MatchString(segment) {
			return &models.Location{Name: segment, Address: segment}
		}
	}
	return nil
}

// Describe builds the synthetic description for an imported event.
func (n *Normalizer) Describe(title string, tags []models.Tag) string {
	var phrases []string
	for _, t := range tags {
		if t == n.classifier.DefaultTag() {
			continue
		}
		if p, ok := n.catalog.Phrases[t]; ok {
			phrases = append(phrases, p)
		}
	}

	if len(phrases) == 0 {
		return fmt.Sprintf("Join industry leaders and professionals at %s, a premier event. "+
			"Network with peers, learn from experts, and discover the latest innovations in the industry.", title)
	}
	topic := strings.Join(phrases, " and ")
	return fmt.Sprintf("Join industry leaders and professionals at %s, a premier %s conference. "+
		"Network with peers, learn from experts, and discover the latest innovations in %s.", title, topic, topic)
}

// ParseCSV reads the seed table: a header row followed by
// title,start_date[,end_date] rows.
func ParseCSV(r io.Reader) ([]models.RawEventRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var records []models.RawEventRecord
	line := 0
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++
		if line == 1 {
			continue
		}

		rec := models.RawEventRecord{Line: line}
		rec.Title = strings.TrimSpace(fields[0])
		if len(fields) > 1 {
			rec.StartDate = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			rec.EndDate = strings.TrimSpace(fields[2])
		}
		records = append(records, rec)
	}
	return records, nil
}
