// Package repository implements PostgreSQL persistence with squirrel-built
// queries over a database.Querier.
package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"confhub-backend/internal/database"
	"confhub-backend/internal/models"
)

const eventsTable = "events"

var eventColumns = []string{
	"id", "title", "description", "start_date", "end_date",
	"location_name", "location_address", "organizer", "tags", "image_url", "website_url",
}

type scanner interface {
	Scan(dest ...any) error
}

type EventRepository struct {
	q database.Querier
}

func NewEventRepository(q database.Querier) *EventRepository {
	return &EventRepository{q: q}
}

// List returns every event ordered by start date, then title.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	query := database.Builder().
		Select(eventColumns...).
		From(eventsTable).
		OrderBy("start_date ASC", "title ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list events: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, database.MapError(err, "events", "list")
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, database.MapError(err, "events", "list")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, database.MapError(err, "events", "list")
	}
	return out, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	sql, args, err := database.Builder().
		Select(eventColumns...).
		From(eventsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get event: %w", err)
	}

	e, err := scanEvent(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, database.MapError(err, "event", id)
	}
	return &e, nil
}

// HasAny reports whether at least one event is stored.
func (r *EventRepository) HasAny(ctx context.Context) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM events)").Scan(&exists); err != nil {
		return false, database.MapError(err, "events", "exists")
	}
	return exists, nil
}

// InsertBatch writes all events in one multi-row INSERT.
func (r *EventRepository) InsertBatch(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	insert := database.Builder().Insert(eventsTable).Columns(eventColumns...)
	for _, e := range events {
		row := models.NewEventRow(e)
		id := e.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		insert = insert.Values(
			id, e.Title, e.Description, e.StartDate, e.EndDate,
			row.LocationName, row.LocationAddress, row.Organizer, row.Tags, row.ImageURL, row.WebsiteURL,
		)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert events: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return database.MapError(err, "events", fmt.Sprintf("batch of %d", len(events)))
	}
	return nil
}

func scanEvent(s scanner) (models.Event, error) {
	var (
		e                      models.Event
		locName, locAddress    *string
		organizer, image, site *string
		tags                   []string
	)
	if err := s.Scan(
		&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
		&locName, &locAddress, &organizer, &tags, &image, &site,
	); err != nil {
		return models.Event{}, err
	}

	if locName != nil || locAddress != nil {
		e.Location = &models.Location{Name: strOr(locName), Address: strOr(locAddress)}
	}
	e.Organizer = strOr(organizer)
	e.ImageURL = strOr(image)
	e.WebsiteURL = strOr(site)
	e.Tags = make([]models.Tag, 0, len(tags))
	for _, t := range tags {
		e.Tags = append(e.Tags, models.Tag(t))
	}
	return e, nil
}

func strOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
