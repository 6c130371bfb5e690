// Package service holds the application services behind the HTTP handlers
// and command-line tools.
package service

import (
	"context"

	"github.com/google/uuid"

	"confhub-backend/internal/events"
	"confhub-backend/internal/models"
)

// EventStore is the event data source. It is implemented by the Postgres
// repository and by the Supabase client.
type EventStore interface {
	List(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	HasAny(ctx context.Context) (bool, error)
	InsertBatch(ctx context.Context, events []models.Event) error
}

type bookmarkRepo interface {
	Toggle(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
	EventIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListAll(ctx context.Context) ([]models.Bookmark, error)
}

// EventView is an event as shown to a viewer, with its countdown relative
// to the moment the response was built.
type EventView struct {
	models.Event
	Countdown events.Countdown `json:"countdown"`
}

type EventGroup struct {
	Key    string      `json:"key"`
	Events []EventView `json:"events"`
}
