package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"confhub-backend/internal/auth"
	"confhub-backend/internal/events"
	"confhub-backend/internal/models"
	"confhub-backend/internal/service"
)

type eventService interface {
	Browse(ctx context.Context, userID uuid.UUID, cfg events.FilterConfig) (*service.BrowseResult, error)
	Calendar(ctx context.Context, userID uuid.UUID, cfg events.FilterConfig, anchor time.Time, mode events.CalendarMode) (*service.CalendarResult, error)
	Map(ctx context.Context, userID uuid.UUID, cfg events.FilterConfig) ([]service.EventView, error)
	Export(ctx context.Context, cfg events.FilterConfig) ([]models.Event, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*service.EventView, error)
	ToggleBookmark(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
	ListBookmarked(ctx context.Context, userID uuid.UUID) ([]service.EventView, error)
}

type authService interface {
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (*models.LoginResponse, error)
}

type notificationService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}

type subscriber interface {
	Subscribe(ctx context.Context, email string, consent bool) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type tokenValidator interface {
	Validate(token string) (auth.Claims, error)
}

// Deps are the collaborators the HTTP layer delegates to. Newsletter and
// DB may be nil; the matching endpoints then report unavailable.
type Deps struct {
	Events        eventService
	Auth          authService
	Notifications notificationService
	Newsletter    subscriber
	DB            pinger
	Tokens        tokenValidator
	Location      *time.Location
	Log           *slog.Logger
}

type Server struct {
	events        eventService
	auth          authService
	notifications notificationService
	newsletter    subscriber
	db            pinger
	tokens        tokenValidator
	loc           *time.Location
	now           func() time.Time
	log           *slog.Logger
}

func NewServer(d Deps) *Server {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		events:        d.Events,
		auth:          d.Auth,
		notifications: d.Notifications,
		newsletter:    d.Newsletter,
		db:            d.DB,
		tokens:        d.Tokens,
		loc:           loc,
		now:           time.Now,
		log:           log.With("component", "api"),
	}
}
