// Package app wires configuration into the stores and services shared by
// the HTTP server and the command-line tools.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"confhub-backend/internal/auth"
	"confhub-backend/internal/config"
	"confhub-backend/internal/database"
	"confhub-backend/internal/email"
	"confhub-backend/internal/events"
	"confhub-backend/internal/newsletter"
	"confhub-backend/internal/repository"
	"confhub-backend/internal/service"
	"confhub-backend/internal/supabase"
)

type App struct {
	Config   *config.Config
	Log      *slog.Logger
	Location *time.Location

	DB         *database.Database
	Store      service.EventStore
	Catalog    *events.Catalog
	Tokens     *auth.JWTManager
	Mailer     *email.EmailSender
	Newsletter *newsletter.Client

	Events        *service.EventService
	Auth          *service.AuthService
	Notifications *service.NotificationService
}

// New connects to Postgres, applies migrations and builds every service.
// Users, bookmarks and notifications always live in Postgres; events come
// from the configured store.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	db, err := database.NewConnection(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	a, err := build(cfg, log, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

func build(cfg *config.Config, log *slog.Logger, db *database.Database) (*App, error) {
	catalog := events.DefaultCatalog()
	if cfg.Catalog.Path != "" {
		c, err := events.LoadCatalog(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		catalog = c
	}

	store := newStore(cfg, log, db)
	loc := cfg.Location()

	bookmarks := repository.NewBookmarkRepository(db.Pool)
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTExpiry)
	mailer := email.NewEmailSender(cfg.SMTP, log)

	a := &App{
		Config:   cfg,
		Log:      log,
		Location: loc,
		DB:       db,
		Store:    store,
		Catalog:  catalog,
		Tokens:   tokens,
		Mailer:   mailer,
		Events:   service.NewEventService(log, store, bookmarks, loc),
		Auth: service.NewAuthService(log,
			repository.NewUserRepository(db.Pool),
			repository.NewSignInCodeRepository(db.Pool),
			mailer, tokens, cfg.Auth.CodeTTL, cfg.Auth.CodeLength,
		),
	}

	var reminderMailer *email.EmailSender
	if cfg.Reminder.SendEmail {
		reminderMailer = mailer
	}
	a.Notifications = newNotificationService(log, db, bookmarks, store, reminderMailer, loc)

	if cfg.Newsletter.Endpoint != "" {
		nc, err := newsletter.NewClient(cfg.Newsletter, &http.Client{Timeout: cfg.Newsletter.Timeout})
		if err != nil {
			return nil, err
		}
		a.Newsletter = nc
	}
	return a, nil
}

func newStore(cfg *config.Config, log *slog.Logger, db *database.Database) service.EventStore {
	if cfg.UsesSupabaseStore() {
		log.Info("using supabase event store", slog.String("url", cfg.Supabase.URL))
		return supabase.NewClient(cfg.Supabase, supabase.WithLogger(log))
	}
	return repository.NewEventRepository(db.Pool)
}

// newNotificationService keeps a nil mailer a nil interface so reminders
// are stored without being emailed.
func newNotificationService(log *slog.Logger, db *database.Database, bookmarks *repository.BookmarkRepository, store service.EventStore, mailer *email.EmailSender, loc *time.Location) *service.NotificationService {
	notifications := repository.NewNotificationRepository(db.Pool)
	if mailer == nil {
		return service.NewNotificationService(log, notifications, bookmarks, store, nil, loc)
	}
	return service.NewNotificationService(log, notifications, bookmarks, store, mailer, loc)
}

// Seeder builds a seeder over the configured store and catalog. opts are
// applied after the location option.
func (a *App) Seeder(opts ...events.NormalizerOption) *service.Seeder {
	opts = append([]events.NormalizerOption{events.WithLocation(a.Location)}, opts...)
	n := events.NewNormalizer(a.Log, a.Catalog, opts...)
	return service.NewSeeder(a.Log, a.Store, n, a.Config.Catalog.BatchSize, a.Config.Catalog.BatchPause)
}

// StoreName names the active event store for logs and CLI output.
func (a *App) StoreName() string {
	return strings.ToLower(a.Config.Store.Backend)
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Describe is a one-line summary of the wiring, used at startup.
func (a *App) Describe() string {
	return fmt.Sprintf("store=%s timezone=%s reminders=%t", a.StoreName(), a.Location, a.Config.Reminder.Enabled)
}
