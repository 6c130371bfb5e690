package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"confhub-backend/internal/events"
	"confhub-backend/internal/models"
)

type notificationRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	CreateIfAbsent(ctx context.Context, n *models.Notification) (bool, error)
}

type reminderMailer interface {
	SendReminder(ctx context.Context, to, title, message, websiteURL string) error
}

type NotificationService struct {
	notifications notificationRepo
	bookmarks     bookmarkRepo
	store         EventStore
	mailer        reminderMailer
	loc           *time.Location
	log           *slog.Logger
}

// NewNotificationService builds the service. mailer may be nil, in which
// case reminders are stored but never emailed.
func NewNotificationService(log *slog.Logger, notifications notificationRepo, bookmarks bookmarkRepo, store EventStore, mailer reminderMailer, loc *time.Location) *NotificationService {
	if loc == nil {
		loc = time.UTC
	}
	return &NotificationService{
		notifications: notifications,
		bookmarks:     bookmarks,
		store:         store,
		mailer:        mailer,
		loc:           loc,
		log:           log.With("service", "notifications"),
	}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	if userID == uuid.Nil {
		return nil, models.ErrUnauthorized
	}
	return s.notifications.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if userID == uuid.Nil {
		return models.ErrUnauthorized
	}
	return s.notifications.MarkRead(ctx, userID, id)
}

type ReminderReport struct {
	Bookmarks int
	Due       int
	Created   int
	Emailed   int
	Failed    int
}

// ReminderMessage describes how soon an event starts, or returns false when
// the countdown does not warrant a reminder.
func ReminderMessage(title string, cd events.Countdown) (string, bool) {
	switch {
	case cd.Status == events.StatusToday:
		return title + " starts today", true
	case cd.Status == events.StatusUpcoming && cd.Urgency == events.UrgencyImmediate:
		if cd.Days == 1 {
			return title + " starts in 1 day", true
		}
		return fmt.Sprintf("%s starts in %d days", title, cd.Days), true
	}
	return "", false
}

// GenerateReminders creates one reminder per bookmarked event that starts
// today or within the immediate urgency window. Existing reminders are left
// alone, so the job can run any number of times.
func (s *NotificationService) GenerateReminders(ctx context.Context, now time.Time) (ReminderReport, error) {
	var report ReminderReport

	marks, err := s.bookmarks.ListAll(ctx)
	if err != nil {
		return report, fmt.Errorf("list bookmarks: %w", err)
	}
	report.Bookmarks = len(marks)
	if len(marks) == 0 {
		return report, nil
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list events: %w", err)
	}
	byID := make(map[uuid.UUID]models.Event, len(all))
	for _, e := range all {
		byID[e.ID] = e
	}

	now = now.In(s.loc)
	for _, b := range marks {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		e, ok := byID[b.EventID]
		if !ok {
			continue
		}
		msg, due := ReminderMessage(e.Title, events.Classify(now, e.StartDate.In(s.loc)))
		if !due {
			continue
		}
		report.Due++

		n := &models.Notification{UserID: b.UserID, EventID: e.ID, Type: models.NotificationReminder, Message: msg}
		created, err := s.notifications.CreateIfAbsent(ctx, n)
		if err != nil {
			report.Failed++
			s.log.ErrorContext(ctx, "create reminder failed",
				slog.String("user_id", b.UserID.String()),
				slog.String("event_id", e.ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		if !created {
			continue
		}
		report.Created++

		if s.mailer == nil || b.UserEmail == "" {
			continue
		}
		if err := s.mailer.SendReminder(ctx, b.UserEmail, e.Title, msg, e.WebsiteURL); err != nil {
			s.log.WarnContext(ctx, "reminder email failed",
				slog.String("user_id", b.UserID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.Emailed++
	}

	s.log.InfoContext(ctx, "reminders generated",
		slog.Int("bookmarks", report.Bookmarks),
		slog.Int("due", report.Due),
		slog.Int("created", report.Created),
		slog.Int("emailed", report.Emailed),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}
