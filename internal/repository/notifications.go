package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"confhub-backend/internal/database"
	"confhub-backend/internal/models"
)

var notificationColumns = []string{"id", "user_id", "event_id", "type", "message", "is_read", "created_at"}

type NotificationRepository struct {
	q database.Querier
}

func NewNotificationRepository(q database.Querier) *NotificationRepository {
	return &NotificationRepository{q: q}
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	sql, args, err := database.Builder().
		Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notifications: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, database.MapError(err, "notifications", userID)
	}
	defer rows.Close()

	out := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.EventID, &n.Type, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, database.MapError(err, "notifications", userID)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, database.MapError(err, "notifications", userID)
	}
	return out, nil
}

// MarkRead flags one of the user's notifications as read. Notifications
// belonging to someone else report ErrNotFound.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	sql, args, err := database.Builder().
		Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark read: %w", err)
	}

	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return database.MapError(err, "notification", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// CreateIfAbsent inserts n unless a notification of the same type already
// exists for the user and event. It reports whether a row was created and
// fills n's id and timestamp when it was.
func (r *NotificationRepository) CreateIfAbsent(ctx context.Context, n *models.Notification) (bool, error) {
	sql, args, err := database.Builder().
		Insert("notifications").
		Columns("user_id", "event_id", "type", "message").
		Values(n.UserID, n.EventID, n.Type, n.Message).
		Suffix("ON CONFLICT (user_id, event_id, type) DO NOTHING RETURNING id, created_at").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert notification: %w", err)
	}

	err = r.q.QueryRow(ctx, sql, args...).Scan(&n.ID, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, database.MapError(err, "notification", n.EventID)
	}
	return true, nil
}
