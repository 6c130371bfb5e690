package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"confhub-backend/internal/database"
	"confhub-backend/internal/models"
)

type BookmarkRepository struct {
	q database.Querier
}

func NewBookmarkRepository(q database.Querier) *BookmarkRepository {
	return &BookmarkRepository{q: q}
}

// Toggle removes the bookmark when present and creates it otherwise.
// It returns whether the event is bookmarked afterwards.
func (r *BookmarkRepository) Toggle(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	key := fmt.Sprintf("%s/%s", userID, eventID)

	sql, args, err := database.Builder().
		Delete("bookmarks").
		Where(squirrel.Eq{"user_id": userID, "event_id": eventID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete bookmark: %w", err)
	}
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return false, database.MapError(err, "bookmark", key)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	sql, args, err = database.Builder().
		Insert("bookmarks").
		Columns("user_id", "event_id").
		Values(userID, eventID).
		Suffix("ON CONFLICT (user_id, event_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert bookmark: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return false, database.MapError(err, "bookmark", key)
	}
	return true, nil
}

// EventIDs returns the ids of events the user bookmarked, newest first.
func (r *BookmarkRepository) EventIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	sql, args, err := database.Builder().
		Select("event_id").
		From("bookmarks").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookmarks: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, database.MapError(err, "bookmarks", userID)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, database.MapError(err, "bookmarks", userID)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, database.MapError(err, "bookmarks", userID)
	}
	return ids, nil
}

// ListAll returns every bookmark joined with its owner's email.
func (r *BookmarkRepository) ListAll(ctx context.Context) ([]models.Bookmark, error) {
	sql, args, err := database.Builder().
		Select("b.user_id", "b.event_id", "b.created_at", "u.email").
		From("bookmarks b").
		Join("users u ON u.id = b.user_id").
		OrderBy("b.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list all bookmarks: %w", err)
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, database.MapError(err, "bookmarks", "all")
	}
	defer rows.Close()

	var out []models.Bookmark
	for rows.Next() {
		var b models.Bookmark
		if err := rows.Scan(&b.UserID, &b.EventID, &b.CreatedAt, &b.UserEmail); err != nil {
			return nil, database.MapError(err, "bookmarks", "all")
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, database.MapError(err, "bookmarks", "all")
	}
	return out, nil
}
