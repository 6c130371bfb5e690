package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationReminder NotificationType = "reminder"
	NotificationUpdate   NotificationType = "update"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	EventID   uuid.UUID        `json:"event_id" db:"event_id"`
	Type      NotificationType `json:"type" db:"type"`
	Message   string           `json:"message" db:"message"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// Bookmark links a user to an event they saved.
type Bookmark struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	EventID   uuid.UUID `json:"event_id" db:"event_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UserEmail is filled by queries that join users.
	UserEmail string `json:"-" db:"email"`
}
