package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a viewer who signed in with an emailed code.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SignInCode is a pending one-time code. Only the bcrypt hash is stored.
type SignInCode struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	CodeHash  string    `db:"code_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (c *SignInCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

type SignInRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type NewsletterRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Consent bool   `json:"consent"`
}
