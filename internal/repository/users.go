package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"confhub-backend/internal/database"
	"confhub-backend/internal/models"
)

type UserRepository struct {
	q database.Querier
}

func NewUserRepository(q database.Querier) *UserRepository {
	return &UserRepository{q: q}
}

// UpsertByEmail returns the user with the given email, creating it on first
// sign-in. Emails are stored lowercased.
func (r *UserRepository) UpsertByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	sql, args, err := database.Builder().
		Insert("users").
		Columns("email").
		Values(email).
		Suffix("ON CONFLICT (email) DO UPDATE SET updated_at = NOW() RETURNING id, email, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert user: %w", err)
	}

	var u models.User
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, database.MapError(err, "user", email)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	sql, args, err := database.Builder().
		Select("id", "email", "created_at", "updated_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user: %w", err)
	}

	var u models.User
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, database.MapError(err, "user", id)
	}
	return &u, nil
}

type SignInCodeRepository struct {
	q database.Querier
}

func NewSignInCodeRepository(q database.Querier) *SignInCodeRepository {
	return &SignInCodeRepository{q: q}
}

// Replace stores a new code for the email and drops any older ones in the
// same statement.
func (r *SignInCodeRepository) Replace(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	sql, args, err := database.Builder().
		Insert("sign_in_codes").
		Prefix("WITH removed AS (DELETE FROM sign_in_codes WHERE email = ?)", email).
		Columns("email", "code_hash", "expires_at").
		Values(email, codeHash, expiresAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build replace code: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return database.MapError(err, "sign_in_code", email)
	}
	return nil
}

// Latest returns the most recent code issued for the email.
func (r *SignInCodeRepository) Latest(ctx context.Context, email string) (*models.SignInCode, error) {
	sql, args, err := database.Builder().
		Select("id", "email", "code_hash", "expires_at", "created_at").
		From("sign_in_codes").
		Where(squirrel.Eq{"email": email}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest code: %w", err)
	}

	var c models.SignInCode
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Email, &c.CodeHash, &c.ExpiresAt, &c.CreatedAt); err != nil {
		return nil, database.MapError(err, "sign_in_code", email)
	}
	return &c, nil
}

func (r *SignInCodeRepository) DeleteByEmail(ctx context.Context, email string) error {
	sql, args, err := database.Builder().
		Delete("sign_in_codes").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete codes: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return database.MapError(err, "sign_in_code", email)
	}
	return nil
}

// DeleteExpired purges codes that expired before now.
func (r *SignInCodeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := database.Builder().
		Delete("sign_in_codes").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge codes: %w", err)
	}
	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, database.MapError(err, "sign_in_codes", "expired")
	}
	return tag.RowsAffected(), nil
}
