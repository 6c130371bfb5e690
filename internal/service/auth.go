package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"confhub-backend/internal/auth"
	"confhub-backend/internal/models"
)

type userRepo interface {
	UpsertByEmail(ctx context.Context, email string) (*models.User, error)
}

type codeRepo interface {
	Replace(ctx context.Context, email, codeHash string, expiresAt time.Time) error
	Latest(ctx context.Context, email string) (*models.SignInCode, error)
	DeleteByEmail(ctx context.Context, email string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type codeMailer interface {
	SendSignInCode(ctx context.Context, to, code string) error
}

type tokenIssuer interface {
	Generate(userID uuid.UUID, email string) (string, error)
}

type AuthService struct {
	users      userRepo
	codes      codeRepo
	mailer     codeMailer
	tokens     tokenIssuer
	codeTTL    time.Duration
	codeLength int
	now        func() time.Time
	log        *slog.Logger
}

func NewAuthService(log *slog.Logger, users userRepo, codes codeRepo, mailer codeMailer, tokens tokenIssuer, codeTTL time.Duration, codeLength int) *AuthService {
	return &AuthService{
		users:      users,
		codes:      codes,
		mailer:     mailer,
		tokens:     tokens,
		codeTTL:    codeTTL,
		codeLength: codeLength,
		now:        time.Now,
		log:        log.With("service", "auth"),
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", models.NewValidationError("email", "must be a valid email address")
	}
	return email, nil
}

// RequestCode issues a fresh one-time code for email, replacing any earlier
// code, and mails it.
func (s *AuthService) RequestCode(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	code, err := auth.GenerateCode(s.codeLength)
	if err != nil {
		return err
	}
	hash, err := auth.HashCode(code)
	if err != nil {
		return err
	}
	if err := s.codes.Replace(ctx, email, hash, s.now().Add(s.codeTTL)); err != nil {
		return fmt.Errorf("store sign-in code: %w", err)
	}
	if err := s.mailer.SendSignInCode(ctx, email, code); err != nil {
		return fmt.Errorf("send sign-in code: %w", err)
	}

	s.log.InfoContext(ctx, "sign-in code issued", slog.String("email", email))
	return nil
}

// VerifyCode exchanges a valid code for a session token. Wrong, expired or
// missing codes all report ErrUnauthorized.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) (*models.LoginResponse, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	stored, err := s.codes.Latest(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("no pending code: %w", models.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if stored.Expired(s.now()) {
		return nil, fmt.Errorf("code expired: %w", models.ErrUnauthorized)
	}

	ok, err := auth.CheckCode(stored.CodeHash, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.WarnContext(ctx, "sign-in code mismatch", slog.String("email", email))
		return nil, fmt.Errorf("code mismatch: %w", models.ErrUnauthorized)
	}

	if err := s.codes.DeleteByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("consume sign-in code: %w", err)
	}

	user, err := s.users.UpsertByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{User: *user, Token: token}, nil
}

// PurgeExpiredCodes removes codes that can no longer be used.
func (s *AuthService) PurgeExpiredCodes(ctx context.Context) (int64, error) {
	n, err := s.codes.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.InfoContext(ctx, "expired sign-in codes purged", slog.Int64("count", n))
	}
	return n, nil
}
