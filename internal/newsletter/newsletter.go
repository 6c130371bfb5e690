// Package newsletter submits signups to the hosted waitlist service.
package newsletter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"confhub-backend/internal/config"
	"confhub-backend/internal/models"
)

type Client struct {
	endpoint   string
	waitlistID int
	http       *http.Client
}

type signupRequest struct {
	Email      string `json:"email"`
	WaitlistID int    `json:"waitlist_id"`
	Consent    bool   `json:"consent"`
}

// SignupError is returned when the waitlist service answers with a
// non-2xx status.
type SignupError struct {
	StatusCode int
	Body       string
}

func (e *SignupError) Error() string {
	return fmt.Sprintf("waitlist signup failed (status %d): %s", e.StatusCode, e.Body)
}

func NewClient(cfg config.NewsletterConfig, h *http.Client) (*Client, error) {
	id, err := strconv.Atoi(cfg.WaitlistID)
	if err != nil {
		return nil, fmt.Errorf("newsletter waitlist id %q: %w", cfg.WaitlistID, err)
	}
	if h == nil {
		h = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{endpoint: cfg.Endpoint, waitlistID: id, http: h}, nil
}

// Subscribe adds email to the waitlist. Consent is mandatory.
func (c *Client) Subscribe(ctx context.Context, email string, consent bool) error {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return models.NewValidationError("email", "must be a valid email address")
	}
	if !consent {
		return models.NewValidationError("consent", "consent is required to subscribe")
	}

	body, err := json.Marshal(signupRequest{Email: email, WaitlistID: c.waitlistID, Consent: true})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("waitlist signup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &SignupError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return nil
}
