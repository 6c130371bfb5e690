// Package supabase talks to the hosted Supabase PostgREST API and serves as
// the event store when events live in the hosted project.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"confhub-backend/internal/config"
	"confhub-backend/internal/models"
)

const eventsPath = "/rest/v1/events"

type Client struct {
	baseURL string
	apiKey  string
	schema  string
	http    *http.Client
	log     *slog.Logger
}

type SupabaseError struct {
	StatusCode int
	Message    string
}

func (e *SupabaseError) Error() string {
	return fmt.Sprintf("supabase error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap maps PostgREST statuses onto model sentinels.
func (e *SupabaseError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return models.ErrNotFound
	case http.StatusConflict:
		return models.ErrAlreadyExists
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return models.ErrValidation
	}
	return nil
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient uses the service role key so inserts bypass row level security.
func NewClient(cfg config.SupabaseConfig, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.ServiceRoleKey,
		schema:  cfg.Schema,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     slog.Default(),
	}
	if c.apiKey == "" {
		c.apiKey = cfg.AnonKey
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// List returns all events ordered by start date. Rows that cannot be
// converted are logged and skipped.
func (c *Client) List(ctx context.Context) ([]models.Event, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "start_date.asc")

	var rows []models.EventRow
	if err := c.get(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]models.Event, 0, len(rows))
	for _, r := range rows {
		e, err := r.ToEvent()
		if err != nil {
			c.log.Warn("skipping malformed event row", slog.String("id", r.ID), slog.String("error", err.Error()))
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (c *Client) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id.String())

	var rows []models.EventRow
	if err := c.get(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("event %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("event %s: %w", id, models.ErrNotFound)
	}
	e, err := rows[0].ToEvent()
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) HasAny(ctx context.Context) (bool, error) {
	q := url.Values{}
	q.Set("select", "id")
	q.Set("limit", "1")

	var rows []struct {
		ID string `json:"id"`
	}
	if err := c.get(ctx, q, &rows); err != nil {
		return false, fmt.Errorf("check events: %w", err)
	}
	return len(rows) > 0, nil
}

// InsertBatch posts the events as one JSON array.
func (c *Client) InsertBatch(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([]models.EventRow, len(events))
	for i, e := range events {
		rows[i] = models.NewEventRow(e)
	}
	body, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+eventsPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")
	if c.schema != "" {
		req.Header.Set("Content-Profile", c.schema)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("insert events: %w", readError(resp))
	}
	return nil
}

func (c *Client) get(ctx context.Context, q url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+eventsPath+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)
	if c.schema != "" {
		req.Header.Set("Accept-Profile", c.schema)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
}

func readError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Message string `json:"message"`
		Details string `json:"details"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		msg = body.Message
		if body.Details != "" {
			msg += ": " + body.Details
		}
	}
	return &SupabaseError{StatusCode: resp.StatusCode, Message: msg}
}
