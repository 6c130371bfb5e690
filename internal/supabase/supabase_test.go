package supabase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confhub-backend/internal/config"
	"confhub-backend/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(
		config.SupabaseConfig{URL: srv.URL + "/", ServiceRoleKey: "service-key", Schema: "public"},
		WithHTTPClient(srv.Client()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestClient_List(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/events", r.URL.Path)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "start_date.asc", r.URL.Query().Get("order"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "public", r.Header.Get("Accept-Profile"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"id":"`+id.String()+`","title":"AI Week","description":"d","start_date":"2025-03-01T00:00:00+00:00","end_date":"2025-03-03T00:00:00+00:00","location_name":"London","location_address":"ExCeL London","organizer":null,"tags":["conference","ai"],"image_url":null},
			{"id":"broken","title":"Bad","start_date":"2025-03-01"}
		]`)
	})

	got, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "ExCeL London", got[0].Location.Address)
	assert.Equal(t, []models.Tag{"conference", "ai"}, got[0].Tags)
	assert.True(t, got[0].EndDate.Equal(time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)))
}

func TestClient_GetByID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "eq."+id.String() {
			_, _ = io.WriteString(w, `[{"id":"`+id.String()+`","title":"Found","start_date":"2025-03-01"}]`)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	})

	e, err := c.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Found", e.Title)

	_, err = c.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestClient_HasAny(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `[]`)
	})

	ok, err := c.HasAny(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_InsertBatch(t *testing.T) {
	t.Parallel()

	var received []models.EventRow
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))
		assert.Equal(t, "public", r.Header.Get("Content-Profile"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	})

	start := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	err := c.InsertBatch(context.Background(), []models.Event{
		{Title: "One", StartDate: start, EndDate: start, Tags: []models.Tag{"conference"}},
		{Title: "Two", StartDate: start, EndDate: start},
	})
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, "2025-06-02T00:00:00Z", received[0].StartDate)
	assert.Empty(t, received[0].ID)
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"message":"duplicate key value","details":"Key (id) exists"}`)
	})

	err := c.InsertBatch(context.Background(), []models.Event{{Title: "Dup"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAlreadyExists)

	var sErr *SupabaseError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "duplicate key value: Key (id) exists", sErr.Message)
}
