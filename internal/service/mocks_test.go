package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"confhub-backend/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type eventStoreMock struct {
	ListFunc        func(ctx context.Context) ([]models.Event, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*models.Event, error)
	HasAnyFunc      func(ctx context.Context) (bool, error)
	InsertBatchFunc func(ctx context.Context, events []models.Event) error

	mu      sync.Mutex
	batches [][]models.Event
}

func (m *eventStoreMock) List(ctx context.Context) ([]models.Event, error) {
	return m.ListFunc(ctx)
}

func (m *eventStoreMock) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *eventStoreMock) HasAny(ctx context.Context) (bool, error) {
	return m.HasAnyFunc(ctx)
}

func (m *eventStoreMock) InsertBatch(ctx context.Context, events []models.Event) error {
	m.mu.Lock()
	m.batches = append(m.batches, events)
	m.mu.Unlock()
	if m.InsertBatchFunc == nil {
		return nil
	}
	return m.InsertBatchFunc(ctx, events)
}

// staticStore serves a fixed event list.
func staticStore(list ...models.Event) *eventStoreMock {
	return &eventStoreMock{
		ListFunc: func(context.Context) ([]models.Event, error) {
			out := make([]models.Event, len(list))
			copy(out, list)
			return out, nil
		},
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*models.Event, error) {
			for _, e := range list {
				if e.ID == id {
					e := e
					return &e, nil
				}
			}
			return nil, models.ErrNotFound
		},
		HasAnyFunc: func(context.Context) (bool, error) { return len(list) > 0, nil },
	}
}

type bookmarkRepoMock struct {
	ToggleFunc   func(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
	EventIDsFunc func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListAllFunc  func(ctx context.Context) ([]models.Bookmark, error)
}

func (m *bookmarkRepoMock) Toggle(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	return m.ToggleFunc(ctx, userID, eventID)
}

func (m *bookmarkRepoMock) EventIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return m.EventIDsFunc(ctx, userID)
}

func (m *bookmarkRepoMock) ListAll(ctx context.Context) ([]models.Bookmark, error) {
	return m.ListAllFunc(ctx)
}

type userRepoMock struct {
	UpsertByEmailFunc func(ctx context.Context, email string) (*models.User, error)
}

func (m *userRepoMock) UpsertByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.UpsertByEmailFunc(ctx, email)
}

// codeRepoMock keeps codes in memory.
type codeRepoMock struct {
	mu      sync.Mutex
	codes   map[string]*models.SignInCode
	deleted []string
}

func newCodeRepoMock() *codeRepoMock {
	return &codeRepoMock{codes: map[string]*models.SignInCode{}}
}

func (m *codeRepoMock) Replace(_ context.Context, email, hash string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email] = &models.SignInCode{ID: uuid.New(), Email: email, CodeHash: hash, ExpiresAt: exp}
	return nil
}

func (m *codeRepoMock) Latest(_ context.Context, email string) (*models.SignInCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *codeRepoMock) DeleteByEmail(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, email)
	m.deleted = append(m.deleted, email)
	return nil
}

func (m *codeRepoMock) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, c := range m.codes {
		if c.Expired(now) {
			delete(m.codes, k)
			n++
		}
	}
	return n, nil
}

type mailerMock struct {
	mu        sync.Mutex
	codes     map[string]string
	reminders []string
	err       error
}

func (m *mailerMock) SendSignInCode(_ context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codes == nil {
		m.codes = map[string]string{}
	}
	m.codes[to] = code
	return m.err
}

func (m *mailerMock) SendReminder(_ context.Context, to, _, message, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders = append(m.reminders, to+": "+message)
	return m.err
}

type tokenIssuerMock struct{}

func (tokenIssuerMock) Generate(userID uuid.UUID, email string) (string, error) {
	return "token-" + userID.String(), nil
}

// notificationRepoMock enforces the (user, event, type) uniqueness in memory.
type notificationRepoMock struct {
	mu    sync.Mutex
	items []models.Notification
	err   error
}

func (m *notificationRepoMock) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Notification{}
	for _, n := range m.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *notificationRepoMock) MarkRead(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].UserID == userID {
			m.items[i].IsRead = true
			return nil
		}
	}
	return models.ErrNotFound
}

func (m *notificationRepoMock) CreateIfAbsent(_ context.Context, n *models.Notification) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for _, existing := range m.items {
		if existing.UserID == n.UserID && existing.EventID == n.EventID && existing.Type == n.Type {
			return false, nil
		}
	}
	n.ID = uuid.New()
	m.items = append(m.items, *n)
	return true, nil
}
