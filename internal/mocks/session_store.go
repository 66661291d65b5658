package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/store"
)

// MockSessionStore is an in-memory store.SessionStore.
type MockSessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session

	CreateFn       func(ctx context.Context, session *domain.Session) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	MarkTerminalFn func(ctx context.Context, id uuid.UUID, status domain.SessionStatus) error

	markTerminalCalls int
}

// NewMockSessionStore creates an empty MockSessionStore.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[uuid.UUID]*domain.Session)}
}

var _ store.SessionStore = (*MockSessionStore)(nil)

// Create implements store.SessionStore.Create
func (m *MockSessionStore) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, session)
	}
	if err := session.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

// GetByID implements store.SessionStore.GetByID
func (m *MockSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

// MarkTerminal implements store.SessionStore.MarkTerminal
func (m *MockSessionStore) MarkTerminal(ctx context.Context, id uuid.UUID, status domain.SessionStatus) error {
	m.mu.Lock()
	m.markTerminalCalls++
	m.mu.Unlock()

	if m.MarkTerminalFn != nil {
		return m.MarkTerminalFn(ctx, id, status)
	}
	if !status.IsTerminal() {
		return fmt.Errorf("%w: %w: %q", store.ErrInvalidEntity, domain.ErrNonTerminalStatus, status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return store.ErrSessionNotFound
	}
	session.Status = status
	session.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes a session, as the ingestion side would.
func (m *MockSessionStore) Delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// MarkTerminalCalls returns how many times MarkTerminal was called.
func (m *MockSessionStore) MarkTerminalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.markTerminalCalls
}
