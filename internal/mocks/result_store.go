package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/store"
)

// MockResultStore is an in-memory store.ResultStore keyed by session.
type MockResultStore struct {
	mu      sync.Mutex
	results map[uuid.UUID]*domain.Result

	UpsertFn         func(ctx context.Context, result *domain.Result) error
	GetBySessionFn   func(ctx context.Context, sessionID uuid.UUID) (*domain.Result, error)
	CountBySessionFn func(ctx context.Context, sessionID uuid.UUID) (int, error)

	upsertCalls int
}

// NewMockResultStore creates an empty MockResultStore.
func NewMockResultStore() *MockResultStore {
	return &MockResultStore{results: make(map[uuid.UUID]*domain.Result)}
}

var _ store.ResultStore = (*MockResultStore)(nil)

// Upsert implements store.ResultStore.Upsert
func (m *MockResultStore) Upsert(ctx context.Context, result *domain.Result) error {
	m.mu.Lock()
	m.upsertCalls++
	m.mu.Unlock()

	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, result)
	}
	if err := result.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *result
	m.results[result.SessionID] = &copied
	return nil
}

// GetBySession implements store.ResultStore.GetBySession
func (m *MockResultStore) GetBySession(ctx context.Context, sessionID uuid.UUID) (*domain.Result, error) {
	if m.GetBySessionFn != nil {
		return m.GetBySessionFn(ctx, sessionID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	result, ok := m.results[sessionID]
	if !ok {
		return nil, store.ErrResultNotFound
	}
	copied := *result
	return &copied, nil
}

// CountBySession implements store.ResultStore.CountBySession
func (m *MockResultStore) CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	if m.CountBySessionFn != nil {
		return m.CountBySessionFn(ctx, sessionID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.results[sessionID]; ok {
		return 1, nil
	}
	return 0, nil
}

// UpsertCalls returns how many times Upsert was called.
func (m *MockResultStore) UpsertCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upsertCalls
}
