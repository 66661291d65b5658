package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/store"
)

// MockBatchStore is an in-memory store.BatchStore.
type MockBatchStore struct {
	mu      sync.Mutex
	batches map[uuid.UUID][]*domain.LandmarkBatch

	CreateFn        func(ctx context.Context, batch *domain.LandmarkBatch) error
	ListBySessionFn func(ctx context.Context, sessionID uuid.UUID) ([]*domain.LandmarkBatch, error)
}

// NewMockBatchStore creates an empty MockBatchStore.
func NewMockBatchStore() *MockBatchStore {
	return &MockBatchStore{batches: make(map[uuid.UUID][]*domain.LandmarkBatch)}
}

var _ store.BatchStore = (*MockBatchStore)(nil)

// Create implements store.BatchStore.Create
func (m *MockBatchStore) Create(ctx context.Context, batch *domain.LandmarkBatch) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, batch)
	}
	if err := batch.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *batch
	m.batches[batch.SessionID] = append(m.batches[batch.SessionID], &copied)
	return nil
}

// ListBySession implements store.BatchStore.ListBySession
func (m *MockBatchStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.LandmarkBatch, error) {
	if m.ListBySessionFn != nil {
		return m.ListBySessionFn(ctx, sessionID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.LandmarkBatch, 0, len(m.batches[sessionID]))
	for _, b := range m.batches[sessionID] {
		copied := *b
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// DeleteSession removes every batch of a session, mirroring the cascade
// on session deletion.
func (m *MockBatchStore) DeleteSession(sessionID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.batches, sessionID)
}
