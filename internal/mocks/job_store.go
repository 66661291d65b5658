package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/store"
)

// MockJobStore is an in-memory store.JobStore.
type MockJobStore struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*domain.Job

	CreateFn           func(ctx context.Context, job *domain.Job) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	ClaimNextPendingFn func(ctx context.Context) (*domain.Job, error)
	MarkCompletedFn    func(ctx context.Context, id uuid.UUID) error
	MarkFailedFn       func(ctx context.Context, id uuid.UUID, errorMessage string) error

	claimCalls int
	mutations  []string
}

// NewMockJobStore creates an empty MockJobStore.
func NewMockJobStore() *MockJobStore {
	return &MockJobStore{jobs: make(map[uuid.UUID]*domain.Job)}
}

var _ store.JobStore = (*MockJobStore)(nil)

// Create implements store.JobStore.Create
func (m *MockJobStore) Create(ctx context.Context, job *domain.Job) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, job)
	}
	if err := job.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[job.ID]; ok {
		return store.ErrDuplicate
	}
	copied := *job
	m.jobs[job.ID] = &copied
	return nil
}

// GetByID implements store.JobStore.GetByID
func (m *MockJobStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, store.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

// ClaimNextPending implements store.JobStore.ClaimNextPending.
// The oldest pending job is claimed under the store mutex.
func (m *MockJobStore) ClaimNextPending(ctx context.Context) (*domain.Job, error) {
	m.mu.Lock()
	m.claimCalls++
	m.mu.Unlock()

	if m.ClaimNextPendingFn != nil {
		return m.ClaimNextPendingFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var pending []*domain.Job
	for _, job := range m.jobs {
		if job.Status == domain.JobStatusPending {
			pending = append(pending, job)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	sort.Slice(pending, func(i, j int) bool {
		if pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].ID.String() < pending[j].ID.String()
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})

	claimed := pending[0]
	claimed.Status = domain.JobStatusProcessing
	claimed.UpdatedAt = time.Now().UTC()
	m.mutations = append(m.mutations, "claim:"+claimed.ID.String())

	copied := *claimed
	return &copied, nil
}

// MarkCompleted implements store.JobStore.MarkCompleted
func (m *MockJobStore) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	m.record("completed:" + id.String())
	if m.MarkCompletedFn != nil {
		return m.MarkCompletedFn(ctx, id)
	}
	return m.finish(id, domain.JobStatusCompleted, "")
}

// MarkFailed implements store.JobStore.MarkFailed
func (m *MockJobStore) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error {
	m.record("failed:" + id.String())
	if m.MarkFailedFn != nil {
		return m.MarkFailedFn(ctx, id, errorMessage)
	}
	return m.finish(id, domain.JobStatusFailed, errorMessage)
}

func (m *MockJobStore) finish(id uuid.UUID, status domain.JobStatus, errorMessage string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return store.ErrJobNotFound
	}
	if job.Status != domain.JobStatusProcessing {
		return store.NewStoreError("job", "mark "+string(status),
			"job is "+string(job.Status)+", not processing", store.ErrUpdateFailed)
	}
	job.Status = status
	job.ErrorMessage = errorMessage
	job.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MockJobStore) record(mutation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutations = append(m.mutations, mutation)
}

// ClaimCalls returns how many times ClaimNextPending was called.
func (m *MockJobStore) ClaimCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.claimCalls
}

// Mutations returns the recorded state changes in call order, formatted as
// "<kind>:<job id>" with kind one of claim, completed or failed.
func (m *MockJobStore) Mutations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.mutations))
	copy(out, m.mutations)
	return out
}
