package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockGateway groups the in-memory stores.
type MockGateway struct {
	Jobs     *MockJobStore
	Sessions *MockSessionStore
	Batches  *MockBatchStore
	Results  *MockResultStore
}

// NewMockGateway creates a gateway of empty in-memory stores.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		Jobs:     NewMockJobStore(),
		Sessions: NewMockSessionStore(),
		Batches:  NewMockBatchStore(),
		Results:  NewMockResultStore(),
	}
}

// Gateway returns the stores as a store.Gateway.
func (g *MockGateway) Gateway() store.Gateway {
	return store.Gateway{
		Jobs:     g.Jobs,
		Sessions: g.Sessions,
		Batches:  g.Batches,
		Results:  g.Results,
	}
}

// MockScorer is a testify mock of the scoring client.
type MockScorer struct {
	mock.Mock
}

// Score is a mock implementation of the scoring client's Score method
func (m *MockScorer) Score(
	ctx context.Context,
	sessionID uuid.UUID,
	exerciseType string,
	sampleFPS int,
	frames []domain.Frame,
) domain.ScoreResult {
	args := m.Called(ctx, sessionID, exerciseType, sampleFPS, frames)
	if result, ok := args.Get(0).(domain.ScoreResult); ok {
		return result
	}
	return domain.ScoreResult{}
}
