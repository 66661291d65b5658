// Package mocks provides centralized test doubles for the storage gateway and
// the scoring client.
//
// The store mocks are in-memory implementations that behave like the
// PostgreSQL stores (ordering, not-found errors, atomic claim). Each method
// can be overridden with its Fn field, and every mutation is recorded so tests
// can assert on what was written:
//
//	jobs := mocks.NewMockJobStore()
//	jobs.ClaimNextPendingFn = func(ctx context.Context) (*domain.Job, error) {
//	    return nil, errors.New("connection reset")
//	}
//
// MockScorer is a testify mock.
package mocks
