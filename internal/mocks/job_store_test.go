package mocks_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/mocks"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockJobStore_ClaimNextPending(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("oldest first", func(t *testing.T) {
		jobs := mocks.NewMockJobStore()
		newer, err := domain.NewJob(uuid.New())
		require.NoError(t, err)
		older, err := domain.NewJob(uuid.New())
		require.NoError(t, err)
		older.CreatedAt = newer.CreatedAt.Add(-time.Minute)
		require.NoError(t, jobs.Create(ctx, newer))
		require.NoError(t, jobs.Create(ctx, older))

		claimed, err := jobs.ClaimNextPending(ctx)
		require.NoError(t, err)
		require.NotNil(t, claimed)
		assert.Equal(t, older.ID, claimed.ID)
		assert.Equal(t, domain.JobStatusProcessing, claimed.Status)
	})

	t.Run("concurrent claimers receive the job once", func(t *testing.T) {
		jobs := mocks.NewMockJobStore()
		job, err := domain.NewJob(uuid.New())
		require.NoError(t, err)
		require.NoError(t, jobs.Create(ctx, job))

		var wg sync.WaitGroup
		var mu sync.Mutex
		winners := 0
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				claimed, err := jobs.ClaimNextPending(ctx)
				assert.NoError(t, err)
				if claimed != nil {
					mu.Lock()
					winners++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, winners)
		assert.Equal(t, 16, jobs.ClaimCalls())
		assert.Equal(t, []string{"claim:" + job.ID.String()}, jobs.Mutations())
	})

	t.Run("terminal transitions require an existing job", func(t *testing.T) {
		jobs := mocks.NewMockJobStore()
		assert.ErrorIs(t, jobs.MarkCompleted(ctx, uuid.New()), store.ErrJobNotFound)
		assert.ErrorIs(t, jobs.MarkFailed(ctx, uuid.New(), "x"), store.ErrJobNotFound)
	})

	t.Run("terminal transitions require a processing job", func(t *testing.T) {
		jobs := mocks.NewMockJobStore()
		job, err := domain.NewJob(uuid.New())
		require.NoError(t, err)
		require.NoError(t, jobs.Create(ctx, job))

		assert.ErrorIs(t, jobs.MarkCompleted(ctx, job.ID), store.ErrUpdateFailed)

		_, err = jobs.ClaimNextPending(ctx)
		require.NoError(t, err)
		require.NoError(t, jobs.MarkFailed(ctx, job.ID, "session not found"))

		err = jobs.MarkCompleted(ctx, job.ID)
		assert.ErrorIs(t, err, store.ErrUpdateFailed)
		assert.NotErrorIs(t, err, store.ErrJobNotFound)

		stored, err := jobs.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusFailed, stored.Status)
		assert.Equal(t, "session not found", stored.ErrorMessage)
	})
}
