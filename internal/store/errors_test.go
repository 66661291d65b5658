package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrJobNotFound", err: ErrJobNotFound, expected: true},
		{name: "wrapped ErrSessionNotFound", err: fmt.Errorf("load: %w", ErrSessionNotFound), expected: true},
		{name: "ErrResultNotFound", err: ErrResultNotFound, expected: true},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	t.Run("with wrapped error", func(t *testing.T) {
		err := NewStoreError("job", "claim", "query failed", ErrUpdateFailed)
		assert.Equal(t, "claim operation on job failed: query failed: update failed", err.Error())
		assert.True(t, errors.Is(err, ErrUpdateFailed))
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewStoreError("session", "mark_terminal", "bad status", nil)
		assert.Equal(t, "mark_terminal operation on session failed: bad status", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})
}
