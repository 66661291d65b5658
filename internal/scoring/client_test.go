package scoring

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/config"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResponse = `{
	"reps": 12,
	"compensationScore": 0.25,
	"issues": [{"type": "knee_valgus", "severity": "medium", "count": 3}],
	"confidence": 0.92,
	"engine": "pose-v2",
	"engineVersion": "2.1.0"
}`

// fakeScoringServer serves POST /v1/score with the given handler and counts hits.
func fakeScoringServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	r := chi.NewRouter()
	r.Post("/v1/score", func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		handler(w, req)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, &hits
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func newTestClient(t *testing.T, baseURL string, maxRetries int) (*Client, *logger.CaptureHandler) {
	t.Helper()

	log, capture := logger.NewCaptureLogger()
	client, err := NewClient(config.ScoringConfig{
		BaseURL:        baseURL,
		Timeout:        2 * time.Second,
		MaxRetries:     maxRetries,
		RetryBaseDelay: time.Millisecond,
	}, log)
	require.NoError(t, err)
	return client, capture
}

func testFrames(n int) []domain.Frame {
	frames := make([]domain.Frame, n)
	for i := range frames {
		frames[i] = domain.Frame{FrameID: int64(i), Timestamp: float64(i) / 10}
	}
	return frames
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("rejects relative base URL", func(t *testing.T) {
		_, err := NewClient(config.ScoringConfig{BaseURL: "scoring.local"}, nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("rejects negative retries", func(t *testing.T) {
		_, err := NewClient(config.ScoringConfig{BaseURL: "http://scoring.local", MaxRetries: -1}, nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("builds endpoint from base URL", func(t *testing.T) {
		client, err := NewClient(config.ScoringConfig{BaseURL: "http://scoring.local:8000/"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "http://scoring.local:8000/v1/score", client.endpoint)
		assert.Equal(t, defaultRetryBaseDelay, client.retryBaseDelay)
	})
}

func TestClient_Score_Success(t *testing.T) {
	t.Parallel()

	requests := make(chan scoreRequest, 1)
	server, hits := fakeScoringServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req scoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || r.Header.Get("Content-Type") != "application/json" {
			respond(http.StatusBadRequest, "bad request")(w, r)
			return
		}
		requests <- req
		respond(http.StatusOK, validResponse)(w, r)
	})

	log, _ := logger.NewCaptureLogger()
	client, err := NewClient(config.ScoringConfig{
		BaseURL:        server.URL,
		Timeout:        2 * time.Second,
		RetryBaseDelay: time.Millisecond,
		EngineConfig:   map[string]any{"model": "lite"},
	}, log)
	require.NoError(t, err)

	sessionID := uuid.New()
	result := client.Score(context.Background(), sessionID, "squat", 30, testFrames(3))

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 12, result.Reps)
	assert.InDelta(t, 0.25, result.CompensationScore, 1e-9)
	assert.InDelta(t, 0.92, result.Confidence, 1e-9)
	assert.Equal(t, "pose-v2", result.Engine)
	assert.Equal(t, "2.1.0", result.EngineVersion)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, domain.IssueSeverityMedium, result.Issues[0].Severity)
	assert.False(t, IsFallback(result))

	received := <-requests
	assert.Equal(t, sessionID.String(), received.SessionID)
	assert.Equal(t, "squat", received.ExerciseType)
	assert.Equal(t, 30, received.SampleFPS)
	assert.Len(t, received.Frames, 3)
	assert.Equal(t, "lite", received.Config["model"])
}

func TestClient_Score_FallsBack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "server error", handler: respond(http.StatusInternalServerError, `{"error":"boom"}`)},
		{name: "client error", handler: respond(http.StatusBadRequest, `{"error":"bad frames"}`)},
		{name: "empty body", handler: respond(http.StatusOK, "")},
		{name: "malformed JSON", handler: respond(http.StatusOK, `{"reps": "many"`)},
		{name: "negative reps", handler: respond(http.StatusOK, `{"reps": -1, "confidence": 0.9, "engine": "pose-v2"}`)},
		{name: "confidence out of range", handler: respond(http.StatusOK, `{"reps": 3, "confidence": 1.5, "engine": "pose-v2"}`)},
		{name: "missing engine", handler: respond(http.StatusOK, `{"reps": 3, "confidence": 0.9}`)},
		{
			name: "unknown issue severity",
			handler: respond(http.StatusOK,
				`{"reps": 3, "confidence": 0.9, "engine": "pose-v2", "issues": [{"type": "x", "severity": "severe", "count": 1}]}`),
		},
		{name: "null body", handler: respond(http.StatusOK, "null")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := fakeScoringServer(t, tt.handler)
			client, capture := newTestClient(t, server.URL, 0)

			result := client.Score(context.Background(), uuid.New(), "squat", 10, testFrames(25))

			assert.Equal(t, 2, result.Reps)
			assert.Equal(t, FallbackEngine, result.Engine)
			assert.Equal(t, FallbackEngineVersion, result.EngineVersion)
			assert.InDelta(t, FallbackCompensationScore, result.CompensationScore, 1e-9)
			assert.Less(t, result.Confidence, ScoredConfidenceThreshold)
			assert.NotNil(t, result.Issues)
			assert.Empty(t, result.Issues)
			assert.True(t, IsFallback(result))
			assert.Contains(t, capture.Messages("WARN"), "scoring service unavailable, using fallback result")
		})
	}
}

func TestClient_Score_UnreachableService(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, _ := newTestClient(t, baseURL, 0)
	result := client.Score(context.Background(), uuid.New(), "squat", 10, testFrames(12))

	assert.Equal(t, 1, result.Reps)
	assert.Equal(t, FallbackEngine, result.Engine)
	assert.InDelta(t, FallbackConfidence, result.Confidence, 1e-9)
}

func TestClient_Request_Retries(t *testing.T) {
	t.Parallel()

	t.Run("retries transient failures until success", func(t *testing.T) {
		var calls atomic.Int32
		server, hits := fakeScoringServer(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) <= 2 {
				respond(http.StatusServiceUnavailable, "try later")(w, r)
				return
			}
			respond(http.StatusOK, validResponse)(w, r)
		})
		client, _ := newTestClient(t, server.URL, 2)

		outcome := client.request(context.Background(), uuid.New(), "squat", 30, testFrames(1))

		scored, ok := outcome.(Scored)
		require.True(t, ok, "expected Scored, got %T", outcome)
		assert.Equal(t, "pose-v2", scored.Result.Engine)
		assert.Equal(t, int32(3), hits.Load())
	})

	t.Run("retries rate limiting", func(t *testing.T) {
		server, hits := fakeScoringServer(t, respond(http.StatusTooManyRequests, ""))
		client, _ := newTestClient(t, server.URL, 1)

		outcome := client.request(context.Background(), uuid.New(), "squat", 30, testFrames(1))

		unavailable, ok := outcome.(Unavailable)
		require.True(t, ok, "expected Unavailable, got %T", outcome)
		assert.ErrorIs(t, unavailable.Reason, ErrTransientFailure)
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		server, hits := fakeScoringServer(t, respond(http.StatusUnprocessableEntity, "bad"))
		client, _ := newTestClient(t, server.URL, 3)

		outcome := client.request(context.Background(), uuid.New(), "squat", 30, testFrames(1))

		unavailable, ok := outcome.(Unavailable)
		require.True(t, ok, "expected Unavailable, got %T", outcome)
		assert.ErrorIs(t, unavailable.Reason, ErrUnexpectedStatus)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("does not retry invalid bodies", func(t *testing.T) {
		server, hits := fakeScoringServer(t, respond(http.StatusOK, `{"reps": 1}`))
		client, _ := newTestClient(t, server.URL, 3)

		outcome := client.request(context.Background(), uuid.New(), "squat", 30, testFrames(1))

		unavailable, ok := outcome.(Unavailable)
		require.True(t, ok, "expected Unavailable, got %T", outcome)
		assert.ErrorIs(t, unavailable.Reason, ErrInvalidResponse)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("empty body reports empty response", func(t *testing.T) {
		server, _ := fakeScoringServer(t, respond(http.StatusOK, "  "))
		client, _ := newTestClient(t, server.URL, 0)

		outcome := client.request(context.Background(), uuid.New(), "squat", 30, nil)

		unavailable, ok := outcome.(Unavailable)
		require.True(t, ok, "expected Unavailable, got %T", outcome)
		assert.ErrorIs(t, unavailable.Reason, ErrEmptyResponse)
	})
}

func TestFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		frames     int
		fps        int
		expectReps int
	}{
		{name: "whole seconds", frames: 300, fps: 30, expectReps: 10},
		{name: "rounds down", frames: 12, fps: 10, expectReps: 1},
		{name: "no frames", frames: 0, fps: 30, expectReps: 0},
		{name: "zero fps treated as one", frames: 7, fps: 0, expectReps: 7},
		{name: "negative fps treated as one", frames: 7, fps: -5, expectReps: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Fallback(tt.frames, tt.fps)
			assert.Equal(t, tt.expectReps, result.Reps)
			assert.Equal(t, FallbackEngine, result.Engine)
			assert.Equal(t, FallbackEngineVersion, result.EngineVersion)
			assert.InDelta(t, 0.1, result.Confidence, 1e-9)
			assert.InDelta(t, 0.5, result.CompensationScore, 1e-9)
			assert.Empty(t, result.Issues)
		})
	}
}
