package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/sethvargo/go-retry"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/config"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/domain"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/platform/logger"
	"github.com/shimonatia-ops/Fuji36-sub001/internal/redact"
)

const (
	scorePath = "/v1/score"

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 1 << 20

	// errorSnippetBytes bounds the body excerpt included in status errors.
	errorSnippetBytes = 256

	defaultRetryBaseDelay = 500 * time.Millisecond
)

// scoreRequest is the JSON body sent to the scoring service.
type scoreRequest struct {
	SessionID    string         `json:"sessionId"`
	ExerciseType string         `json:"exerciseType"`
	SampleFPS    int            `json:"sampleFps"`
	Frames       []domain.Frame `json:"frames"`
	Config       map[string]any `json:"config,omitempty"`
}

// Client calls the posture scoring service over HTTP.
type Client struct {
	endpoint       string
	httpClient     *http.Client
	maxRetries     int
	retryBaseDelay time.Duration
	engineConfig   map[string]any
	validate       *validator.Validate
	logger         *slog.Logger
}

// NewClient creates a scoring client from configuration.
// If logger is nil, a default logger will be used.
func NewClient(cfg config.ScoringConfig, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q is not an absolute URL", ErrInvalidConfig, cfg.BaseURL)
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("%w: max retries cannot be negative", ErrInvalidConfig)
	}

	if logger == nil {
		logger = slog.Default()
	}

	retryBaseDelay := cfg.RetryBaseDelay
	if retryBaseDelay <= 0 {
		retryBaseDelay = defaultRetryBaseDelay
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = cfg.Timeout

	return &Client{
		endpoint:       base.String() + scorePath,
		httpClient:     httpClient,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: retryBaseDelay,
		engineConfig:   cfg.EngineConfig,
		validate:       validator.New(),
		logger:         logger.With(slog.String("component", "scoring_client")),
	}, nil
}

// Score asks the scoring service to score the frames of one session.
// It never fails: when the service is unavailable the deterministic
// fallback result is returned instead.
func (c *Client) Score(
	ctx context.Context,
	sessionID uuid.UUID,
	exerciseType string,
	sampleFPS int,
	frames []domain.Frame,
) domain.ScoreResult {
	log := logger.FromContextOrDefault(ctx, c.logger)

	switch outcome := c.request(ctx, sessionID, exerciseType, sampleFPS, frames).(type) {
	case Scored:
		log.Debug("session scored",
			slog.String("session_id", sessionID.String()),
			slog.String("engine", outcome.Result.Engine),
			slog.Int("reps", outcome.Result.Reps))
		return outcome.Result
	case Unavailable:
		log.Warn("scoring service unavailable, using fallback result",
			slog.String("session_id", sessionID.String()),
			slog.Int("frame_count", len(frames)),
			slog.String("reason", redact.Error(outcome.Reason)))
		return Fallback(len(frames), sampleFPS)
	default:
		log.Error("unknown scoring outcome, using fallback result",
			slog.String("session_id", sessionID.String()))
		return Fallback(len(frames), sampleFPS)
	}
}

// request performs the scoring call including retries and reports the outcome.
func (c *Client) request(
	ctx context.Context,
	sessionID uuid.UUID,
	exerciseType string,
	sampleFPS int,
	frames []domain.Frame,
) ScoreOutcome {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if frames == nil {
		frames = []domain.Frame{}
	}
	payload, err := json.Marshal(scoreRequest{
		SessionID:    sessionID.String(),
		ExerciseType: exerciseType,
		SampleFPS:    sampleFPS,
		Frames:       frames,
		Config:       c.engineConfig,
	})
	if err != nil {
		return Unavailable{Reason: fmt.Errorf("failed to encode scoring request: %w", err)}
	}

	backoff := retry.WithMaxRetries(uint64(c.maxRetries),
		retry.WithJitterPercent(20, retry.NewExponential(c.retryBaseDelay)))

	attempt := 0
	var result domain.ScoreResult
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		res, err := c.post(ctx, payload)
		if err != nil {
			if errors.Is(err, ErrTransientFailure) {
				log.Warn("scoring request failed, retrying if attempts remain",
					slog.Int("attempt", attempt),
					slog.Int("max_attempts", c.maxRetries+1),
					slog.String("error", redact.Error(err)))
				return retry.RetryableError(err)
			}
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return Unavailable{Reason: fmt.Errorf("after %d attempt(s): %w", attempt, err)}
	}

	return Scored{Result: result}
}

// post sends one scoring request and validates the response.
func (c *Client) post(ctx context.Context, payload []byte) (domain.ScoreResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("failed to build scoring request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("%w: %v", ErrTransientFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("%w: reading body: %v", ErrTransientFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(body)
		if len(snippet) > errorSnippetBytes {
			snippet = snippet[:errorSnippetBytes]
		}
		sentinel := ErrUnexpectedStatus
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			sentinel = ErrTransientFailure
		}
		return domain.ScoreResult{}, fmt.Errorf("%w: status %d: %s",
			sentinel, resp.StatusCode, strings.TrimSpace(snippet))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return domain.ScoreResult{}, ErrEmptyResponse
	}

	var result domain.ScoreResult
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.ScoreResult{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if err := c.validate.Struct(result); err != nil {
		return domain.ScoreResult{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if result.Issues == nil {
		result.Issues = []domain.Issue{}
	}

	return result, nil
}
