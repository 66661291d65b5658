package scoring

import "github.com/shimonatia-ops/Fuji36-sub001/internal/domain"

// Fallback result values.
const (
	FallbackEngine            = "fallback"
	FallbackEngineVersion     = "0"
	FallbackCompensationScore = 0.5
	FallbackConfidence        = 0.1

	// ScoredConfidenceThreshold separates fallback results from real ones:
	// fallback confidence is always below it.
	ScoredConfidenceThreshold = 0.5
)

// Fallback builds the deterministic result used when the scoring service is
// unavailable. Reps assume one repetition per second of recording.
func Fallback(frameCount, sampleFPS int) domain.ScoreResult {
	if sampleFPS < 1 {
		sampleFPS = 1
	}
	if frameCount < 0 {
		frameCount = 0
	}

	return domain.ScoreResult{
		Reps:              frameCount / sampleFPS,
		CompensationScore: FallbackCompensationScore,
		Issues:            []domain.Issue{},
		Confidence:        FallbackConfidence,
		Engine:            FallbackEngine,
		EngineVersion:     FallbackEngineVersion,
	}
}

// IsFallback reports whether r was produced by Fallback rather than the service.
func IsFallback(r domain.ScoreResult) bool {
	return r.Engine == FallbackEngine && r.Confidence < ScoredConfidenceThreshold
}
