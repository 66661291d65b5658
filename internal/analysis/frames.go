package analysis

import "github.com/shimonatia-ops/Fuji36-sub001/internal/domain"

const (
	// DefaultMaxFrames caps the frames sent to the scorer for one job.
	DefaultMaxFrames = 9000

	// DefaultSampleFPS is the sample rate assumed for a session without batches.
	DefaultSampleFPS = 30
)

// AssembleFrames concatenates the frames of batches in order and truncates
// the result to the first maxFrames frames. A maxFrames below 1 disables
// the cap.
func AssembleFrames(batches []*domain.LandmarkBatch, maxFrames int) []domain.Frame {
	total := 0
	for _, b := range batches {
		total += len(b.Frames)
	}
	if maxFrames > 0 && total > maxFrames {
		total = maxFrames
	}

	frames := make([]domain.Frame, 0, total)
	for _, b := range batches {
		remaining := total - len(frames)
		if remaining <= 0 {
			break
		}
		if len(b.Frames) > remaining {
			frames = append(frames, b.Frames[:remaining]...)
			break
		}
		frames = append(frames, b.Frames...)
	}

	return frames
}

// EffectiveSampleFPS returns the sample rate of the first batch, or def when
// there are no batches. Later batches are not checked for a matching rate.
func EffectiveSampleFPS(batches []*domain.LandmarkBatch, def int) int {
	if def < 1 {
		def = DefaultSampleFPS
	}
	if len(batches) == 0 || batches[0].SampleFPS < 1 {
		return def
	}
	return batches[0].SampleFPS
}
