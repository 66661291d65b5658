package scoring

import "github.com/shimonatia-ops/Fuji36-sub001/internal/domain"

// ScoreOutcome is the result of one scoring request: Scored or Unavailable.
type ScoreOutcome interface {
	isScoreOutcome()
}

// Scored carries a validated result from the scoring service.
type Scored struct {
	Result domain.ScoreResult
}

// Unavailable records why the scoring service produced no usable result.
type Unavailable struct {
	Reason error
}

func (Scored) isScoreOutcome()      {}
func (Unavailable) isScoreOutcome() {}
