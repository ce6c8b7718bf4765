// Package budget classifies a selection winner against the caller's size
// target.
package budget

import (
	"errors"

	"github.com/ironsheep/png-squeeze/internal/selector"
)

// ErrNoLosslessCandidate is the fatal outcome of a run in which zero
// strategies produced a verified candidate. The direct re-encode fallback
// makes this unreachable in practice, but a broken codec must surface as
// an explicit error rather than a bogus result.
var ErrNoLosslessCandidate = errors.New("no lossless strategy produced a verified candidate")

// Status classifies the outcome of a compression run.
type Status string

const (
	// StatusSuccess means the winner fits strictly under the target budget.
	StatusSuccess Status = "success"

	// StatusBudgetMissed means a lossless winner exists but is not under
	// the target. This is a valid negative result, not an error.
	StatusBudgetMissed Status = "budget_missed"
)

// Outcome is the classified result of comparing the winning candidate
// against the target budget.
type Outcome struct {
	// Status is StatusSuccess or StatusBudgetMissed.
	Status Status `json:"status"`

	// SizeBytes is the winner's encoded size.
	SizeBytes int `json:"size_bytes"`

	// StrategyName names the strategy that produced the winner.
	StrategyName string `json:"strategy_name"`

	// RatioPercent is the savings over the original file,
	// (1 - size/original) * 100. Only meaningful on success.
	RatioPercent float64 `json:"ratio_percent"`

	// TargetBytes echoes the caller's budget.
	TargetBytes int `json:"target_bytes"`

	// ShortfallBytes is how far the winner overshoots the budget. Zero on
	// success.
	ShortfallBytes int `json:"shortfall_bytes"`
}

// Evaluate classifies the winner against the target budget.
//
// A nil winner yields ErrNoLosslessCandidate. A winner strictly under
// targetBytes is a success with its compression ratio filled in; anything
// else is a budget miss carrying the shortfall. Increasing targetBytes for
// a fixed image can therefore never turn a success into a miss.
func Evaluate(winner *selector.Candidate, originalSize int64, targetBytes int) (*Outcome, error) {
	if winner == nil {
		return nil, ErrNoLosslessCandidate
	}

	size := winner.Size()
	out := &Outcome{
		SizeBytes:    size,
		StrategyName: winner.Strategy,
		TargetBytes:  targetBytes,
	}

	if size < targetBytes {
		out.Status = StatusSuccess
		if originalSize > 0 {
			out.RatioPercent = (1 - float64(size)/float64(originalSize)) * 100
		}
		return out, nil
	}

	out.Status = StatusBudgetMissed
	out.ShortfallBytes = size - targetBytes
	return out, nil
}
