// Package report materializes the winning candidate and produces the
// structured result of a compression run.
package report

import (
	"fmt"
	"os"

	"github.com/ironsheep/png-squeeze/internal/budget"
	"github.com/ironsheep/png-squeeze/internal/selector"
)

// CandidateSize records one verified candidate's size for the report.
type CandidateSize struct {
	Strategy  string `json:"strategy"`
	SizeBytes int    `json:"size_bytes"`
}

// Report is the structured summary of a complete compression run.
//
// It carries everything a caller needs to act on the outcome without
// re-reading any file: the classified outcome, the baseline sizes, and the
// full list of verified candidates ordered smallest first.
type Report struct {
	// Status is the outcome classification, "success" or "budget_missed".
	Status budget.Status `json:"status"`

	// OriginalSizeBytes is the source file size.
	OriginalSizeBytes int64 `json:"original_size_bytes"`

	// BestSizeBytes is the winning candidate's encoded size.
	BestSizeBytes int `json:"best_size_bytes"`

	// StrategyName names the winning strategy.
	StrategyName string `json:"strategy_name"`

	// CompressionRatioPercent is the savings over the original file.
	CompressionRatioPercent float64 `json:"compression_ratio_percent"`

	// TargetBytes is the caller's budget.
	TargetBytes int `json:"target_bytes"`

	// ShortfallBytes is the overshoot past the budget; zero on success.
	ShortfallBytes int `json:"shortfall_bytes"`

	// OutputPath is the destination the winner was written to; empty when
	// the budget was missed and nothing was persisted.
	OutputPath string `json:"output_path,omitempty"`

	// Candidates lists every verified candidate, smallest first.
	Candidates []CandidateSize `json:"candidates"`
}

// Build assembles the report from a selection result and its classified
// outcome. outputPath should be empty when no file was written.
func Build(res *selector.Result, out *budget.Outcome, outputPath string) *Report {
	candidates := make([]CandidateSize, 0, len(res.Verified))
	for _, c := range res.Verified {
		candidates = append(candidates, CandidateSize{
			Strategy:  c.Strategy,
			SizeBytes: c.Size(),
		})
	}
	return &Report{
		Status:                  out.Status,
		OriginalSizeBytes:       res.OriginalSize,
		BestSizeBytes:           out.SizeBytes,
		StrategyName:            out.StrategyName,
		CompressionRatioPercent: out.RatioPercent,
		TargetBytes:             out.TargetBytes,
		ShortfallBytes:          out.ShortfallBytes,
		OutputPath:              outputPath,
		Candidates:              candidates,
	}
}

// Persist writes the winning candidate's bytes verbatim to dest.
//
// The buffer is copied as-is: the bytes on disk are exactly the bytes the
// verifier decoded, so the persisted file needs no re-verification.
func Persist(dest string, winner selector.Candidate) error {
	if err := os.WriteFile(dest, winner.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write winner: %w", err)
	}
	return nil
}
