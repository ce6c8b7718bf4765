package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ironsheep/png-squeeze/internal/budget"
	"github.com/ironsheep/png-squeeze/internal/grid"
	"github.com/ironsheep/png-squeeze/internal/selector"
)

// Compressor wires the full pipeline behind a single synchronous call:
// catalog evaluation, verification, selection, budget classification, and
// persistence of the winner.
type Compressor struct {
	// Runner evaluates and verifies strategies. Defaults to
	// selector.NewRunner().
	Runner *selector.Runner

	// Scratch, when non-nil, receives an artifact dump of every verified
	// candidate before losers are discarded.
	Scratch *Scratch

	// Logger receives run-level events. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Compress runs the whole selection pipeline for one image.
//
// Parameters:
//   - ctx: Cancels in-flight strategy evaluation.
//   - g: The canonical pixel grid of the source image. Never mutated.
//   - originalSize: Source file size in bytes, the savings baseline.
//   - targetBytes: The size budget the winner must come in strictly under.
//   - dest: Destination path for the winning bytes.
//
// On success the winner is written verbatim to dest and the report carries
// the compression ratio. On a budget miss nothing is written and the
// report carries the shortfall. When no strategy yields a verified
// candidate the error wraps budget.ErrNoLosslessCandidate.
func (c *Compressor) Compress(ctx context.Context, g *grid.Grid, originalSize int64, targetBytes int, dest string) (*Report, error) {
	runner := c.Runner
	if runner == nil {
		runner = selector.NewRunner()
	}
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	verified, err := runner.Run(ctx, g)
	if err != nil {
		return nil, err
	}

	if c.Scratch != nil {
		for _, cand := range verified {
			if _, err := c.Scratch.Dump(cand); err != nil {
				logger.Warn("scratch_dump_failed", zap.Error(err))
			}
		}
	}

	res := &selector.Result{
		OriginalSize: originalSize,
		TargetBytes:  targetBytes,
		Verified:     verified,
	}
	if winner, ok := selector.Select(verified); ok {
		res.Winner = &winner
	}

	out, err := budget.Evaluate(res.Winner, originalSize, targetBytes)
	if err != nil {
		if c.Scratch != nil {
			c.Scratch.Discard("")
		}
		return nil, fmt.Errorf("run produced nothing usable: %w", err)
	}

	logger.Info("winner_selected",
		zap.String("strategy", res.Winner.Strategy),
		zap.Int("size_bytes", res.Winner.Size()),
		zap.Int("target_bytes", targetBytes),
		zap.String("status", string(out.Status)))

	outputPath := ""
	if out.Status == budget.StatusSuccess {
		if err := Persist(dest, *res.Winner); err != nil {
			return nil, err
		}
		outputPath = dest
		if c.Scratch != nil {
			c.Scratch.Discard(res.Winner.Strategy)
		}
	} else if c.Scratch != nil {
		c.Scratch.Discard("")
	}

	return Build(res, out, outputPath), nil
}
