package selector

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/png-squeeze/internal/codec"
	"github.com/ironsheep/png-squeeze/internal/grid"
	"github.com/ironsheep/png-squeeze/internal/strategy"
)

// Runner evaluates the strategy catalog against a grid and collects every
// candidate that survives verification.
//
// Strategies are pure functions of an immutable grid, so the runner
// executes them concurrently. Per-strategy encode and verification
// failures are logged and swallowed: a strategy that cannot serve this
// image simply contributes nothing. Only context cancellation aborts a
// run.
type Runner struct {
	// Decode is the verification decoder. Defaults to codec.Decode.
	Decode DecodeFunc

	// Logger receives structured progress events. Defaults to a no-op
	// logger.
	Logger *zap.Logger

	// Limit caps concurrent strategy attempts. Defaults to GOMAXPROCS.
	Limit int
}

// NewRunner returns a runner with the production codec and a no-op logger.
func NewRunner() *Runner {
	return &Runner{}
}

// Run evaluates every applicable catalog strategy against g and returns
// the verified candidates sorted by size, then by catalog index.
//
// All strategies are attempted and all results collected before the caller
// selects a winner, so completion order can never influence the tie-break.
// The returned error is non-nil only when ctx is canceled.
func (r *Runner) Run(ctx context.Context, g *grid.Grid) ([]Candidate, error) {
	decode := r.Decode
	if decode == nil {
		decode = codec.Decode
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := r.Limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	entries := strategy.Applicable(g)
	next := 0
	for i, s := range strategy.Catalog() {
		if next < len(entries) && entries[next].Index == i {
			next++
			continue
		}
		logger.Debug("strategy_skipped",
			zap.String("strategy", s.Name),
			zap.String("mode", g.Mode.String()))
	}

	var (
		mu       sync.Mutex
		verified []Candidate
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for _, e := range entries {
		entry := e
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			data, err := entry.Encode(g)
			if err != nil {
				logger.Warn("encode_failed",
					zap.String("strategy", entry.Name),
					zap.Error(err))
				return nil
			}

			c := Candidate{Strategy: entry.Name, Index: entry.Index, Data: data}
			if err := Verify(g, c, decode); err != nil {
				logger.Warn("candidate_rejected",
					zap.String("strategy", entry.Name),
					zap.Int("size_bytes", c.Size()),
					zap.Error(err))
				return nil
			}

			logger.Info("candidate_verified",
				zap.String("strategy", entry.Name),
				zap.Int("size_bytes", c.Size()))

			mu.Lock()
			verified = append(verified, c)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(verified, func(i, j int) bool {
		if verified[i].Size() != verified[j].Size() {
			return verified[i].Size() < verified[j].Size()
		}
		return verified[i].Index < verified[j].Index
	})
	return verified, nil
}
