// Package selector runs the strategy catalog against a pixel grid,
// verifies every produced candidate, and picks the smallest verified one.
//
// # Verification
//
// A candidate enters ranking only after its byte stream has been decoded
// from memory and compared pixel-for-pixel against the original grid.
// Exactness is the point: a candidate that is one pixel off is discarded,
// never ranked. Better no candidate than a lossy one.
//
// # Concurrency
//
// Strategy attempts run concurrently under an errgroup bounded by
// GOMAXPROCS. Each candidate carries its strategy's catalog declaration
// index, and selection happens strictly after all attempts complete, so
// the winner, including the tie-break between equal-size candidates, is
// fully deterministic regardless of scheduling.
//
// # Failure Model
//
// Encode failures and verification failures are per-strategy events: they
// are logged via the structured event stream and the strategy simply
// contributes nothing. The run as a whole fails only when the context is
// canceled or, downstream, when zero strategies produced a verified
// candidate.
package selector
