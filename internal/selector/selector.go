package selector

import (
	"errors"
	"fmt"

	"github.com/ironsheep/png-squeeze/internal/grid"
)

// ErrVerifyMismatch is returned when a candidate decodes cleanly but its
// pixel sequence differs from the original grid.
var ErrVerifyMismatch = errors.New("decoded pixels differ from original")

// Candidate is one verified or not-yet-verified encoded byte stream
// produced by a strategy.
type Candidate struct {
	// Strategy is the name of the strategy that produced the buffer.
	Strategy string `json:"strategy"`

	// Index is the strategy's catalog declaration index, used to break
	// ties between equal-size candidates deterministically.
	Index int `json:"-"`

	// Data is the complete encoded stream, exactly the bytes that would
	// be written to the destination if this candidate wins.
	Data []byte `json:"-"`
}

// Size returns the encoded size of the candidate in bytes.
func (c Candidate) Size() int {
	return len(c.Data)
}

// DecodeFunc decodes an encoded candidate buffer back into a pixel grid.
// It abstracts the codec so tests can substitute a failing or corrupting
// decoder.
type DecodeFunc func(data []byte) (*grid.Grid, error)

// Verify decodes the candidate from memory and checks that the result is
// pixel-for-pixel identical to the original grid.
//
// Equality is exact sequence equality with no tolerance: failing a single
// pixel fails the candidate. A decode error or a mismatch is returned to
// the caller, which drops the candidate and continues the run; neither is
// fatal to selection.
func Verify(original *grid.Grid, c Candidate, decode DecodeFunc) error {
	decoded, err := decode(c.Data)
	if err != nil {
		return fmt.Errorf("candidate %q failed to decode: %w", c.Strategy, err)
	}
	if !original.Equal(decoded) {
		return fmt.Errorf("candidate %q: %w", c.Strategy, ErrVerifyMismatch)
	}
	return nil
}

// Select picks the winning candidate from a set of verified candidates.
//
// The winner is the candidate with strictly minimum size; among candidates
// of equal size the one with the lower catalog index wins, so the result is
// independent of the order candidates were generated or appear in the
// slice. The second return value is false when the set is empty.
func Select(verified []Candidate) (Candidate, bool) {
	if len(verified) == 0 {
		return Candidate{}, false
	}
	best := verified[0]
	for _, c := range verified[1:] {
		if c.Size() < best.Size() || (c.Size() == best.Size() && c.Index < best.Index) {
			best = c
		}
	}
	return best, true
}

// Result is the terminal artifact of a selection run.
type Result struct {
	// Winner is the smallest verified candidate, or nil when no strategy
	// produced one.
	Winner *Candidate

	// OriginalSize is the source file size in bytes that savings are
	// computed against.
	OriginalSize int64

	// TargetBytes is the caller-supplied size budget.
	TargetBytes int

	// Verified holds every verified candidate, sorted by size then by
	// catalog index.
	Verified []Candidate
}
