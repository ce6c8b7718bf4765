// Package strategy declares the catalog of lossless re-encoding strategies.
//
// The catalog is a declarative table: each entry pairs an applicability
// predicate with a pure encode function, and the table's declaration order
// is the single source of truth for tie-breaking between equal-size
// candidates. Adding a strategy means adding one entry; nothing else in the
// pipeline changes.
package strategy

import (
	"fmt"

	"github.com/ironsheep/png-squeeze/internal/codec"
	"github.com/ironsheep/png-squeeze/internal/grid"
)

// maxPaletteColors is the PNG limit on color table entries.
const maxPaletteColors = 256

// Strategy is one named lossless re-encoding attempt.
//
// Encode must be a pure function of the grid: no shared state, no
// side effects beyond the returned buffer. Applicable is evaluated before
// Encode and excludes the strategy entirely when it returns false; an
// excluded strategy produces no candidate and no error.
type Strategy struct {
	// Name identifies the strategy in results and log events.
	Name string

	// Applicable reports whether the strategy can attempt this grid.
	Applicable func(g *grid.Grid) bool

	// Encode produces the candidate byte stream for the grid.
	Encode func(g *grid.Grid) ([]byte, error)
}

// Entry is a catalog strategy tagged with its declaration index.
//
// Candidates carry the index through concurrent evaluation so that ties in
// size always resolve to the earliest-declared strategy, regardless of
// which goroutine finishes first.
type Entry struct {
	Strategy

	// Index is the strategy's position in the declared catalog.
	Index int
}

// Catalog returns the full strategy table in declared evaluation order:
//
//  1. direct: maximum-effort re-encode, the mandatory fallback
//  2. palette: indexed color, when at most 256 distinct pixel values
//  3. filter-none .. filter-paeth: one candidate per forced PNG filter
//  4. gray-4bit, gray-2bit, gray-1bit: sub-byte grayscale packing
func Catalog() []Strategy {
	strategies := []Strategy{
		{
			Name:       "direct",
			Applicable: func(*grid.Grid) bool { return true },
			Encode:     codec.EncodeDirect,
		},
		{
			Name: "palette",
			Applicable: func(g *grid.Grid) bool {
				switch g.Mode {
				case grid.ModeGrayscale, grid.ModeRGB, grid.ModeRGBA:
					return g.UniqueColors() <= maxPaletteColors
				default:
					return false
				}
			},
			Encode: codec.EncodePaletted,
		},
	}

	for _, f := range []codec.Filter{
		codec.FilterNone,
		codec.FilterSub,
		codec.FilterUp,
		codec.FilterAverage,
		codec.FilterPaeth,
	} {
		filter := f
		strategies = append(strategies, Strategy{
			Name:       "filter-" + filter.String(),
			Applicable: func(*grid.Grid) bool { return true },
			Encode: func(g *grid.Grid) ([]byte, error) {
				return codec.EncodeFiltered(g, filter)
			},
		})
	}

	for _, b := range []int{4, 2, 1} {
		bits := b
		strategies = append(strategies, Strategy{
			Name: fmt.Sprintf("gray-%dbit", bits),
			Applicable: func(g *grid.Grid) bool {
				return g.Mode == grid.ModeGrayscale && len(g.GrayLevels()) <= 1<<bits
			},
			Encode: func(g *grid.Grid) ([]byte, error) {
				return codec.EncodeGrayPacked(g, bits)
			},
		})
	}

	return strategies
}

// Applicable filters the catalog by each strategy's predicate, preserving
// declaration order and attaching each surviving strategy's catalog index.
func Applicable(g *grid.Grid) []Entry {
	var entries []Entry
	for i, s := range Catalog() {
		if s.Applicable(g) {
			entries = append(entries, Entry{Strategy: s, Index: i})
		}
	}
	return entries
}
