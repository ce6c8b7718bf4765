package codec

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/ironsheep/png-squeeze/internal/grid"
)

// EncodeDirect re-serializes the grid with the standard library PNG encoder
// at maximum compression effort.
//
// The typed image is rebuilt from the canonical pixel data so the encoder
// picks the natural PNG color type for the grid's mode (grayscale, indexed,
// truecolor, or truecolor with alpha). This is the mandatory fallback
// strategy: it is applicable to every grid and always yields a decodable
// buffer.
func EncodeDirect(g *grid.Grid) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, g.ToImage()); err != nil {
		return nil, fmt.Errorf("png encode failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode decodes an encoded candidate buffer from memory and rebuilds its
// canonical pixel grid.
//
// This is the verification entry point: candidates never touch the
// filesystem on their way back through the codec. Any malformed buffer
// surfaces as a decode error, which the caller treats as a failed
// candidate rather than a fatal condition.
func Decode(data []byte) (*grid.Grid, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("png decode failed: %w", err)
	}
	return grid.FromImage(img)
}
