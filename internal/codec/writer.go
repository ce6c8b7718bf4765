package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zlib"

	"github.com/ironsheep/png-squeeze/internal/grid"
)

// pngSignature is the fixed 8-byte file header every PNG stream starts with.
const pngSignature = "\x89PNG\r\n\x1a\n"

// PNG color types used by the writer.
const (
	colorTypeGray     = 0
	colorTypeRGB      = 2
	colorTypePaletted = 3
	colorTypeRGBAlpha = 6
)

// ErrPaletteOverflow is returned when a grid holds more than 256 distinct
// pixel values and therefore cannot be represented in indexed color.
var ErrPaletteOverflow = errors.New("too many distinct colors for a palette")

// ErrUnrepresentable is returned when a grid's gray levels cannot be packed
// exactly at the requested sub-byte bit depth. PNG scales a b-bit sample by
// 255/(2^b-1) on decode, so packing is lossless only when every level is a
// multiple of that step.
var ErrUnrepresentable = errors.New("gray levels not exactly representable at this bit depth")

// EncodeFiltered serializes the grid as an 8-bit PNG with the given filter
// forced onto every scanline.
//
// The color type follows the grid's content: grayscale grids become color
// type 0, fully opaque grids color type 2, and anything with transparency
// color type 6. Scanlines are deflated at maximum compression level.
//
// Forcing one filter per candidate is what distinguishes the filter-variant
// candidates from the direct re-encode, whose encoder picks a heuristic
// filter per row on its own.
func EncodeFiltered(g *grid.Grid, f Filter) ([]byte, error) {
	var colorType, bpp int
	switch {
	case g.Mode == grid.ModeGrayscale:
		colorType, bpp = colorTypeGray, 1
	case opaque(g):
		colorType, bpp = colorTypeRGB, 3
	default:
		colorType, bpp = colorTypeRGBAlpha, 4
	}

	raw := make([]byte, 0, g.Width*bpp)
	var prev []byte
	var scanlines bytes.Buffer
	for y := 0; y < g.Height; y++ {
		raw = raw[:0]
		for x := 0; x < g.Width; x++ {
			r, gg, b, a := g.At(x, y).RGBA()
			switch colorType {
			case colorTypeGray:
				raw = append(raw, r)
			case colorTypeRGB:
				raw = append(raw, r, gg, b)
			default:
				raw = append(raw, r, gg, b, a)
			}
		}
		scanlines.WriteByte(byte(f))
		scanlines.Write(filterRow(f, raw, prev, bpp))
		prev = append(prev[:0], raw...)
	}

	return assemble(g.Width, g.Height, 8, colorType, nil, nil, scanlines.Bytes())
}

// EncodePaletted serializes the grid in indexed color.
//
// The color table is built from distinct pixel values in first-seen order,
// which keeps the output deterministic for a given grid. The index bit
// depth is the smallest of 1, 2, 4, or 8 that fits the table; indexed
// samples are unscaled, so sub-byte indices round-trip exactly at any
// depth. Non-opaque table entries are recorded in a tRNS chunk.
//
// Returns ErrPaletteOverflow when the grid has more than 256 distinct
// pixel values.
func EncodePaletted(g *grid.Grid) ([]byte, error) {
	index := make(map[grid.Pixel]int)
	var palette []grid.Pixel
	for _, p := range g.Pixels {
		if _, ok := index[p]; !ok {
			if len(palette) == 256 {
				return nil, ErrPaletteOverflow
			}
			index[p] = len(palette)
			palette = append(palette, p)
		}
	}

	var bitDepth int
	switch {
	case len(palette) <= 2:
		bitDepth = 1
	case len(palette) <= 4:
		bitDepth = 2
	case len(palette) <= 16:
		bitDepth = 4
	default:
		bitDepth = 8
	}

	plte := make([]byte, 0, len(palette)*3)
	lastAlpha := -1
	alphas := make([]byte, len(palette))
	for i, p := range palette {
		r, gg, b, a := p.RGBA()
		plte = append(plte, r, gg, b)
		alphas[i] = a
		if a != 0xFF {
			lastAlpha = i
		}
	}
	var trns []byte
	if lastAlpha >= 0 {
		// Entries past the last non-opaque index default to 255 on decode.
		trns = alphas[:lastAlpha+1]
	}

	samples := make([]uint8, g.Width)
	var scanlines bytes.Buffer
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			samples[x] = uint8(index[g.At(x, y)])
		}
		scanlines.WriteByte(byte(FilterNone))
		scanlines.Write(packRow(samples, bitDepth))
	}

	return assemble(g.Width, g.Height, bitDepth, colorTypePaletted, plte, trns, scanlines.Bytes())
}

// EncodeGrayPacked serializes a grayscale grid at a sub-byte bit depth
// (1, 2, or 4 bits per sample).
//
// Decoders expand a b-bit gray sample v to v*255/(2^b-1), so the encoding
// is exactly invertible only when every gray level in the grid is a
// multiple of that step (for example 0/85/170/255 at 2 bits). Levels that
// do not divide evenly yield ErrUnrepresentable rather than a candidate
// that verification would have to reject.
func EncodeGrayPacked(g *grid.Grid, bits int) ([]byte, error) {
	if g.Mode != grid.ModeGrayscale {
		return nil, fmt.Errorf("grid mode %s is not grayscale", g.Mode)
	}
	if bits != 1 && bits != 2 && bits != 4 {
		return nil, fmt.Errorf("unsupported bit depth %d", bits)
	}

	step := 255 / ((1 << bits) - 1)
	samples := make([]uint8, g.Width)
	var scanlines bytes.Buffer
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			level := int(g.At(x, y).Gray())
			if level%step != 0 {
				return nil, fmt.Errorf("%w: level %d at %d bits", ErrUnrepresentable, level, bits)
			}
			samples[x] = uint8(level / step)
		}
		scanlines.WriteByte(byte(FilterNone))
		scanlines.Write(packRow(samples, bits))
	}

	return assemble(g.Width, g.Height, bits, colorTypeGray, nil, nil, scanlines.Bytes())
}

// packRow packs one row of samples at the given bit depth, most significant
// bits first, padding the final byte with zero bits as PNG requires.
func packRow(samples []uint8, bits int) []byte {
	if bits == 8 {
		out := make([]byte, len(samples))
		copy(out, samples)
		return out
	}
	perByte := 8 / bits
	out := make([]byte, (len(samples)+perByte-1)/perByte)
	for i, s := range samples {
		shift := uint(8 - bits - (i%perByte)*bits)
		out[i/perByte] |= s << shift
	}
	return out
}

// opaque reports whether every pixel in the grid has full alpha.
func opaque(g *grid.Grid) bool {
	for _, p := range g.Pixels {
		if uint8(p) != 0xFF {
			return false
		}
	}
	return true
}

// assemble deflates the filtered scanline stream and frames the complete
// PNG file: signature, IHDR, optional PLTE and tRNS, IDAT, IEND.
func assemble(width, height, bitDepth, colorType int, plte, trns, scanlines []byte) ([]byte, error) {
	var idat bytes.Buffer
	zw, err := zlib.NewWriterLevel(&idat, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}
	if _, err := zw.Write(scanlines); err != nil {
		return nil, fmt.Errorf("deflate scanlines: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("deflate scanlines: %w", err)
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = byte(bitDepth)
	ihdr[9] = byte(colorType)
	// compression 0, filter method 0, no interlace

	var out bytes.Buffer
	out.WriteString(pngSignature)
	writeChunk(&out, "IHDR", ihdr)
	if len(plte) > 0 {
		writeChunk(&out, "PLTE", plte)
	}
	if len(trns) > 0 {
		writeChunk(&out, "tRNS", trns)
	}
	writeChunk(&out, "IDAT", idat.Bytes())
	writeChunk(&out, "IEND", nil)
	return out.Bytes(), nil
}

// writeChunk frames one PNG chunk: length, type, data, CRC-32 over the
// type and data.
func writeChunk(out *bytes.Buffer, typ string, data []byte) {
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(data)))
	out.Write(header[:])
	out.WriteString(typ)
	out.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	binary.BigEndian.PutUint32(header[:], crc.Sum32())
	out.Write(header[:])
}
