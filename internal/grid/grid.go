package grid

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Pixel is a packed non-premultiplied pixel value in 0xRRGGBBAA layout.
//
// Packing the four 8-bit components into a single word makes sequence
// equality and distinct-value counting cheap map/compare operations, which
// the selection pipeline performs on every candidate.
type Pixel uint32

// NewPixel packs four 8-bit components into a Pixel.
func NewPixel(r, g, b, a uint8) Pixel {
	return Pixel(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// RGBA unpacks the four 8-bit components of a Pixel.
func (p Pixel) RGBA() (r, g, b, a uint8) {
	return uint8(p >> 24), uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// Gray returns the gray level of the pixel. It is only meaningful for
// pixels of a grayscale grid, where all three color components are equal.
func (p Pixel) Gray() uint8 {
	return uint8(p >> 24)
}

// ColorMode classifies how a grid's pixel data was represented in its
// source image. The mode drives strategy applicability only; the canonical
// pixel sequence is always stored the same way regardless of mode.
type ColorMode int

const (
	// ModeGrayscale indicates a single-channel source (image.Gray or
	// image.Gray16). All pixels have equal R, G, B and full alpha.
	ModeGrayscale ColorMode = iota

	// ModeRGB indicates a fully opaque color source.
	ModeRGB

	// ModeRGBA indicates a color source with at least one non-opaque pixel.
	ModeRGBA

	// ModeIndexed indicates a palette-based source (image.Paletted).
	ModeIndexed
)

// String returns a short lower-case name for the mode.
func (m ColorMode) String() string {
	switch m {
	case ModeGrayscale:
		return "grayscale"
	case ModeRGB:
		return "rgb"
	case ModeRGBA:
		return "rgba"
	case ModeIndexed:
		return "indexed"
	default:
		return "unknown"
	}
}

// Grid is the canonical in-memory representation of a decoded image.
//
// Pixels are stored row-major, top-left first, as packed non-premultiplied
// 0xRRGGBBAA values. A Grid is immutable once constructed: the compression
// pipeline reads it from many goroutines concurrently and relies on no
// strategy ever mutating it.
//
// Two grids are considered equal when their dimensions match and their
// pixel sequences are element-wise identical. Equality is exact, never
// perceptual; it is the definition of "lossless" used by the verifier.
type Grid struct {
	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int

	// Mode classifies the source representation. See ColorMode.
	Mode ColorMode

	// Pixels holds width*height packed values in row-major order.
	Pixels []Pixel

	// Palette holds the source color table when Mode is ModeIndexed,
	// in source index order. Nil for all other modes.
	Palette []color.NRGBA
}

// FromImage builds the canonical grid for a decoded image.
//
// The image is first cloned into non-premultiplied NRGBA form so that every
// source type (Gray, Gray16, RGBA, NRGBA, YCbCr, Paletted, ...) yields the
// same packed pixel layout. 16-bit sources are reduced to 8 bits per
// channel during the clone.
//
// The color mode is classified from the source's concrete type:
//   - *image.Gray, *image.Gray16 -> ModeGrayscale
//   - *image.Paletted            -> ModeIndexed (palette retained)
//   - anything else              -> ModeRGB if fully opaque, else ModeRGBA
//
// Returns an error for images with zero area.
func FromImage(img image.Image) (*Grid, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image has empty bounds %v", bounds)
	}

	// Clone normalizes bounds to the origin and converts any source type
	// to NRGBA without premultiplying alpha.
	nrgba := imaging.Clone(img)

	pixels := make([]Pixel, 0, width*height)
	hasAlpha := false
	for y := 0; y < height; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
		for x := 0; x < width; x++ {
			r, g, b, a := row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]
			if a != 0xFF {
				hasAlpha = true
			}
			pixels = append(pixels, NewPixel(r, g, b, a))
		}
	}

	g := &Grid{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}

	switch src := img.(type) {
	case *image.Gray, *image.Gray16:
		g.Mode = ModeGrayscale
	case *image.Paletted:
		g.Mode = ModeIndexed
		g.Palette = make([]color.NRGBA, len(src.Palette))
		for i, c := range src.Palette {
			g.Palette[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
		}
	default:
		if hasAlpha {
			g.Mode = ModeRGBA
		} else {
			g.Mode = ModeRGB
		}
	}

	return g, nil
}

// At returns the pixel at (x, y). Coordinates are 0-based with the origin
// at the top-left corner.
func (g *Grid) At(x, y int) Pixel {
	return g.Pixels[y*g.Width+x]
}

// Equal reports whether two grids hold identical pixel data.
//
// Dimensions must match and every pixel must compare equal element-wise.
// Color mode and palette are intentionally ignored: a palette re-encode of
// an RGB image decodes back as indexed, yet is lossless when the pixel
// sequences agree.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil {
		return false
	}
	if g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for i, p := range g.Pixels {
		if other.Pixels[i] != p {
			return false
		}
	}
	return true
}

// UniqueColors counts the distinct pixel values in the grid.
//
// The count includes alpha: two pixels with equal color but different
// opacity are distinct. This is the value palette applicability is
// decided on.
func (g *Grid) UniqueColors() int {
	seen := make(map[Pixel]struct{})
	for _, p := range g.Pixels {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// GrayLevels returns the distinct gray levels present in the grid in
// ascending order. It is only meaningful for ModeGrayscale grids, where
// the red channel carries the gray sample.
func (g *Grid) GrayLevels() []uint8 {
	var seen [256]bool
	for _, p := range g.Pixels {
		seen[p.Gray()] = true
	}
	levels := make([]uint8, 0, 16)
	for v := 0; v < 256; v++ {
		if seen[v] {
			levels = append(levels, uint8(v))
		}
	}
	return levels
}

// ToImage reconstructs a typed image from the canonical pixel data.
//
// The concrete type follows the grid's mode so that a direct PNG re-encode
// picks the natural color type: *image.Gray for grayscale, *image.Paletted
// for indexed sources, and *image.NRGBA otherwise.
func (g *Grid) ToImage() image.Image {
	rect := image.Rect(0, 0, g.Width, g.Height)

	switch g.Mode {
	case ModeGrayscale:
		img := image.NewGray(rect)
		for i, p := range g.Pixels {
			img.Pix[i] = p.Gray()
		}
		return img

	case ModeIndexed:
		palette := make(color.Palette, len(g.Palette))
		lookup := make(map[Pixel]uint8, len(g.Palette))
		for i, c := range g.Palette {
			palette[i] = c
			key := NewPixel(c.R, c.G, c.B, c.A)
			if _, ok := lookup[key]; !ok {
				lookup[key] = uint8(i)
			}
		}
		img := image.NewPaletted(rect, palette)
		for i, p := range g.Pixels {
			img.Pix[i] = lookup[p]
		}
		return img

	default:
		img := image.NewNRGBA(rect)
		for i, p := range g.Pixels {
			r, gg, b, a := p.RGBA()
			img.Pix[i*4] = r
			img.Pix[i*4+1] = gg
			img.Pix[i*4+2] = b
			img.Pix[i*4+3] = a
		}
		return img
	}
}
