package codec

// Filter identifies one of the five PNG scanline filter types.
//
// The filter-variant strategies force a single filter onto every scanline
// instead of letting the encoder choose per row, so each filter produces a
// genuinely distinct candidate byte stream.
type Filter uint8

const (
	FilterNone Filter = iota
	FilterSub
	FilterUp
	FilterAverage
	FilterPaeth
)

// String returns the PNG specification name of the filter in lower case.
func (f Filter) String() string {
	switch f {
	case FilterNone:
		return "none"
	case FilterSub:
		return "sub"
	case FilterUp:
		return "up"
	case FilterAverage:
		return "average"
	case FilterPaeth:
		return "paeth"
	default:
		return "unknown"
	}
}

// filterRow applies f to one raw scanline.
//
// cur and prev are unfiltered scanline bytes; prev is nil for the first
// row. bpp is the number of bytes per complete pixel (minimum 1, so the
// filters remain well defined for sub-byte depths). The returned slice is
// the filtered scanline without its leading filter-type byte.
func filterRow(f Filter, cur, prev []byte, bpp int) []byte {
	out := make([]byte, len(cur))
	for i := range cur {
		var left, up, upLeft byte
		if i >= bpp {
			left = cur[i-bpp]
		}
		if prev != nil {
			up = prev[i]
			if i >= bpp {
				upLeft = prev[i-bpp]
			}
		}

		var pred byte
		switch f {
		case FilterSub:
			pred = left
		case FilterUp:
			pred = up
		case FilterAverage:
			pred = byte((int(left) + int(up)) / 2)
		case FilterPaeth:
			pred = paeth(left, up, upLeft)
		}
		out[i] = cur[i] - pred
	}
	return out
}

// paeth is the Paeth predictor from the PNG specification: it picks
// whichever of left, up, and up-left is closest to left+up-upLeft, with
// ties resolved in that order.
func paeth(left, up, upLeft byte) byte {
	p := int(left) + int(up) - int(upLeft)
	pa := abs(p - int(left))
	pb := abs(p - int(up))
	pc := abs(p - int(upLeft))
	if pa <= pb && pa <= pc {
		return left
	}
	if pb <= pc {
		return up
	}
	return upLeft
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
