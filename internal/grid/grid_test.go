package grid

import (
	"image"
	"image/color"
	"testing"
)

// createGrayImage builds an in-memory grayscale image whose pixel at
// (x, y) takes the level levels[(y*width+x)%len(levels)].
func createGrayImage(width, height int, levels []uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = levels[i%len(levels)]
	}
	return img
}

func createColorImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFromImage_Grayscale(t *testing.T) {
	img := createGrayImage(2, 2, []uint8{0, 85, 170, 255})

	g, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	if g.Mode != ModeGrayscale {
		t.Errorf("Mode: got %s, want grayscale", g.Mode)
	}
	if g.Width != 2 || g.Height != 2 {
		t.Errorf("dimensions: got %dx%d, want 2x2", g.Width, g.Height)
	}
	if len(g.Pixels) != 4 {
		t.Fatalf("len(Pixels): got %d, want 4", len(g.Pixels))
	}
	if got := g.At(1, 0); got != NewPixel(85, 85, 85, 255) {
		t.Errorf("At(1,0): got %08X, want gray level 85", uint32(got))
	}
}

func TestFromImage_OpaqueColorIsRGB(t *testing.T) {
	img := createColorImage(3, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	g, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	if g.Mode != ModeRGB {
		t.Errorf("Mode: got %s, want rgb", g.Mode)
	}
	if got := g.At(2, 1); got != NewPixel(10, 20, 30, 255) {
		t.Errorf("At(2,1): got %08X, want 0A141EFF", uint32(got))
	}
}

func TestFromImage_TransparencyIsRGBA(t *testing.T) {
	img := createColorImage(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	g, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	if g.Mode != ModeRGBA {
		t.Errorf("Mode: got %s, want rgba", g.Mode)
	}
}

func TestFromImage_Paletted(t *testing.T) {
	palette := color.Palette{
		color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		color.NRGBA{R: 255, G: 0, B: 0, A: 255},
	}
	img := image.NewPaletted(image.Rect(0, 0, 2, 1), palette)
	img.Pix[0] = 0
	img.Pix[1] = 1

	g, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	if g.Mode != ModeIndexed {
		t.Errorf("Mode: got %s, want indexed", g.Mode)
	}
	if len(g.Palette) != 2 {
		t.Errorf("len(Palette): got %d, want 2", len(g.Palette))
	}
	if got := g.At(1, 0); got != NewPixel(255, 0, 0, 255) {
		t.Errorf("At(1,0): got %08X, want red", uint32(got))
	}
}

func TestFromImage_EmptyBounds(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 0, 0))
	if _, err := FromImage(img); err == nil {
		t.Error("expected error for empty image, got nil")
	}
}

func TestEqual(t *testing.T) {
	a, _ := FromImage(createGrayImage(2, 2, []uint8{0, 85, 170, 255}))
	b, _ := FromImage(createGrayImage(2, 2, []uint8{0, 85, 170, 255}))
	c, _ := FromImage(createGrayImage(2, 2, []uint8{0, 85, 170, 254}))
	d, _ := FromImage(createGrayImage(4, 1, []uint8{0, 85, 170, 255}))

	if !a.Equal(b) {
		t.Error("identical grids compare unequal")
	}
	if a.Equal(c) {
		t.Error("grids differing by one pixel compare equal")
	}
	if a.Equal(d) {
		t.Error("grids with different dimensions compare equal")
	}
	if a.Equal(nil) {
		t.Error("grid compares equal to nil")
	}
}

func TestEqual_ModeIgnored(t *testing.T) {
	// A grayscale source and a color source with identical pixel content
	// must compare equal: equality is over the pixel sequence only.
	gray, _ := FromImage(createGrayImage(2, 1, []uint8{7, 7}))
	rgb, _ := FromImage(createColorImage(2, 1, color.NRGBA{R: 7, G: 7, B: 7, A: 255}))

	if !gray.Equal(rgb) {
		t.Error("same pixels with different modes compare unequal")
	}
}

func TestUniqueColors(t *testing.T) {
	g, _ := FromImage(createGrayImage(4, 2, []uint8{0, 85, 170, 255}))
	if got := g.UniqueColors(); got != 4 {
		t.Errorf("UniqueColors: got %d, want 4", got)
	}

	solid, _ := FromImage(createColorImage(10, 10, color.NRGBA{R: 1, G: 2, B: 3, A: 255}))
	if got := solid.UniqueColors(); got != 1 {
		t.Errorf("UniqueColors for solid image: got %d, want 1", got)
	}
}

func TestGrayLevels(t *testing.T) {
	g, _ := FromImage(createGrayImage(4, 2, []uint8{255, 0, 170, 85}))

	got := g.GrayLevels()
	want := []uint8{0, 85, 170, 255}
	if len(got) != len(want) {
		t.Fatalf("GrayLevels length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GrayLevels[%d]: got %d, want %d (must be ascending)", i, got[i], want[i])
		}
	}
}

func TestToImage_RoundTrip(t *testing.T) {
	sources := map[string]image.Image{
		"grayscale": createGrayImage(3, 3, []uint8{0, 128, 255}),
		"rgb":       createColorImage(3, 3, color.NRGBA{R: 40, G: 80, B: 120, A: 255}),
	}
	for name, src := range sources {
		original, err := FromImage(src)
		if err != nil {
			t.Fatalf("%s: FromImage failed: %v", name, err)
		}
		rebuilt, err := FromImage(original.ToImage())
		if err != nil {
			t.Fatalf("%s: FromImage of ToImage failed: %v", name, err)
		}
		if !original.Equal(rebuilt) {
			t.Errorf("%s: ToImage round trip changed pixel data", name)
		}
	}
}

func TestToImage_PalettedRoundTrip(t *testing.T) {
	palette := color.Palette{
		color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		color.NRGBA{R: 9, G: 9, B: 9, A: 255},
		color.NRGBA{R: 200, G: 100, B: 50, A: 128},
	}
	img := image.NewPaletted(image.Rect(0, 0, 3, 1), palette)
	img.Pix[0], img.Pix[1], img.Pix[2] = 2, 1, 0

	original, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	rebuilt, err := FromImage(original.ToImage())
	if err != nil {
		t.Fatalf("FromImage of ToImage failed: %v", err)
	}
	if !original.Equal(rebuilt) {
		t.Error("paletted ToImage round trip changed pixel data")
	}
}
