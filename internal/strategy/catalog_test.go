package strategy

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/png-squeeze/internal/grid"
)

func grayGrid(t *testing.T, levels []uint8) *grid.Grid {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = levels[i%len(levels)]
	}
	g, err := grid.FromImage(img)
	require.NoError(t, err)
	return g
}

// colorGrid builds an opaque color grid with exactly n distinct colors.
func colorGrid(t *testing.T, n int) *grid.Grid {
	t.Helper()
	side := 1
	for side*side < n {
		side++
	}
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < side*side; i++ {
		c := i % n
		img.SetNRGBA(i%side, i/side, color.NRGBA{
			R: uint8(c),
			G: uint8(c >> 8),
			B: uint8(c % 7),
			A: 255,
		})
	}
	g, err := grid.FromImage(img)
	require.NoError(t, err)
	require.Equal(t, n, g.UniqueColors(), "test fixture must have exactly n unique colors")
	return g
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestCatalogOrder(t *testing.T) {
	var got []string
	for _, s := range Catalog() {
		got = append(got, s.Name)
	}
	assert.Equal(t, []string{
		"direct",
		"palette",
		"filter-none",
		"filter-sub",
		"filter-up",
		"filter-average",
		"filter-paeth",
		"gray-4bit",
		"gray-2bit",
		"gray-1bit",
	}, got, "catalog declaration order is the tie-break order and must not drift")
}

func TestApplicable_PaletteExcludedOver256Colors(t *testing.T) {
	g := colorGrid(t, 300)

	got := names(Applicable(g))
	assert.NotContains(t, got, "palette")
	assert.Contains(t, got, "direct")
	assert.Contains(t, got, "filter-paeth")
}

func TestApplicable_PaletteIncludedAt256Colors(t *testing.T) {
	g := colorGrid(t, 256)
	assert.Contains(t, names(Applicable(g)), "palette")
}

func TestApplicable_GrayBitDepths(t *testing.T) {
	cases := []struct {
		name    string
		levels  []uint8
		include []string
		exclude []string
	}{
		{
			name:    "two levels allow every depth",
			levels:  []uint8{0, 255},
			include: []string{"gray-4bit", "gray-2bit", "gray-1bit"},
		},
		{
			name:    "five levels allow only 4 bits",
			levels:  []uint8{0, 10, 20, 30, 40},
			include: []string{"gray-4bit"},
			exclude: []string{"gray-2bit", "gray-1bit"},
		},
		{
			name:    "four levels allow 4 and 2 bits",
			levels:  []uint8{0, 85, 170, 255},
			include: []string{"gray-4bit", "gray-2bit"},
			exclude: []string{"gray-1bit"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := names(Applicable(grayGrid(t, tc.levels)))
			for _, name := range tc.include {
				assert.Contains(t, got, name)
			}
			for _, name := range tc.exclude {
				assert.NotContains(t, got, name)
			}
		})
	}
}

func TestApplicable_GrayStrategiesExcludedForColor(t *testing.T) {
	got := names(Applicable(colorGrid(t, 3)))
	assert.NotContains(t, got, "gray-4bit")
	assert.NotContains(t, got, "gray-2bit")
	assert.NotContains(t, got, "gray-1bit")
}

func TestApplicable_IndexesMatchCatalogPositions(t *testing.T) {
	catalog := Catalog()
	for _, e := range Applicable(grayGrid(t, []uint8{0, 255})) {
		require.Less(t, e.Index, len(catalog))
		assert.Equal(t, catalog[e.Index].Name, e.Name,
			"entry index must point at its own catalog position")
	}
}
