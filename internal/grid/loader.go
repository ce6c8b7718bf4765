package grid

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
)

// SourceInfo contains metadata about the image file a grid was built from.
//
// The pipeline reports these values alongside the compression outcome; in
// particular SizeBytes is the baseline the compression ratio is computed
// against.
type SourceInfo struct {
	// Path is the file path the image was loaded from.
	Path string `json:"path"`

	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif", or
	// "unknown". Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// Mode is the grid's color mode name, e.g. "grayscale" or "rgb".
	Mode string `json:"mode"`

	// UniqueColors is the number of distinct pixel values in the image.
	UniqueColors int `json:"unique_colors"`

	// SizeBytes is the size of the source file on disk in bytes.
	SizeBytes int64 `json:"size_bytes"`
}

// Load reads an image file, builds its canonical grid, and collects the
// source metadata the pipeline reports on.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats
//     are PNG, JPEG, and GIF.
//
// Returns:
//   - *Grid: The canonical pixel grid for the decoded image.
//   - *SourceInfo: Metadata including dimensions, mode, and file size.
//   - error: Non-nil if the file cannot be opened, decoded, or stat'd.
func Load(path string) (*Grid, *SourceInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	g, err := FromImage(img)
	if err != nil {
		return nil, nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	return g, &SourceInfo{
		Path:         path,
		Width:        g.Width,
		Height:       g.Height,
		Format:       format,
		Mode:         g.Mode.String(),
		UniqueColors: g.UniqueColors(),
		SizeBytes:    stat.Size(),
	}, nil
}
