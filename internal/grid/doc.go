// Package grid defines the canonical pixel representation the compression
// pipeline operates on.
//
// Every source image, whatever its decoded Go type, is normalized into a
// Grid: a row-major sequence of packed non-premultiplied 0xRRGGBBAA pixel
// values plus a color-mode classification. All downstream components work
// exclusively on grids, which gives the pipeline a single, exact definition
// of pixel equality.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left corner:
// X increases rightward, Y increases downward. Pixels[y*Width+x] addresses
// the pixel at (x, y).
//
// # Immutability
//
// A Grid is never mutated after construction. Candidate-generation
// strategies and the verifier read the same grid concurrently; the absence
// of shared mutable state is what makes that safe.
//
// # Equality
//
// Grid equality is element-wise sequence equality over the packed pixel
// values, with matching dimensions. There is no tolerance and no perceptual
// metric: equality here is the lossless guarantee itself.
package grid
