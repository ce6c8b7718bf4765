// Package codec provides the PNG encode and decode primitives the
// compression strategies are built from.
//
// Two encoders exist side by side. EncodeDirect delegates to the standard
// library PNG encoder at maximum effort and serves as the always-available
// fallback. The chunk writer behind EncodeFiltered, EncodePaletted, and
// EncodeGrayPacked emits PNG streams the standard encoder cannot: a fixed
// scanline filter across the whole image, sub-byte palette indices, and
// 1/2/4-bit grayscale packing. Its IDAT payload is deflated with
// klauspost/compress at the highest level.
//
// Decode is the single verification entry point. It operates entirely on
// in-memory buffers; no candidate is ever written to disk to be read back.
//
// All encoders are pure functions of an immutable grid and are safe to run
// concurrently.
package codec
