// Package quantize reduces full-color raster buffers to a bounded palette.
//
// Two quantizers are provided:
//
//   - MedianCut: the primary quantizer. Builds a 3D histogram over
//     5-bit-reduced channels and repeatedly splits the largest color box
//     at the population median along its longest axis, producing up to K
//     representative colors.
//
//   - Frequency: a simpler quantizer used by the legacy layer modes. Groups
//     pixels by a fixed quantization step and keeps only the most frequent
//     groups.
//
// Both quantizers are deterministic: identical input always produces
// identical output, with frequency ties broken by first-encountered order.
// The alpha channel is passed through unchanged by both.
package quantize
