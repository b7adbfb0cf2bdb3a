// Package filter provides the stateless per-pixel and per-neighborhood
// transforms used for pre- and post-enhancement around the vectorization
// core: edge detection, anti-aliasing, noise reduction, unsharp-mask
// sharpening, Canny-style outline enhancement and multi-step upscaling.
//
// Every filter reads its input buffer and returns a new one; inputs are
// never mutated. The "off" level of each leveled filter returns a
// byte-for-byte identical copy. All filters leave the alpha channel
// unchanged except ExtractStrokes, whose defined output is transparency
// for non-edge pixels.
//
// The numeric presets (thresholds, sigmas, kernel sizes) live as named
// constants next to each filter.
package filter
