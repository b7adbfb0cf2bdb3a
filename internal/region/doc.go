// Package region labels connected components of like-colored pixels.
//
// Detect flood-fills a quantized buffer into Regions (4-connected components
// of near-identical color), then merges regions smaller than 0.1% of the
// image area into their nearest-colored accepted neighbor. The result
// partitions every opaque pixel of the source: each opaque pixel belongs to
// exactly one Region.
//
// Region membership is stored two ways: each Region carries its sorted pixel
// index list, and the Detection carries a dense LabelMap (one region ID per
// pixel) that downstream consumers use for O(1) membership tests during
// boundary tracing.
//
// Detectors hold no state across calls; a Detection owns only data derived
// from the single buffer it was produced from.
package region
