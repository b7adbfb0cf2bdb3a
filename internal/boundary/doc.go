// Package boundary extracts and shapes region outlines.
//
// Trace walks a region's outer contour with Moore-neighbor tracing over the
// detector's dense label map. The raw polyline can then be simplified
// (Ramer-Douglas-Peucker), smoothed (Catmull-Rom), rounded (cubic beziers
// with a fixed tension), or replaced by a fitted circle when the contour is
// circular enough.
//
// Outlines are produced fresh per call and are never cached on the Region.
// The output is a renderer-agnostic Path model (move/line/curve/arc
// segments); rasterizing or serializing a Path is the caller's concern.
package boundary
