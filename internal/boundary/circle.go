package boundary

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Circle-fit acceptance: at least this many boundary points, and a mean
// absolute radial deviation under this fraction of the fitted radius.
const (
	circleMinPoints    = 8
	circleMaxDeviation = 0.10
)

// Circle is a fitted circle in pixel space.
type Circle struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
}

// FitCircle fits a circle to a boundary polyline and classifies the shape.
//
// The fit is centroid-based: the center is the mean of the boundary points
// and the radius is the mean distance from the center to the points. The
// shape classifies as a circle only when the polyline has at least 8 points
// and the mean absolute deviation of the point distances from the fitted
// radius is below 10% of the radius. Everything else falls back to polygon
// rendering.
func FitCircle(pts []Point) (Circle, bool) {
	if len(pts) < circleMinPoints {
		return Circle{}, false
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}
	center := Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}

	dists := make([]float64, len(pts))
	for i, p := range pts {
		dists[i] = math.Hypot(p.X-center.X, p.Y-center.Y)
	}
	radius := stat.Mean(dists, nil)
	if radius == 0 {
		return Circle{}, false
	}

	var dev float64
	for _, d := range dists {
		dev += math.Abs(d - radius)
	}
	dev /= float64(len(dists))

	if dev >= circleMaxDeviation*radius {
		return Circle{}, false
	}
	return Circle{Center: center, Radius: radius}, true
}
