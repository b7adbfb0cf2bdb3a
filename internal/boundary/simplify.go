package boundary

import "math"

// DefaultSimplifyTolerance is the perpendicular-distance threshold used by
// the medium outline style.
const DefaultSimplifyTolerance = 1.0

// smoothSteps is the number of Catmull-Rom samples per segment (t step 0.1).
const smoothSteps = 10

// roundTension is the bezier control-point tension for the round style.
const roundTension = 0.3

// Simplify reduces a polyline with the Ramer-Douglas-Peucker algorithm.
//
// Points whose perpendicular distance from the chord between the current
// endpoints exceeds tol are kept; segments with no such point collapse to
// their two endpoints. A tol <= 0 falls back to DefaultSimplifyTolerance.
// Polylines with fewer than 3 points are returned unchanged.
func Simplify(pts []Point, tol float64) []Point {
	if tol <= 0 {
		tol = DefaultSimplifyTolerance
	}
	if len(pts) < 3 {
		return pts
	}
	out := make([]Point, 0, len(pts))
	out = append(out, pts[0])
	rdp(pts, 0, len(pts)-1, tol, &out)
	out = append(out, pts[len(pts)-1])
	return out
}

// rdp appends the interior points of pts[first..last] that survive
// simplification, in order, excluding both endpoints.
func rdp(pts []Point, first, last int, tol float64, out *[]Point) {
	if last-first < 2 {
		return
	}
	maxDist := 0.0
	maxIdx := first
	for i := first + 1; i < last; i++ {
		if d := perpendicularDistance(pts[i], pts[first], pts[last]); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	if maxDist <= tol {
		return
	}
	rdp(pts, first, maxIdx, tol, out)
	*out = append(*out, pts[maxIdx])
	rdp(pts, maxIdx, last, tol, out)
}

// perpendicularDistance is the distance from p to the line through a and b.
// When a and b coincide it degrades to the point distance.
func perpendicularDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / length
}

// Smooth replaces a closed polyline with Catmull-Rom spline samples.
//
// Each consecutive point quadruple contributes smoothSteps samples
// (t = 0..1 in steps of 0.1), producing a smooth replacement polyline.
// Indices wrap, so the input is treated as a closed contour. Polylines with
// fewer than 3 points are returned unchanged.
func Smooth(pts []Point) []Point {
	n := len(pts)
	if n < 3 {
		return pts
	}
	out := make([]Point, 0, n*smoothSteps)
	for i := 0; i < n; i++ {
		p0 := pts[(i-1+n)%n]
		p1 := pts[i]
		p2 := pts[(i+1)%n]
		p3 := pts[(i+2)%n]
		for s := 0; s < smoothSteps; s++ {
			t := float64(s) / float64(smoothSteps)
			out = append(out, catmullRom(p0, p1, p2, p3, t))
		}
	}
	return out
}

// catmullRom evaluates the uniform Catmull-Rom spline through p1..p2 at t.
func catmullRom(p0, p1, p2, p3 Point, t float64) Point {
	t2 := t * t
	t3 := t2 * t
	return Point{
		X: 0.5 * (2*p1.X + (p2.X-p0.X)*t +
			(2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 +
			(3*p1.X-p0.X-3*p2.X+p3.X)*t3),
		Y: 0.5 * (2*p1.Y + (p2.Y-p0.Y)*t +
			(2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 +
			(3*p1.Y-p0.Y-3*p2.Y+p3.Y)*t3),
	}
}

// bezierControls computes the two cubic-bezier control points for the edge
// from pts[i] to pts[i+1] of a closed contour, using the round style's
// fixed tension:
//
//	cp1 = P + (next - prev) * tension
//	cp2 = next - (nextnext - curr) * tension
func bezierControls(pts []Point, i int) (cp1, cp2 Point) {
	n := len(pts)
	prev := pts[(i-1+n)%n]
	curr := pts[i]
	next := pts[(i+1)%n]
	nextnext := pts[(i+2)%n]

	cp1 = Point{
		X: curr.X + (next.X-prev.X)*roundTension,
		Y: curr.Y + (next.Y-prev.Y)*roundTension,
	}
	cp2 = Point{
		X: next.X - (nextnext.X-curr.X)*roundTension,
		Y: next.Y - (nextnext.Y-curr.Y)*roundTension,
	}
	return cp1, cp2
}
