package boundary

import (
	"math"

	"github.com/pixelpaint/pbnkit/internal/region"
)

// Op identifies a path segment kind.
type Op uint8

const (
	// MoveTo starts a subpath at To.
	MoveTo Op = iota
	// LineTo draws a straight segment to To.
	LineTo
	// CurveTo draws a cubic bezier to To with control points C1 and C2.
	CurveTo
	// ArcTo draws a full circle around Center with Radius.
	ArcTo
	// ClosePath closes the current subpath.
	ClosePath
)

// Segment is one drawing instruction of a Path.
type Segment struct {
	Op     Op
	To     Point
	C1, C2 Point // CurveTo control points
	Center Point // ArcTo center
	Radius float64
}

// Path is a renderer-agnostic outline for one region.
type Path struct {
	RegionID int32
	R, G, B  uint8
	IsCircle bool
	Segments []Segment
}

// Style selects how polygon corners are rendered.
type Style int

const (
	// StyleSharp draws the raw traced polyline with straight segments.
	StyleSharp Style = iota
	// StyleMedium simplifies (tolerance 1.0) and draws straight segments.
	StyleMedium
	// StyleRound draws cubic beziers between simplified points using a
	// fixed tension of 0.3.
	StyleRound
	// StyleSmooth resamples the simplified contour with a Catmull-Rom
	// spline and draws straight segments between the samples.
	StyleSmooth
)

// Options configures outline extraction.
type Options struct {
	// Style is the corner rendering style.
	Style Style

	// MinArea drops regions below this pixel count from the output
	// entirely. The legacy presets use 0, 5 and 90.
	MinArea int

	// DetectCircles replaces sufficiently circular contours with a single
	// arc instead of a polygon.
	DetectCircles bool

	// SimplifyTolerance overrides the RDP tolerance for the medium,
	// round and smooth styles. Zero means DefaultSimplifyTolerance.
	SimplifyTolerance float64
}

// Outline traces every region of a detection and builds styled paths.
//
// Regions below MinArea are dropped. Contours with fewer than 3 points are
// non-fillable and skipped without aborting the remaining regions. When
// DetectCircles is set, contours that classify as circles render as one arc.
func Outline(det *region.Detection, opts Options) []Path {
	if det == nil || len(det.Regions) == 0 {
		return nil
	}
	tol := opts.SimplifyTolerance
	if tol <= 0 {
		tol = DefaultSimplifyTolerance
	}

	paths := make([]Path, 0, len(det.Regions))
	for _, reg := range det.Regions {
		if reg.Area < opts.MinArea {
			continue
		}
		pts := Trace(det.Labels, reg)
		if len(pts) < 3 {
			continue
		}

		p := Path{RegionID: reg.ID, R: reg.R, G: reg.G, B: reg.B}
		if opts.DetectCircles {
			if c, ok := FitCircle(pts); ok {
				p.IsCircle = true
				p.Segments = []Segment{{Op: ArcTo, Center: c.Center, Radius: c.Radius}}
				paths = append(paths, p)
				continue
			}
		}
		p.Segments = BuildSegments(pts, opts.Style, tol)
		paths = append(paths, p)
	}
	return paths
}

// BuildSegments converts a closed contour polyline into path segments for
// the given style. Polylines with fewer than 3 points produce nil.
func BuildSegments(pts []Point, style Style, tol float64) []Segment {
	if len(pts) < 3 {
		return nil
	}

	switch style {
	case StyleMedium:
		pts = Simplify(pts, tol)
	case StyleSmooth:
		pts = Smooth(Simplify(pts, tol))
	case StyleRound:
		pts = Simplify(pts, tol)
		if len(pts) < 3 {
			return nil
		}
		segs := make([]Segment, 0, len(pts)+2)
		segs = append(segs, Segment{Op: MoveTo, To: pts[0]})
		for i := 0; i < len(pts); i++ {
			next := pts[(i+1)%len(pts)]
			cp1, cp2 := bezierControls(pts, i)
			segs = append(segs, Segment{Op: CurveTo, To: next, C1: cp1, C2: cp2})
		}
		segs = append(segs, Segment{Op: ClosePath})
		return segs
	}

	if len(pts) < 3 {
		return nil
	}
	segs := make([]Segment, 0, len(pts)+2)
	segs = append(segs, Segment{Op: MoveTo, To: pts[0]})
	for _, p := range pts[1:] {
		segs = append(segs, Segment{Op: LineTo, To: p})
	}
	segs = append(segs, Segment{Op: ClosePath})
	return segs
}

// Flatten converts a path into a closed polyline for rasterization,
// sampling curves and arcs at the given number of steps (minimum 4).
func Flatten(p Path, curveSteps int) []Point {
	if curveSteps < 4 {
		curveSteps = 4
	}
	var out []Point
	var cur Point
	for _, seg := range p.Segments {
		switch seg.Op {
		case MoveTo:
			cur = seg.To
			out = append(out, cur)
		case LineTo:
			cur = seg.To
			out = append(out, cur)
		case CurveTo:
			for s := 1; s <= curveSteps; s++ {
				t := float64(s) / float64(curveSteps)
				out = append(out, cubicBezier(cur, seg.C1, seg.C2, seg.To, t))
			}
			cur = seg.To
		case ArcTo:
			n := curveSteps * 4
			for s := 0; s < n; s++ {
				a := 2 * math.Pi * float64(s) / float64(n)
				out = append(out, Point{
					X: seg.Center.X + seg.Radius*math.Cos(a),
					Y: seg.Center.Y + seg.Radius*math.Sin(a),
				})
			}
			cur = out[len(out)-1]
		case ClosePath:
			// Polylines are implicitly closed.
		}
	}
	return out
}

// cubicBezier evaluates a cubic bezier at t.
func cubicBezier(p0, c1, c2, p1 Point, t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
	}
}
