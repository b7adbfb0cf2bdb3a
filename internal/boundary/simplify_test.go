package boundary

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplify_CollinearCollapse(t *testing.T) {
	// Points along a straight line collapse to the two endpoints.
	pts := make([]Point, 20)
	for i := range pts {
		pts[i] = Point{X: float64(i), Y: 0}
	}

	out := Simplify(pts, 1.0)
	require.Len(t, out, 2)
	assert.Equal(t, pts[0], out[0])
	assert.Equal(t, pts[19], out[1])
}

func TestSimplify_KeepsCorners(t *testing.T) {
	// An L shape: the corner point deviates far from the chord and must
	// survive.
	var pts []Point
	for i := 0; i <= 10; i++ {
		pts = append(pts, Point{X: float64(i), Y: 0})
	}
	for i := 1; i <= 10; i++ {
		pts = append(pts, Point{X: 10, Y: float64(i)})
	}

	out := Simplify(pts, 1.0)
	require.Len(t, out, 3)
	assert.Equal(t, Point{X: 10, Y: 0}, out[1])
}

func TestSimplify_ShortInputUnchanged(t *testing.T) {
	pts := []Point{{0, 0}, {5, 5}}
	assert.Equal(t, pts, Simplify(pts, 1.0))
}

func TestSimplify_DefaultTolerance(t *testing.T) {
	// Sub-tolerance jitter is flattened with tol <= 0 (falls back to 1.0).
	var pts []Point
	for i := 0; i <= 10; i++ {
		jitter := 0.3 * float64(i%2)
		pts = append(pts, Point{X: float64(i), Y: jitter})
	}

	out := Simplify(pts, 0)
	assert.Len(t, out, 2)
}

func TestSmooth_ProducesDenserPolyline(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	out := Smooth(pts)

	assert.Len(t, out, len(pts)*smoothSteps)
}

func TestSmooth_PassesThroughControlPoints(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	out := Smooth(pts)

	// Catmull-Rom interpolates its control points: each input point appears
	// in the output (at t=0 of its segment).
	for _, p := range pts {
		found := false
		for _, q := range out {
			if math.Abs(q.X-p.X) < 1e-9 && math.Abs(q.Y-p.Y) < 1e-9 {
				found = true
				break
			}
		}
		assert.True(t, found, "input point (%v) must lie on the smoothed polyline", p)
	}
}

func TestSmooth_ShortInputUnchanged(t *testing.T) {
	pts := []Point{{0, 0}, {1, 1}}
	assert.Equal(t, pts, Smooth(pts))
}

func TestBezierControls_Tension(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	cp1, cp2 := bezierControls(pts, 0)
	// cp1 = P + (next - prev) * 0.3; prev wraps to (0,10).
	assert.InDelta(t, 0+(10-0)*0.3, cp1.X, 1e-9)
	assert.InDelta(t, 0+(0-10)*0.3, cp1.Y, 1e-9)
	// cp2 = next - (nextnext - curr) * 0.3.
	assert.InDelta(t, 10-(10-0)*0.3, cp2.X, 1e-9)
	assert.InDelta(t, 0-(10-0)*0.3, cp2.Y, 1e-9)
}

func TestPerpendicularDistance(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{"above horizontal chord", Point{5, 3}, Point{0, 0}, Point{10, 0}, 3},
		{"on the chord", Point{5, 0}, Point{0, 0}, Point{10, 0}, 0},
		{"degenerate chord", Point{3, 4}, Point{0, 0}, Point{0, 0}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, perpendicularDistance(tt.p, tt.a, tt.b), 1e-9)
		})
	}
}
