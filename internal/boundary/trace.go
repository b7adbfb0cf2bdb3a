package boundary

import (
	"github.com/pixelpaint/pbnkit/internal/region"
)

// Point is a pixel-space coordinate with fractional precision (smoothing
// and curve sampling produce sub-pixel points).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Clockwise Moore neighborhood starting east. The fixed scan order is what
// keeps the walk deterministic.
var mooreOrder = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// Trace extracts the ordered outer contour of a region.
//
// Parameters:
//   - labels: Dense label map from the detection pass.
//   - reg: The region to trace. Its bounding box restricts the start-pixel
//     search.
//
// Returns the boundary polyline in walk order. A contour that cannot close
// (image-edge clipping, single-pixel region) returns the partial walk
// collected so far rather than failing; callers must treat polylines with
// fewer than 3 points as non-fillable and skip shape rendering for them.
//
// # Algorithm
//
// Moore-neighbor tracing with a backtrack pixel. The walk starts at the
// topmost-leftmost boundary pixel with the backtrack one pixel to its west
// (guaranteed outside the region). Each step scans the 8 neighbors of the
// current pixel clockwise starting just past the backtrack direction; the
// first region pixel found becomes the new current, and the outside
// neighbor examined immediately before it becomes the new backtrack.
// Resuming the scan from the entry direction is what lets the walk follow
// concave turns instead of dead-ending. The walk closes when it stands on
// the start pixel about to repeat its first step; a step cap bounds
// degenerate contours.
func Trace(labels *region.LabelMap, reg *region.Region) []Point {
	if reg == nil || reg.Area == 0 || labels == nil || len(labels.IDs) == 0 {
		return nil
	}

	sx, sy, ok := findStart(labels, reg)
	if !ok {
		return nil
	}

	pts := make([]Point, 0, 64)
	pts = append(pts, Point{X: float64(sx), Y: float64(sy)})

	cx, cy := sx, sy
	bx, by := sx-1, sy
	var firstX, firstY int

	maxSteps := 4*reg.Area + 8
	for step := 0; step < maxSteps; step++ {
		nx, ny, nbx, nby, found := nextAround(labels, reg.ID, cx, cy, bx, by)
		if !found {
			// Single-pixel region: nothing to walk.
			break
		}
		if step == 0 {
			firstX, firstY = nx, ny
		} else if cx == sx && cy == sy && nx == firstX && ny == firstY {
			break
		}
		cx, cy, bx, by = nx, ny, nbx, nby
		pts = append(pts, Point{X: float64(cx), Y: float64(cy)})
	}

	// A closed walk re-enters the start before the stop check fires; drop
	// the duplicate so the polyline holds each contour pixel once.
	if len(pts) >= 2 && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// findStart locates the first boundary pixel of the region inside its
// bounding box, scanning in row-major order. Row-major order makes it the
// topmost-leftmost region pixel, so its west neighbor is outside the
// region and can seed the backtrack.
func findStart(labels *region.LabelMap, reg *region.Region) (int, int, bool) {
	for y := reg.Bounds.MinY; y <= reg.Bounds.MaxY; y++ {
		for x := reg.Bounds.MinX; x <= reg.Bounds.MaxX; x++ {
			if labels.ID(x, y) == reg.ID && isBoundaryPixel(labels, reg.ID, x, y) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// isBoundaryPixel reports whether (x, y) belongs to the region and has at
// least one Moore neighbor outside it (pixels beyond the image count as
// outside).
func isBoundaryPixel(labels *region.LabelMap, id int32, x, y int) bool {
	if labels.ID(x, y) != id {
		return false
	}
	for _, d := range mooreOrder {
		if labels.ID(x+d[0], y+d[1]) != id {
			return true
		}
	}
	return false
}

// nextAround scans the Moore neighborhood of (cx, cy) clockwise starting
// just past the backtrack (bx, by) and returns the first region pixel
// together with the neighbor examined immediately before it, which becomes
// the new backtrack. That neighbor is always outside the region, so every
// pixel the walk visits is a boundary pixel. The backtrack itself is
// skipped; it is known to be outside.
func nextAround(labels *region.LabelMap, id int32, cx, cy, bx, by int) (int, int, int, int, bool) {
	start := dirIndex(bx-cx, by-cy)
	px, py := bx, by
	for k := 1; k < 8; k++ {
		d := mooreOrder[(start+k)%8]
		nx, ny := cx+d[0], cy+d[1]
		if labels.ID(nx, ny) == id {
			return nx, ny, px, py, true
		}
		px, py = nx, ny
	}
	return 0, 0, 0, 0, false
}

// dirIndex maps a Moore neighbor offset to its position in the clockwise
// scan order.
func dirIndex(dx, dy int) int {
	for i, d := range mooreOrder {
		if d[0] == dx && d[1] == dy {
			return i
		}
	}
	return 0
}
