package region

import (
	"sort"

	"github.com/pixelpaint/pbnkit/internal/raster"
)

// DefaultTolerance is the per-channel color tolerance used by the flood
// fill: a pixel joins a region when each of its RGB channels is within this
// many levels of the seed pixel's channel.
const DefaultTolerance = 5

// minSizeFraction is the fraction of total image area below which a region
// is merged into an accepted neighbor.
const minSizeFraction = 0.001

// Point is a pixel-space coordinate. Region centers use fractional
// coordinates (centroid of a pixel set).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box with inclusive bounds.
type Rect struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// Region is a maximal set of connected, same-quantized-color pixels.
//
// Pixel indices are y*width+x, sorted ascending. Pixel sets of distinct
// Regions from one detection are disjoint and together cover every opaque
// pixel of the source buffer. Regions are mutated only during the merge
// step inside Detect; afterwards they are read-only.
type Region struct {
	// ID is unique within a detection, assigned in discovery order from 1.
	ID int32 `json:"id"`

	// R, G, B is the representative color, taken from the fill seed pixel.
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`

	// Pixels is the sorted list of pixel indices belonging to the region.
	Pixels []int `json:"-"`

	// Center is the centroid of the pixel set.
	Center Point `json:"center"`

	// Bounds is the tight bounding box of the pixel set.
	Bounds Rect `json:"bounds"`

	// Area is the pixel count, always len(Pixels).
	Area int `json:"area"`
}

// LabelMap is a dense pixel-to-region index: IDs[y*Width+x] holds the owning
// region's ID, or 0 for transparent pixels.
type LabelMap struct {
	Width  int
	Height int
	IDs    []int32
}

// ID returns the region ID at (x, y), or 0 when out of bounds.
func (m *LabelMap) ID(x, y int) int32 {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return 0
	}
	return m.IDs[y*m.Width+x]
}

// Detection is the result of one detection pass over one buffer.
type Detection struct {
	Regions []*Region
	Labels  *LabelMap
}

// Options configures a detection pass.
type Options struct {
	// Tolerance is the per-channel fill tolerance. Zero means
	// DefaultTolerance; negative disables tolerance (exact match only).
	Tolerance int

	// Progress, when non-nil, is invoked on the calling goroutine as the
	// row scan advances (30..70%). It must not block.
	Progress func(stage string, pct int)
}

func (o Options) tolerance() int {
	if o.Tolerance == 0 {
		return DefaultTolerance
	}
	if o.Tolerance < 0 {
		return 0
	}
	return o.Tolerance
}

// Detect partitions every opaque pixel of buf into Regions.
//
// The buffer is treated as already quantized: the flood fill groups
// 4-connected pixels whose RGB channels are each within the tolerance of
// the fill seed. After discovery, regions smaller than 0.1% of the image
// area are merged pixel-by-pixel into the accepted region with the nearest
// color (Euclidean RGB), processed largest-first so merge targets stay
// stable. An undersized region with no accepted region to merge into is
// kept rather than discarded.
//
// Edge cases: a zero-area buffer or a fully transparent buffer yields an
// empty (but non-nil) Detection. A uniform opaque buffer yields exactly one
// Region covering every pixel.
func Detect(buf *raster.Buffer, opts Options) *Detection {
	det := &Detection{
		Labels: &LabelMap{},
	}
	if buf.Empty() {
		return det
	}

	w, h := buf.Width, buf.Height
	det.Labels.Width = w
	det.Labels.Height = h
	det.Labels.IDs = make([]int32, w*h)

	tol := opts.tolerance()
	var regions []*Region
	var nextID int32 = 1

	stack := make([]int, 0, 256)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if det.Labels.IDs[idx] != 0 || !buf.Opaque(x, y) {
				continue
			}
			r := floodFill(buf, det.Labels, x, y, nextID, tol, stack)
			regions = append(regions, r)
			nextID++
		}
		if opts.Progress != nil {
			opts.Progress("scan", 30+(y+1)*40/h)
		}
	}

	minSize := int(float64(w*h) * minSizeFraction)
	regions = mergeUndersized(buf, det.Labels, regions, minSize)

	for _, r := range regions {
		finalize(r, w)
	}
	det.Regions = regions
	return det
}

// floodFill grows a region from the seed at (sx, sy) using an explicit
// stack; recursion would overflow on large regions. The bounding box is
// tracked during the fill.
func floodFill(buf *raster.Buffer, labels *LabelMap, sx, sy int, id int32, tol int, stack []int) *Region {
	w := buf.Width
	sr, sg, sb, _ := buf.RGBA(sx, sy)
	reg := &Region{
		ID: id,
		R:  sr, G: sg, B: sb,
		Bounds: Rect{MinX: sx, MinY: sy, MaxX: sx, MaxY: sy},
	}

	stack = stack[:0]
	stack = append(stack, sy*w+sx)
	labels.IDs[sy*w+sx] = id

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := idx%w, idx/w

		reg.Pixels = append(reg.Pixels, idx)
		if x < reg.Bounds.MinX {
			reg.Bounds.MinX = x
		}
		if x > reg.Bounds.MaxX {
			reg.Bounds.MaxX = x
		}
		if y < reg.Bounds.MinY {
			reg.Bounds.MinY = y
		}
		if y > reg.Bounds.MaxY {
			reg.Bounds.MaxY = y
		}

		// 4-connected neighbors only; diagonal connectivity would bridge
		// regions that share just a corner.
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+d[0], y+d[1]
			if !buf.In(nx, ny) {
				continue
			}
			nidx := ny*w + nx
			if labels.IDs[nidx] != 0 || !buf.Opaque(nx, ny) {
				continue
			}
			nr, ng, nb, _ := buf.RGBA(nx, ny)
			if absInt(int(nr)-int(sr)) > tol || absInt(int(ng)-int(sg)) > tol || absInt(int(nb)-int(sb)) > tol {
				continue
			}
			labels.IDs[nidx] = id
			stack = append(stack, nidx)
		}
	}
	return reg
}

// mergeUndersized dissolves regions below minSize into accepted regions.
//
// Accepted regions are those at or above minSize. Each pixel of an
// undersized region moves into the accepted region whose representative
// color is nearest to the pixel's own color. When nothing is accepted
// (the whole image is undersized) every region is kept so no pixel is lost.
func mergeUndersized(buf *raster.Buffer, labels *LabelMap, regions []*Region, minSize int) []*Region {
	var accepted, undersized []*Region
	for _, r := range regions {
		if len(r.Pixels) >= minSize {
			accepted = append(accepted, r)
		} else {
			undersized = append(undersized, r)
		}
	}
	if len(accepted) == 0 || len(undersized) == 0 {
		return regions
	}

	// Largest-first keeps merge targets stable when undersized regions
	// border each other.
	sort.SliceStable(undersized, func(i, j int) bool {
		return len(undersized[i].Pixels) > len(undersized[j].Pixels)
	})

	w := buf.Width
	for _, small := range undersized {
		for _, idx := range small.Pixels {
			x, y := idx%w, idx/w
			pr, pg, pb, _ := buf.RGBA(x, y)

			target := accepted[0]
			bestDist := colorDistSq(pr, pg, pb, target.R, target.G, target.B)
			for _, cand := range accepted[1:] {
				if d := colorDistSq(pr, pg, pb, cand.R, cand.G, cand.B); d < bestDist {
					target = cand
					bestDist = d
				}
			}

			target.Pixels = append(target.Pixels, idx)
			labels.IDs[idx] = target.ID
			if x < target.Bounds.MinX {
				target.Bounds.MinX = x
			}
			if x > target.Bounds.MaxX {
				target.Bounds.MaxX = x
			}
			if y < target.Bounds.MinY {
				target.Bounds.MinY = y
			}
			if y > target.Bounds.MaxY {
				target.Bounds.MaxY = y
			}
		}
	}
	return accepted
}

// finalize sorts the pixel set and recomputes area and centroid.
func finalize(r *Region, width int) {
	sort.Ints(r.Pixels)
	r.Area = len(r.Pixels)
	if r.Area == 0 {
		return
	}
	var sumX, sumY float64
	for _, idx := range r.Pixels {
		sumX += float64(idx % width)
		sumY += float64(idx / width)
	}
	r.Center = Point{X: sumX / float64(r.Area), Y: sumY / float64(r.Area)}
}

func colorDistSq(r1, g1, b1, r2, g2, b2 uint8) int {
	dr := int(r1) - int(r2)
	dg := int(g1) - int(g2)
	db := int(b1) - int(b2)
	return dr*dr + dg*dg + db*db
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
