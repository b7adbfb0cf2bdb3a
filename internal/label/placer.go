package label

import (
	"math"

	"github.com/pixelpaint/pbnkit/internal/boundary"
	"github.com/pixelpaint/pbnkit/internal/region"
)

// maxAnchorSamples bounds the number of region pixels examined when
// searching for the most interior point.
const maxAnchorSamples = 100

// Placement is one numeral placed inside a region.
type Placement struct {
	RegionID int32          `json:"region_id"`
	Number   int            `json:"number"`
	At       boundary.Point `json:"at"`
}

// Anchor picks the label anchor point for a region.
//
// Parameters:
//   - reg: The region to label.
//   - outline: The region's traced boundary polyline.
//   - width: The source buffer width (pixel indices decode as y*width+x).
//
// Returns the sampled region pixel whose minimum Euclidean distance to any
// boundary point is largest, an approximate pole of inaccessibility. At
// most 100 pixels are sampled (stride max(1, pixelCount/100)). When the
// outline is empty the region centroid is returned instead.
func Anchor(reg *region.Region, outline []boundary.Point, width int) boundary.Point {
	if reg == nil || reg.Area == 0 {
		return boundary.Point{}
	}
	if len(outline) == 0 {
		return boundary.Point{X: reg.Center.X, Y: reg.Center.Y}
	}

	stride := reg.Area / maxAnchorSamples
	if stride < 1 {
		stride = 1
	}

	best := boundary.Point{X: reg.Center.X, Y: reg.Center.Y}
	bestDist := -1.0
	for i := 0; i < len(reg.Pixels); i += stride {
		idx := reg.Pixels[i]
		p := boundary.Point{X: float64(idx % width), Y: float64(idx / width)}

		minDist := math.MaxFloat64
		for _, b := range outline {
			if d := math.Hypot(p.X-b.X, p.Y-b.Y); d < minDist {
				minDist = d
			}
		}
		if minDist > bestDist {
			bestDist = minDist
			best = p
		}
	}
	return best
}
