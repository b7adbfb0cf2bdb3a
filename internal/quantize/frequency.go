package quantize

import (
	"sort"

	"github.com/pixelpaint/pbnkit/internal/raster"
)

// Quantization step and palette cap for the frequency quantizer. The legacy
// layer modes all assume a step of 32 and at most 32 kept colors.
const (
	freqStep     = 32
	freqMaxKeeps = 32
)

// colorGroup is one rounded color bucket with its pixel population.
type colorGroup struct {
	r, g, b uint8
	count   int
	order   int // first-encountered rank, used for stable tie-breaking
}

// Frequency reduces src to at most 32 colors by population ranking.
//
// Every pixel's channels are rounded to the nearest multiple of 32, groups
// are ranked by pixel frequency, and only the top 32 groups are kept. Each
// source pixel then maps to the nearest kept color by Euclidean RGB
// distance. Alpha is copied through unchanged.
//
// Frequency ties rank by first-encountered key, so output is deterministic
// for identical input. Zero-area buffers are returned as an empty clone.
func Frequency(src *raster.Buffer) *raster.Buffer {
	if src.Empty() {
		return src.Clone()
	}

	groups := make(map[uint32]*colorGroup)
	orderSeen := 0
	for i := 0; i < len(src.Pix); i += 4 {
		r := roundToStep(src.Pix[i])
		g := roundToStep(src.Pix[i+1])
		b := roundToStep(src.Pix[i+2])
		key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
		grp, ok := groups[key]
		if !ok {
			grp = &colorGroup{r: r, g: g, b: b, order: orderSeen}
			orderSeen++
			groups[key] = grp
		}
		grp.count++
	}

	ranked := make([]*colorGroup, 0, len(groups))
	for _, grp := range groups {
		ranked = append(ranked, grp)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].order < ranked[j].order
	})
	if len(ranked) > freqMaxKeeps {
		ranked = ranked[:freqMaxKeeps]
	}

	out := src.Clone()
	for i := 0; i < len(out.Pix); i += 4 {
		r, g, b := out.Pix[i], out.Pix[i+1], out.Pix[i+2]
		best := ranked[0]
		bestDist := rgbDistSq(r, g, b, best.r, best.g, best.b)
		for _, grp := range ranked[1:] {
			if d := rgbDistSq(r, g, b, grp.r, grp.g, grp.b); d < bestDist {
				best = grp
				bestDist = d
			}
		}
		out.Pix[i] = best.r
		out.Pix[i+1] = best.g
		out.Pix[i+2] = best.b
	}
	return out
}

// roundToStep rounds a channel to the nearest multiple of 32, clamped to 255.
func roundToStep(v uint8) uint8 {
	rounded := (int(v) + freqStep/2) / freqStep * freqStep
	if rounded > 255 {
		rounded = 255
	}
	return uint8(rounded)
}

// rgbDistSq is the squared Euclidean distance between two RGB triples.
func rgbDistSq(r1, g1, b1, r2, g2, b2 uint8) int {
	dr := int(r1) - int(r2)
	dg := int(g1) - int(g2)
	db := int(b1) - int(b2)
	return dr*dr + dg*dg + db*db
}
