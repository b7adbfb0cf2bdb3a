package quantize

import (
	"github.com/pixelpaint/pbnkit/internal/raster"
)

// Histogram resolution: 5 bits per channel, 32 levels per axis.
const (
	histBits   = 5
	histLevels = 1 << histBits
	histShift  = 8 - histBits
)

// colorBox is an axis-aligned range over the reduced-color histogram.
// Bounds are inclusive on both ends. Boxes produced by splitting always
// partition the full histogram, so every reduced color falls in exactly
// one box.
type colorBox struct {
	r1, r2 int
	g1, g2 int
	b1, b2 int
}

func (b colorBox) volume() int {
	return (b.r2 - b.r1 + 1) * (b.g2 - b.g1 + 1) * (b.b2 - b.b1 + 1)
}

func (b colorBox) contains(r, g, bl int) bool {
	return r >= b.r1 && r <= b.r2 && g >= b.g1 && g <= b.g2 && bl >= b.b1 && bl <= b.b2
}

// MedianCut reduces src to at most k representative colors.
//
// Parameters:
//   - src: Source buffer. Zero-area buffers are returned as an empty clone.
//   - k: Target color count. Values below 1 are treated as 1.
//
// Returns a new buffer of identical dimensions where every pixel's RGB has
// been replaced by one of at most k representative colors. Alpha is copied
// through pixel-for-pixel. The source is never modified.
//
// # Algorithm
//
//  1. Build a 3D histogram over 5-bit-reduced channels (32 levels/axis).
//  2. Start with one box shrunk to the populated extent of the histogram.
//  3. Repeatedly select the splittable box with the largest voxel volume
//     and split it along its longest populated axis at the histogram
//     median of pixel counts along that axis. Both halves are shrunk to
//     their populated extent before going back into the pool, so axis
//     selection always measures where the colors actually are, never the
//     empty space around them. The median split (rather than the midpoint
//     of the range) is what makes this median-cut instead of naive octree
//     splitting.
//  4. Stop when k boxes exist or no box can be split further. If k exceeds
//     the number of populated histogram cells the result simply has fewer
//     distinct colors.
//  5. Each final box is represented by its population-weighted mean color.
//     A box with zero population maps to black.
//
// Splitting is fully deterministic: volume ties are broken by box order,
// and boxes are scanned in creation order when mapping pixels.
func MedianCut(src *raster.Buffer, k int) *raster.Buffer {
	if src.Empty() {
		return src.Clone()
	}
	if k < 1 {
		k = 1
	}

	hist := make([]int, histLevels*histLevels*histLevels)
	for i := 0; i < len(src.Pix); i += 4 {
		r := int(src.Pix[i]) >> histShift
		g := int(src.Pix[i+1]) >> histShift
		b := int(src.Pix[i+2]) >> histShift
		hist[(r<<(2*histBits))|(g<<histBits)|b]++
	}

	full := colorBox{0, histLevels - 1, 0, histLevels - 1, 0, histLevels - 1}
	boxes := []colorBox{shrink(full, hist)}
	for len(boxes) < k {
		idx := pickLargestSplittable(boxes)
		if idx < 0 {
			break
		}
		left, right := splitAtMedian(boxes[idx], hist)
		boxes[idx] = left
		boxes = append(boxes, right)
	}

	// Representative color per box: population-weighted mean.
	reps := make([][3]uint8, len(boxes))
	for i, box := range boxes {
		reps[i] = boxMean(box, hist)
	}

	out := src.Clone()
	for i := 0; i < len(out.Pix); i += 4 {
		r := int(out.Pix[i]) >> histShift
		g := int(out.Pix[i+1]) >> histShift
		b := int(out.Pix[i+2]) >> histShift
		for bi, box := range boxes {
			if box.contains(r, g, b) {
				out.Pix[i] = reps[bi][0]
				out.Pix[i+1] = reps[bi][1]
				out.Pix[i+2] = reps[bi][2]
				break
			}
		}
	}
	return out
}

// pickLargestSplittable returns the index of the splittable box with the
// largest voxel volume, or -1 if no box can be split. Ties keep the earlier
// box.
func pickLargestSplittable(boxes []colorBox) int {
	best := -1
	bestVol := 0
	for i, box := range boxes {
		if !splittable(box) {
			continue
		}
		if v := box.volume(); v > bestVol {
			best = i
			bestVol = v
		}
	}
	return best
}

// splittable reports whether a shrunk box has population in at least two
// distinct slices along some axis. Because shrunk bounds land on populated
// slices, any extent means two populated slices.
func splittable(box colorBox) bool {
	return box.r2 > box.r1 || box.g2 > box.g1 || box.b2 > box.b1
}

// shrink tightens the box to the extent of its populated cells on each
// axis. A box with no population is returned unchanged; callers never split
// such a box.
func shrink(box colorBox, hist []int) colorBox {
	s := colorBox{
		r1: box.r2, r2: box.r1,
		g1: box.g2, g2: box.g1,
		b1: box.b2, b2: box.b1,
	}
	for r := box.r1; r <= box.r2; r++ {
		for g := box.g1; g <= box.g2; g++ {
			for b := box.b1; b <= box.b2; b++ {
				if hist[(r<<(2*histBits))|(g<<histBits)|b] == 0 {
					continue
				}
				if r < s.r1 {
					s.r1 = r
				}
				if r > s.r2 {
					s.r2 = r
				}
				if g < s.g1 {
					s.g1 = g
				}
				if g > s.g2 {
					s.g2 = g
				}
				if b < s.b1 {
					s.b1 = b
				}
				if b > s.b2 {
					s.b2 = b
				}
			}
		}
	}
	if s.r1 > s.r2 {
		return box
	}
	return s
}

// sliceCounts sums the histogram population per slice of the box along the
// given axis (0=R, 1=G, 2=B).
func sliceCounts(box colorBox, hist []int, axis int) []int {
	var lo, hi int
	switch axis {
	case 0:
		lo, hi = box.r1, box.r2
	case 1:
		lo, hi = box.g1, box.g2
	default:
		lo, hi = box.b1, box.b2
	}
	counts := make([]int, hi-lo+1)
	for r := box.r1; r <= box.r2; r++ {
		for g := box.g1; g <= box.g2; g++ {
			for b := box.b1; b <= box.b2; b++ {
				n := hist[(r<<(2*histBits))|(g<<histBits)|b]
				if n == 0 {
					continue
				}
				switch axis {
				case 0:
					counts[r-lo] += n
				case 1:
					counts[g-lo] += n
				default:
					counts[b-lo] += n
				}
			}
		}
	}
	return counts
}

// splitAtMedian splits a shrunk box along its longest populated axis at the
// population median. The split point is the first slice index where the
// cumulative population reaches half of the box total, clamped so both
// halves are non-empty ranges. Both halves are shrunk before returning.
func splitAtMedian(box colorBox, hist []int) (colorBox, colorBox) {
	axis := longestAxis(box)
	counts := sliceCounts(box, hist, axis)

	total := 0
	for _, c := range counts {
		total += c
	}
	half := total / 2
	cum := 0
	split := 0
	for i, c := range counts {
		cum += c
		if cum > half {
			split = i
			break
		}
	}
	if split >= len(counts)-1 {
		split = len(counts) - 2
	}
	if split < 0 {
		split = 0
	}

	left, right := box, box
	switch axis {
	case 0:
		left.r2 = box.r1 + split
		right.r1 = box.r1 + split + 1
	case 1:
		left.g2 = box.g1 + split
		right.g1 = box.g1 + split + 1
	default:
		left.b2 = box.b1 + split
		right.b1 = box.b1 + split + 1
	}
	return shrink(left, hist), shrink(right, hist)
}

func longestAxis(box colorBox) int {
	rLen := box.r2 - box.r1
	gLen := box.g2 - box.g1
	bLen := box.b2 - box.b1
	if rLen >= gLen && rLen >= bLen {
		return 0
	}
	if gLen >= bLen {
		return 1
	}
	return 2
}

// boxMean computes the population-weighted mean color of a box in 8-bit
// space. Reduced coordinates are expanded to the center of their 8-bit
// bucket. A zero-population box maps to black.
func boxMean(box colorBox, hist []int) [3]uint8 {
	var sumR, sumG, sumB, n int64
	for r := box.r1; r <= box.r2; r++ {
		for g := box.g1; g <= box.g2; g++ {
			for b := box.b1; b <= box.b2; b++ {
				c := int64(hist[(r<<(2*histBits))|(g<<histBits)|b])
				if c == 0 {
					continue
				}
				sumR += c * int64(r<<histShift|1<<(histShift-1))
				sumG += c * int64(g<<histShift|1<<(histShift-1))
				sumB += c * int64(b<<histShift|1<<(histShift-1))
				n += c
			}
		}
	}
	if n == 0 {
		return [3]uint8{0, 0, 0}
	}
	return [3]uint8{uint8(sumR / n), uint8(sumG / n), uint8(sumB / n)}
}
