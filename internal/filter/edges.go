package filter

import (
	"math"

	"github.com/pixelpaint/pbnkit/internal/raster"
)

// DefaultEdgeThreshold is the summed per-channel difference above which a
// neighbor contrast counts as an edge.
const DefaultEdgeThreshold = 30

// EdgeMask flags edge pixels of the buffer.
//
// An interior pixel is an edge when the summed absolute RGB difference to
// any of its 8 neighbors exceeds the threshold. Border pixels are never
// edges. A threshold <= 0 falls back to DefaultEdgeThreshold.
//
// The mask is indexed by pixel index (y*width+x).
func EdgeMask(src *raster.Buffer, threshold int) []bool {
	if threshold <= 0 {
		threshold = DefaultEdgeThreshold
	}
	mask := make([]bool, src.Width*src.Height)
	if src.Empty() {
		return mask
	}

	for y := 1; y < src.Height-1; y++ {
		for x := 1; x < src.Width-1; x++ {
			r, g, b, _ := src.RGBA(x, y)
		neighbors:
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nr, ng, nb, _ := src.RGBA(x+dx, y+dy)
					diff := absInt(int(r)-int(nr)) + absInt(int(g)-int(ng)) + absInt(int(b)-int(nb))
					if diff > threshold {
						mask[src.Index(x, y)] = true
						break neighbors
					}
				}
			}
		}
	}
	return mask
}

// gradient holds the Sobel response of a buffer's luminance plane.
type gradient struct {
	mag []float64 // gradient magnitude per pixel, 0..~1443
	dir []float64 // gradient direction per pixel, radians
}

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// sobelGradient computes per-pixel gradient magnitude and direction with
// the Sobel operator over BT.601 luminance. Border handling clamps
// coordinates (replicated edges).
func sobelGradient(src *raster.Buffer) gradient {
	w, h := src.Width, src.Height
	luma := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.RGBA(x, y)
			luma[y*w+x] = 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
		}
	}

	grad := gradient{
		mag: make([]float64, w*h),
		dir: make([]float64, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					px := clamp(x+kx, 0, w-1)
					py := clamp(y+ky, 0, h-1)
					v := luma[py*w+px]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			grad.mag[y*w+x] = math.Hypot(gx, gy)
			grad.dir[y*w+x] = math.Atan2(gy, gx)
		}
	}
	return grad
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
