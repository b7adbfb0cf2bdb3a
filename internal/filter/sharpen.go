package filter

import (
	"github.com/pixelpaint/pbnkit/internal/raster"
)

// Unsharp applies an unsharp-mask sharpening convolution.
//
// The 3x3 kernel is
//
//	-s -s -s
//	-s 1+8s -s
//	-s -s -s
//
// applied per color channel with clamped borders; alpha is untouched.
// A strength of 0 returns an unmodified copy.
func Unsharp(src *raster.Buffer, strength float64) *raster.Buffer {
	out := src.Clone()
	if src.Empty() || strength == 0 {
		return out
	}

	center := 1 + 8*strength
	w, h := src.Width, src.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sr, sg, sb float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					px := clamp(x+kx, 0, w-1)
					py := clamp(y+ky, 0, h-1)
					r, g, b, _ := src.RGBA(px, py)
					k := -strength
					if kx == 0 && ky == 0 {
						k = center
					}
					sr += k * float64(r)
					sg += k * float64(g)
					sb += k * float64(b)
				}
			}
			out.SetRGB(x, y, clampByte(sr), clampByte(sg), clampByte(sb))
		}
	}
	return out
}

// Edge-aware sharpening preset: base strength is scaled by the local
// normalized gradient magnitude and the per-channel contribution is capped
// so strong edges do not ring.
const (
	edgeSharpenBase = 0.8
	edgeSharpenCap  = 48.0
	// Sobel magnitude that counts as a "full" edge when normalizing.
	edgeSharpenFullMag = 255.0
)

// sharpenEdgeAware applies unsharp masking whose strength follows the local
// edge magnitude: flat areas are barely touched, edges are sharpened up to
// the base strength, and the per-channel delta is capped.
func sharpenEdgeAware(src *raster.Buffer) *raster.Buffer {
	out := src.Clone()
	if src.Empty() {
		return out
	}
	grad := sobelGradient(src)
	sharpened := Unsharp(src, edgeSharpenBase)

	w, h := src.Width, src.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			weight := grad.mag[y*w+x] / edgeSharpenFullMag
			if weight > 1 {
				weight = 1
			}
			if weight == 0 {
				continue
			}
			so := src.Offset(x, y)
			for c := 0; c < 3; c++ {
				orig := float64(src.Pix[so+c])
				sharp := float64(sharpened.Pix[so+c])
				delta := (sharp - orig) * weight
				if delta > edgeSharpenCap {
					delta = edgeSharpenCap
				} else if delta < -edgeSharpenCap {
					delta = -edgeSharpenCap
				}
				out.Pix[so+c] = clampByte(orig + delta)
			}
		}
	}
	return out
}
