// Package palette provides named color palettes for the coloring UI:
// extraction from images (k-means or dominant-color) and harmony-based
// generation from a seed color.
//
// Palettes are presentation-side only. Region detection derives its working
// colors from the quantizer, never from a palette.
package palette

import (
	"fmt"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/pixelpaint/pbnkit/internal/raster"
)

// Palette is a named, ordered list of colors.
type Palette struct {
	Name   string
	Colors []colorful.Color
}

// Cap on the pixels fed to k-means. Larger images are subsampled.
const maxKMeansSamples = 12000

// FromImage extracts a k-color palette by k-means clustering over the
// buffer's opaque pixels. Transparent pixels are excluded so the palette
// reflects visible content only.
func FromImage(name string, src *raster.Buffer, k int) (Palette, error) {
	if k <= 0 {
		return Palette{}, fmt.Errorf("palette: color count %d must be positive", k)
	}
	dataset := samplePixels(src)
	if len(dataset) == 0 {
		return Palette{}, fmt.Errorf("palette: no opaque pixels to sample")
	}
	if k > len(dataset) {
		k = len(dataset)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return Palette{}, fmt.Errorf("palette: clustering failed: %w", err)
	}

	// Largest clusters first so dominant tones lead the palette.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	colors := make([]colorful.Color, 0, len(cc))
	for _, c := range cc {
		col, ok := clusterColor(c)
		if !ok {
			continue
		}
		colors = append(colors, col)
	}
	return Palette{Name: name, Colors: colors}, nil
}

// clusterColor derives a cluster's color from the mean of its member
// observations. Partition only moves centers when observations change
// cluster, so a cluster that converges immediately still carries its random
// initial center; averaging the members gives the true centroid. A cluster
// with no members falls back to its stored center.
func clusterColor(c clusters.Cluster) (colorful.Color, bool) {
	if len(c.Observations) == 0 {
		if len(c.Center) < 3 {
			return colorful.Color{}, false
		}
		return colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped(), true
	}
	var r, g, b float64
	for _, o := range c.Observations {
		coords := o.Coordinates()
		if len(coords) < 3 {
			continue
		}
		r += coords[0]
		g += coords[1]
		b += coords[2]
	}
	n := float64(len(c.Observations))
	return colorful.Color{R: r / n, G: g / n, B: b / n}.Clamped(), true
}

// Dominant extracts up to k colors using weighted dominant-color analysis.
// Unlike FromImage it favors perceptually prominent colors over cluster
// population, which works better on images with large flat backgrounds.
func Dominant(name string, src *raster.Buffer, k int) (Palette, error) {
	if k <= 0 {
		return Palette{}, fmt.Errorf("palette: color count %d must be positive", k)
	}
	if src.Empty() {
		return Palette{}, fmt.Errorf("palette: empty image")
	}

	found := dominantcolor.FindWeight(src.ToImage(), k)
	colors := make([]colorful.Color, 0, len(found))
	for _, c := range found {
		colors = append(colors, colorful.Color{
			R: float64(c.RGBA.R) / 255.0,
			G: float64(c.RGBA.G) / 255.0,
			B: float64(c.RGBA.B) / 255.0,
		}.Clamped())
	}
	if len(colors) == 0 {
		return Palette{}, fmt.Errorf("palette: no dominant colors found")
	}
	return Palette{Name: name, Colors: colors}, nil
}

// SortByBrightness orders the palette from darkest to brightest by linear
// luminance, so the first entry is the natural background color.
func (p *Palette) SortByBrightness() {
	slices.SortFunc(p.Colors, func(a, b colorful.Color) int {
		la, lb := linearLuma(a), linearLuma(b)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		default:
			return 0
		}
	})
}

// Hex returns the palette as "#rrggbb" strings in palette order.
func (p *Palette) Hex() []string {
	out := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = c.Hex()
	}
	return out
}

// RGB returns the palette as 8-bit channel triples in palette order.
func (p *Palette) RGB() [][3]uint8 {
	out := make([][3]uint8, len(p.Colors))
	for i, c := range p.Colors {
		r, g, b := c.RGB255()
		out[i] = [3]uint8{r, g, b}
	}
	return out
}

func linearLuma(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func samplePixels(src *raster.Buffer) clusters.Observations {
	if src.Empty() {
		return nil
	}
	step := 1
	if n := src.Width * src.Height; n > maxKMeansSamples {
		step = int(math.Sqrt(float64(n)/float64(maxKMeansSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, maxKMeansSamples)
	for y := 0; y < src.Height; y += step {
		for x := 0; x < src.Width; x += step {
			r, g, b, a := src.RGBA(x, y)
			if a == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r) / 255.0,
				float64(g) / 255.0,
				float64(b) / 255.0,
			})
		}
	}
	return dataset
}
