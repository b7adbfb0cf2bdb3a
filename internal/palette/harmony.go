package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Harmony builders rotate the seed's hue on the HSL wheel. Saturation and
// lightness are carried over unchanged so the generated colors read as a
// coherent set.

// Complementary returns the seed plus its 180-degree hue opposite.
func Complementary(name string, seed colorful.Color) Palette {
	return Palette{Name: name, Colors: rotateHues(seed, 0, 180)}
}

// Analogous returns the seed flanked by its 30-degree hue neighbors.
func Analogous(name string, seed colorful.Color) Palette {
	return Palette{Name: name, Colors: rotateHues(seed, -30, 0, 30)}
}

// Triadic returns three colors spaced evenly around the hue wheel.
func Triadic(name string, seed colorful.Color) Palette {
	return Palette{Name: name, Colors: rotateHues(seed, 0, 120, 240)}
}

func rotateHues(seed colorful.Color, offsets ...float64) []colorful.Color {
	h, s, l := seed.Hsl()
	out := make([]colorful.Color, 0, len(offsets))
	for _, off := range offsets {
		hue := math.Mod(h+off, 360)
		if hue < 0 {
			hue += 360
		}
		out = append(out, colorful.Hsl(hue, s, l).Clamped())
	}
	return out
}
