package palette

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelpaint/pbnkit/internal/raster"
)

// twoTone builds a buffer split between pure red and pure blue.
func twoTone(w, h int) *raster.Buffer {
	buf := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				buf.SetRGBA(x, y, 255, 0, 0, 255)
			} else {
				buf.SetRGBA(x, y, 0, 0, 255, 255)
			}
		}
	}
	return buf
}

func TestFromImage_TwoColors(t *testing.T) {
	p, err := FromImage("test", twoTone(40, 40), 2)
	require.NoError(t, err)
	require.Len(t, p.Colors, 2)

	// One cluster center must be near red, the other near blue.
	var sawRed, sawBlue bool
	for _, c := range p.Colors {
		if c.R > 0.9 && c.B < 0.1 {
			sawRed = true
		}
		if c.B > 0.9 && c.R < 0.1 {
			sawBlue = true
		}
	}
	assert.True(t, sawRed, "expected a red cluster, got %v", p.Hex())
	assert.True(t, sawBlue, "expected a blue cluster, got %v", p.Hex())
}

func TestFromImage_RejectsBadInput(t *testing.T) {
	_, err := FromImage("test", twoTone(10, 10), 0)
	assert.Error(t, err)

	_, err = FromImage("test", raster.New(10, 10), 3) // fully transparent
	assert.Error(t, err)
}

func TestFromImage_SkipsTransparentPixels(t *testing.T) {
	buf := twoTone(20, 20)
	// Hide the blue half behind zero alpha.
	for y := 0; y < 20; y++ {
		for x := 10; x < 20; x++ {
			buf.SetRGBA(x, y, 0, 0, 255, 0)
		}
	}

	p, err := FromImage("test", buf, 1)
	require.NoError(t, err)
	require.Len(t, p.Colors, 1)
	assert.Greater(t, p.Colors[0].R, 0.9, "palette must come from visible pixels only")
}

func TestFromImage_UniformImageExactColor(t *testing.T) {
	// With a single cluster no observation ever changes assignment, so the
	// color must come from the members themselves, not a leftover random
	// starting center.
	buf := raster.New(20, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			buf.SetRGBA(x, y, 255, 0, 0, 255)
		}
	}

	p, err := FromImage("test", buf, 1)
	require.NoError(t, err)
	require.Len(t, p.Colors, 1)
	assert.InDelta(t, 1.0, p.Colors[0].R, 0.01)
	assert.InDelta(t, 0.0, p.Colors[0].G, 0.01)
	assert.InDelta(t, 0.0, p.Colors[0].B, 0.01)
}

func TestDominant_FindsColors(t *testing.T) {
	p, err := Dominant("test", twoTone(64, 64), 2)
	require.NoError(t, err)
	assert.NotEmpty(t, p.Colors)

	_, err = Dominant("test", raster.New(0, 0), 2)
	assert.Error(t, err)
}

func TestSortByBrightness(t *testing.T) {
	p := Palette{Colors: []colorful.Color{
		{R: 1, G: 1, B: 1},
		{R: 0, G: 0, B: 0},
		{R: 0.5, G: 0.5, B: 0.5},
	}}
	p.SortByBrightness()

	require.Len(t, p.Colors, 3)
	assert.Equal(t, 0.0, p.Colors[0].R, "darkest first")
	assert.Equal(t, 1.0, p.Colors[2].R, "brightest last")
}

func TestHexAndRGB(t *testing.T) {
	p := Palette{Colors: []colorful.Color{{R: 1, G: 0, B: 0}}}
	assert.Equal(t, []string{"#ff0000"}, p.Hex())
	assert.Equal(t, [][3]uint8{{255, 0, 0}}, p.RGB())
}

func TestComplementary(t *testing.T) {
	red := colorful.Color{R: 1, G: 0, B: 0}
	p := Complementary("comp", red)
	require.Len(t, p.Colors, 2)

	h0, _, _ := p.Colors[0].Hsl()
	h1, _, _ := p.Colors[1].Hsl()
	assert.InDelta(t, 180, mod360(h1-h0), 1)
}

func TestAnalogous(t *testing.T) {
	p := Analogous("ana", colorful.Color{R: 0, G: 1, B: 0})
	require.Len(t, p.Colors, 3)

	h0, _, _ := p.Colors[0].Hsl()
	h1, _, _ := p.Colors[1].Hsl()
	h2, _, _ := p.Colors[2].Hsl()
	assert.InDelta(t, 30, mod360(h1-h0), 1)
	assert.InDelta(t, 30, mod360(h2-h1), 1)
}

func TestTriadic(t *testing.T) {
	p := Triadic("tri", colorful.Color{R: 0, G: 0, B: 1})
	require.Len(t, p.Colors, 3)

	h0, _, _ := p.Colors[0].Hsl()
	h1, _, _ := p.Colors[1].Hsl()
	assert.InDelta(t, 120, mod360(h1-h0), 1)
}

func mod360(d float64) float64 {
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d
}
