package label

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pixelpaint/pbnkit/internal/boundary"
	"github.com/pixelpaint/pbnkit/internal/raster"
)

// BadgeStyle selects how a numeral is decorated.
type BadgeStyle int

const (
	// BadgePlain draws the numeral directly, no decoration.
	BadgePlain BadgeStyle = iota
	// BadgeCircle draws the numeral on a filled circle.
	BadgeCircle
	// BadgeSquare draws the numeral on a filled square.
	BadgeSquare
	// BadgeOutline strokes the numeral with a contrasting halo.
	BadgeOutline
	// BadgeBubble draws the numeral on a radial-gradient disc.
	BadgeBubble
)

// Badge geometry relative to the font size. Circle and bubble radii use the
// lower factor, the square side the upper, keeping badges in the
// 0.8-1.6 × font size band.
const (
	badgeRadiusFactor = 0.8
	badgeSideFactor   = 1.6
)

// DefaultFontSize matches the native height of the basicfont face.
const DefaultFontSize = 13.0

// Options configures numeral rendering.
type Options struct {
	// Style is the badge decoration.
	Style BadgeStyle

	// FontSize is the target glyph height in pixels. Zero means
	// DefaultFontSize. The glyph raster is scaled from the 7x13 base face.
	FontSize float64
}

func (o Options) fontSize() float64 {
	if o.FontSize <= 0 {
		return DefaultFontSize
	}
	return o.FontSize
}

// Draw renders a numeral badge centered on the anchor point.
//
// The badge is clipped to the buffer; drawing a badge that overlaps the
// buffer edge is not an error. Pixels covered by the badge or glyph become
// opaque.
func Draw(dst *raster.Buffer, at boundary.Point, number int, opts Options) {
	if dst.Empty() {
		return
	}
	cx, cy := int(math.Round(at.X)), int(math.Round(at.Y))
	size := opts.fontSize()

	switch opts.Style {
	case BadgeCircle:
		fillCircle(dst, cx, cy, size*badgeRadiusFactor, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		strokeCircle(dst, cx, cy, size*badgeRadiusFactor, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	case BadgeSquare:
		fillSquare(dst, cx, cy, size*badgeSideFactor, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	case BadgeBubble:
		fillGradientCircle(dst, cx, cy, size*badgeRadiusFactor*1.2)
	}

	text := strconv.Itoa(number)
	dark := color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	if opts.Style == BadgeOutline {
		// Halo: the glyph drawn at the four cardinal offsets in white,
		// then once in the text color.
		light := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			drawNumeral(dst, text, cx+d[0], cy+d[1], light, size)
		}
	}
	drawNumeral(dst, text, cx, cy, dark, size)
}

// drawNumeral rasterizes text with the basicfont face, scales it to the
// requested size and composites it centered on (cx, cy).
func drawNumeral(dst *raster.Buffer, text string, cx, cy int, col color.NRGBA, size float64) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()
	if width <= 0 {
		return
	}

	glyph := image.NewNRGBA(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  glyph,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	scale := size / float64(height)
	gw, gh := width, height
	var src *image.NRGBA
	if math.Abs(scale-1) > 0.05 {
		gw = int(math.Round(float64(width) * scale))
		gh = int(math.Round(float64(height) * scale))
		if gw < 1 || gh < 1 {
			return
		}
		src = imaging.Resize(glyph, gw, gh, imaging.NearestNeighbor)
	} else {
		src = glyph
	}

	x0 := cx - gw/2
	y0 := cy - gh/2
	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			c := src.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			px, py := x0+x, y0+y
			if dst.In(px, py) {
				dst.SetRGBA(px, py, c.R, c.G, c.B, 255)
			}
		}
	}
}

func fillCircle(dst *raster.Buffer, cx, cy int, r float64, col color.NRGBA) {
	ri := int(math.Ceil(r))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) > r*r {
				continue
			}
			x, y := cx+dx, cy+dy
			if dst.In(x, y) {
				dst.SetRGBA(x, y, col.R, col.G, col.B, col.A)
			}
		}
	}
}

func strokeCircle(dst *raster.Buffer, cx, cy int, r float64, col color.NRGBA) {
	steps := int(2 * math.Pi * r * 2)
	if steps < 8 {
		steps = 8
	}
	for s := 0; s < steps; s++ {
		a := 2 * math.Pi * float64(s) / float64(steps)
		x := cx + int(math.Round(r*math.Cos(a)))
		y := cy + int(math.Round(r*math.Sin(a)))
		if dst.In(x, y) {
			dst.SetRGBA(x, y, col.R, col.G, col.B, col.A)
		}
	}
}

func fillSquare(dst *raster.Buffer, cx, cy int, side float64, col color.NRGBA) {
	half := int(math.Round(side / 2))
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			x, y := cx+dx, cy+dy
			if dst.In(x, y) {
				dst.SetRGBA(x, y, col.R, col.G, col.B, col.A)
			}
		}
	}
}

// fillGradientCircle draws the bubble badge: a disc shading radially from
// near-white at the center to mid gray at the rim.
func fillGradientCircle(dst *raster.Buffer, cx, cy int, r float64) {
	ri := int(math.Ceil(r))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			dist := math.Hypot(float64(dx), float64(dy))
			if dist > r {
				continue
			}
			t := dist / r
			v := uint8(250 - t*90)
			x, y := cx+dx, cy+dy
			if dst.In(x, y) {
				dst.SetRGBA(x, y, v, v, v, 255)
			}
		}
	}
}
