package pipeline

import (
	"math"

	"github.com/pixelpaint/pbnkit/internal/boundary"
	"github.com/pixelpaint/pbnkit/internal/label"
	"github.com/pixelpaint/pbnkit/internal/raster"
	"github.com/pixelpaint/pbnkit/internal/region"
)

// Preview stroke color.
const strokeGray = 40

// renderPreview composites fills, outline strokes and numeral badges into
// a white canvas the size of the detection.
func renderPreview(det *region.Detection, outlines []boundary.Path, labels []label.Placement, cfg Config) *raster.Buffer {
	w, h := det.Labels.Width, det.Labels.Height
	canvas := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			canvas.SetRGBA(x, y, 255, 255, 255, 255)
		}
	}
	if w == 0 || h == 0 {
		return canvas
	}

	paintFills(canvas, det, cfg.Fill)

	thickness := strokeThickness(cfg)
	for _, path := range outlines {
		drawPolyline(canvas, boundary.Flatten(path, 10), thickness)
	}

	for _, pl := range labels {
		label.Draw(canvas, pl.At, pl.Number, label.Options{
			Style:    cfg.Badge,
			FontSize: cfg.FontSize,
		})
	}
	return canvas
}

func paintFills(canvas *raster.Buffer, det *region.Detection, mode FillMode) {
	colors := make(map[int32][3]uint8, len(det.Regions))
	for _, reg := range det.Regions {
		colors[reg.ID] = [3]uint8{reg.R, reg.G, reg.B}
	}

	var only int32
	if mode == FillSingle {
		largest := -1
		for _, reg := range det.Regions {
			if reg.Area > largest {
				largest = reg.Area
				only = reg.ID
			}
		}
	}

	w, h := det.Labels.Width, det.Labels.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id := det.Labels.IDs[y*w+x]
			if id == 0 {
				continue
			}
			if mode == FillSingle && id != only {
				continue
			}
			if mode == FillNoOverlap && touchesOtherRegion(det.Labels, x, y, id) {
				continue
			}
			c := colors[id]
			canvas.SetRGB(x, y, c[0], c[1], c[2])
		}
	}
}

// touchesOtherRegion reports whether any 4-neighbor inside the image
// belongs to a different region, marking the one-pixel erosion band of
// the no-overlap fill mode.
func touchesOtherRegion(m *region.LabelMap, x, y int, id int32) bool {
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= m.Width || ny < 0 || ny >= m.Height {
			continue
		}
		if m.IDs[ny*m.Width+nx] != id {
			return true
		}
	}
	return false
}

// drawPolyline strokes a closed polyline onto the canvas with the given
// line width.
func drawPolyline(canvas *raster.Buffer, pts []boundary.Point, thickness int) {
	if len(pts) < 2 {
		return
	}
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		drawLine(canvas, a, b, thickness)
	}
}

// drawLine stamps the stroke color along the Bresenham walk from a to b.
func drawLine(canvas *raster.Buffer, a, b boundary.Point, thickness int) {
	x0, y0 := int(math.Round(a.X)), int(math.Round(a.Y))
	x1, y1 := int(math.Round(b.X)), int(math.Round(b.Y))

	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		stamp(canvas, x0, y0, thickness)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// stamp paints a thickness-wide square of stroke pixels at (x, y). Even
// widths extend one pixel further right and down.
func stamp(canvas *raster.Buffer, x, y, thickness int) {
	lo := -(thickness - 1) / 2
	hi := thickness / 2
	for dy := lo; dy <= hi; dy++ {
		for dx := lo; dx <= hi; dx++ {
			px, py := x+dx, y+dy
			if canvas.In(px, py) {
				canvas.SetRGBA(px, py, strokeGray, strokeGray, strokeGray, 255)
			}
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
