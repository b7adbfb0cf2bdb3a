// Package pipeline sequences the paint-by-numbers stages: filtering,
// quantization, region detection, outline tracing and numeral placement.
// It is the only package external collaborators call.
package pipeline

import (
	"fmt"

	"github.com/pixelpaint/pbnkit/internal/boundary"
	"github.com/pixelpaint/pbnkit/internal/filter"
	"github.com/pixelpaint/pbnkit/internal/label"
	"github.com/pixelpaint/pbnkit/internal/quantize"
	"github.com/pixelpaint/pbnkit/internal/region"
	"github.com/pixelpaint/pbnkit/internal/raster"
)

// QuantizerMode selects the palette-reduction algorithm.
type QuantizerMode int

const (
	// QuantMedianCut splits a 3D color histogram at population medians.
	QuantMedianCut QuantizerMode = iota
	// QuantFrequency keeps the 32 most frequent rounded colors.
	QuantFrequency
)

// FillMode selects how region fills are composited into the preview.
type FillMode int

const (
	// FillMerge paints every region fill into one layer.
	FillMerge FillMode = iota
	// FillNoOverlap erodes each fill by one pixel at region boundaries so
	// adjacent fills never touch, leaving a white seam for the outline.
	FillNoOverlap
	// FillSingle paints only the largest region, for inspecting one layer.
	FillSingle
)

// StrokeMode selects the outline weight preset.
type StrokeMode int

const (
	// StrokeMedium draws 2 px outlines.
	StrokeMedium StrokeMode = iota
	// StrokeHeavy draws 3 px outlines.
	StrokeHeavy
	// StrokeThin draws 1 px outlines.
	StrokeThin
	// StrokeCenterline draws 1 px outlines over aggressively simplified
	// contours, approximating a centerline sketch.
	StrokeCenterline
)

// Simplification tolerance used by the centerline stroke preset.
const centerlineTolerance = 2.5

// DefaultColors is the palette size used when Config.Colors is zero.
const DefaultColors = 16

// Config holds every knob of a pipeline run. All behavior is controlled
// here; the engine reads no environment or global state.
type Config struct {
	// Colors is the target palette size for the median-cut quantizer.
	// Zero means DefaultColors. Ignored by the frequency quantizer,
	// which always caps at 32.
	Colors int

	// Quantizer selects the palette-reduction algorithm.
	Quantizer QuantizerMode

	// Outline is the corner rendering style for traced boundaries.
	Outline boundary.Style

	// MinRegionArea drops regions below this pixel count from the
	// outline and label output. The legacy presets are 0, 5 and 90.
	MinRegionArea int

	// DetectCircles renders sufficiently circular regions as arcs.
	DetectCircles bool

	// AntiAlias conditions the input before quantization.
	AntiAlias filter.AntiAliasLevel

	// NoiseReduction conditions the input before quantization.
	NoiseReduction filter.NoiseLevel

	// Upscale enlarges the input by 2 or 4 before processing. Zero or 1
	// leaves the input size unchanged.
	Upscale int

	// Badge decorates the numerals drawn on the preview.
	Badge label.BadgeStyle

	// FontSize is the numeral glyph height in pixels; zero uses the
	// font's native size.
	FontSize float64

	// OutlineThickness overrides the stroke preset's line width when
	// positive.
	OutlineThickness int

	// Fill selects the preview fill compositing mode.
	Fill FillMode

	// Stroke selects the preview outline weight preset.
	Stroke StrokeMode
}

// Progress receives stage milestones: quantization completes around 30,
// the region scan advances 30 to 70, and numbering advances 70 to 100.
// It runs inline on the calling goroutine and must not block.
type Progress func(stage string, pct int)

// ColorNumber is one legend entry: the numeral shared by every region of
// one quantized color.
type ColorNumber struct {
	R, G, B uint8
	Number  int
}

// Result bundles every artifact of a pipeline run.
type Result struct {
	// Quantized is the palette-reduced working buffer.
	Quantized *raster.Buffer

	// Regions is the detected region set, discovery order.
	Regions []*region.Region

	// Outlines holds one styled path per region that survived the
	// minimum-area filter.
	Outlines []boundary.Path

	// Labels holds one numeral placement per outlined region. The numeral
	// identifies the region's color, not the region: same-colored regions
	// share a number. Numbers start from 1 in the order colors first
	// appear in the outline list.
	Labels []label.Placement

	// Legend maps each numbered color to its numeral, in number order.
	Legend []ColorNumber

	// Preview is the rendered paint-by-numbers sheet: fills, strokes
	// and numeral badges composited per the config.
	Preview *raster.Buffer
}

// Run executes the full pipeline over a copy of src.
//
// A nil or zero-area buffer yields an empty Result and no error. Invalid
// config values that have no safe fallback (an unsupported upscale factor)
// return an error before any work happens.
//
// # Algorithm
//
// The stages run strictly in sequence on the calling goroutine: noise
// reduction, anti-aliasing and upscaling condition the input; the quantizer
// reduces it to a bounded palette; the detector partitions the quantized
// pixels into regions; the tracer builds styled outline paths; the placer
// anchors one numeral per outlined region; finally the preview is rendered.
// Distinct runs on distinct buffers are safe to execute concurrently
// because nothing is shared between them.
func Run(src *raster.Buffer, cfg Config, progress Progress) (*Result, error) {
	res := &Result{}
	if src == nil || src.Empty() {
		return res, nil
	}

	colors := cfg.Colors
	if colors <= 0 {
		colors = DefaultColors
	}
	factor := cfg.Upscale
	if factor == 0 {
		factor = 1
	}

	work := filter.ReduceNoise(src, cfg.NoiseReduction)
	work = filter.AntiAlias(work, cfg.AntiAlias)
	work, err := filter.Upscale(work, factor)
	if err != nil {
		return nil, fmt.Errorf("failed to upscale input: %w", err)
	}

	switch cfg.Quantizer {
	case QuantFrequency:
		res.Quantized = quantize.Frequency(work)
	default:
		res.Quantized = quantize.MedianCut(work, colors)
	}
	report(progress, "quantize", 30)

	det := region.Detect(res.Quantized, region.Options{Progress: progress})
	res.Regions = det.Regions

	res.Outlines = boundary.Outline(det, boundary.Options{
		Style:             cfg.Outline,
		MinArea:           cfg.MinRegionArea,
		DetectCircles:     cfg.DetectCircles,
		SimplifyTolerance: strokeTolerance(cfg.Stroke),
	})

	res.Labels, res.Legend = placeLabels(det, res.Outlines, progress)
	res.Preview = renderPreview(det, res.Outlines, res.Labels, cfg)
	report(progress, "done", 100)
	return res, nil
}

// placeLabels anchors one numeral per outlined region and reports progress
// from 70 to 100. Numerals identify colors: each distinct region color gets
// the next number the first time it appears, and every later region of that
// color reuses it, so the painter reads one number per paint pot.
func placeLabels(det *region.Detection, outlines []boundary.Path, progress Progress) ([]label.Placement, []ColorNumber) {
	if len(outlines) == 0 {
		return nil, nil
	}
	byID := make(map[int32]*region.Region, len(det.Regions))
	for _, reg := range det.Regions {
		byID[reg.ID] = reg
	}

	numbers := make(map[[3]uint8]int)
	var legend []ColorNumber
	placements := make([]label.Placement, 0, len(outlines))
	for i, path := range outlines {
		reg := byID[path.RegionID]
		if reg == nil {
			continue
		}
		key := [3]uint8{reg.R, reg.G, reg.B}
		num, seen := numbers[key]
		if !seen {
			num = len(numbers) + 1
			numbers[key] = num
			legend = append(legend, ColorNumber{R: reg.R, G: reg.G, B: reg.B, Number: num})
		}

		pts := boundary.Flatten(path, 10)
		placements = append(placements, label.Placement{
			RegionID: reg.ID,
			Number:   num,
			At:       label.Anchor(reg, pts, det.Labels.Width),
		})
		report(progress, "number", 70+(i+1)*30/len(outlines))
	}
	return placements, legend
}

func strokeTolerance(mode StrokeMode) float64 {
	if mode == StrokeCenterline {
		return centerlineTolerance
	}
	return 0 // tracer default
}

func strokeThickness(cfg Config) int {
	if cfg.OutlineThickness > 0 {
		return cfg.OutlineThickness
	}
	switch cfg.Stroke {
	case StrokeHeavy:
		return 3
	case StrokeThin, StrokeCenterline:
		return 1
	default:
		return 2
	}
}

func report(p Progress, stage string, pct int) {
	if p != nil {
		p(stage, pct)
	}
}
