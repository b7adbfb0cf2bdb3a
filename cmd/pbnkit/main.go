package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/disintegration/imaging"

	"github.com/pixelpaint/pbnkit/internal/boundary"
	"github.com/pixelpaint/pbnkit/internal/filter"
	"github.com/pixelpaint/pbnkit/internal/label"
	"github.com/pixelpaint/pbnkit/internal/pipeline"
	"github.com/pixelpaint/pbnkit/internal/raster"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("pbnkit %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	// Configure logging to stderr (stdout stays clean for piping)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	var (
		inPath    = flag.String("in", "", "input image path (png/jpeg)")
		outPath   = flag.String("out", "pbn.png", "output preview path")
		colors    = flag.Int("colors", pipeline.DefaultColors, "palette size for median-cut quantization")
		outline   = flag.String("outline", "medium", "outline style: sharp, medium, round or smooth")
		minArea   = flag.Int("min-area", 5, "drop regions below this pixel count")
		circles   = flag.Bool("circles", false, "render circular regions as arcs")
		aa        = flag.String("aa", "off", "anti-aliasing: off, smart or mid")
		noise     = flag.String("noise", "off", "noise reduction: off, low or high")
		upscale   = flag.Int("upscale", 1, "upscale factor: 1, 2 or 4")
		badge     = flag.String("badge", "plain", "numeral badge: plain, circle, square, outline or bubble")
		fontSize  = flag.Float64("font-size", 0, "numeral height in pixels (0 = font native)")
		thickness = flag.Int("thickness", 0, "outline width override in pixels")
		svgPath   = flag.String("svg", "", "also write the outlines as SVG to this path")
	)
	flag.Parse()

	if *inPath == "" {
		log.Fatalf("missing required flag -in (see --help)")
	}

	cfg, err := buildConfig(*colors, *outline, *minArea, *circles, *aa, *noise, *upscale, *badge, *fontSize, *thickness)
	if err != nil {
		log.Fatalf("invalid flags: %v", err)
	}

	img, err := imaging.Open(*inPath)
	if err != nil {
		log.Fatalf("failed to open input image: %v", err)
	}

	debug := os.Getenv("PBNKIT_LOG_LEVEL") == "debug"
	var progress pipeline.Progress
	if debug {
		log.Printf("pbnkit v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		progress = func(stage string, pct int) {
			log.Printf("%s: %d%%", stage, pct)
		}
	}

	res, err := pipeline.Run(raster.FromImage(img), cfg, progress)
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}
	if debug {
		log.Printf("detected %d regions, %d outlines, %d numbered colors",
			len(res.Regions), len(res.Outlines), len(res.Legend))
	}

	if err := imaging.Save(res.Preview.ToImage(), *outPath); err != nil {
		log.Fatalf("failed to save preview: %v", err)
	}
	if *svgPath != "" {
		if err := writeSVG(*svgPath, res); err != nil {
			log.Fatalf("failed to write SVG: %v", err)
		}
	}
}

func buildConfig(colors int, outline string, minArea int, circles bool, aa, noise string, upscale int, badge string, fontSize float64, thickness int) (pipeline.Config, error) {
	cfg := pipeline.Config{
		Colors:           colors,
		MinRegionArea:    minArea,
		DetectCircles:    circles,
		Upscale:          upscale,
		FontSize:         fontSize,
		OutlineThickness: thickness,
	}

	switch strings.ToLower(outline) {
	case "sharp":
		cfg.Outline = boundary.StyleSharp
	case "medium":
		cfg.Outline = boundary.StyleMedium
	case "round":
		cfg.Outline = boundary.StyleRound
	case "smooth":
		cfg.Outline = boundary.StyleSmooth
	default:
		return cfg, fmt.Errorf("unknown outline style %q", outline)
	}

	switch strings.ToLower(aa) {
	case "off":
		cfg.AntiAlias = filter.AAOff
	case "smart":
		cfg.AntiAlias = filter.AASmart
	case "mid":
		cfg.AntiAlias = filter.AAMid
	default:
		return cfg, fmt.Errorf("unknown anti-aliasing level %q", aa)
	}

	switch strings.ToLower(noise) {
	case "off":
		cfg.NoiseReduction = filter.NoiseOff
	case "low":
		cfg.NoiseReduction = filter.NoiseLow
	case "high":
		cfg.NoiseReduction = filter.NoiseHigh
	default:
		return cfg, fmt.Errorf("unknown noise-reduction level %q", noise)
	}

	switch strings.ToLower(badge) {
	case "plain":
		cfg.Badge = label.BadgePlain
	case "circle":
		cfg.Badge = label.BadgeCircle
	case "square":
		cfg.Badge = label.BadgeSquare
	case "outline":
		cfg.Badge = label.BadgeOutline
	case "bubble":
		cfg.Badge = label.BadgeBubble
	default:
		return cfg, fmt.Errorf("unknown badge style %q", badge)
	}
	return cfg, nil
}

// writeSVG dumps the outline paths as an SVG document. This is CLI-level
// glue; the engine itself only produces path segments.
func writeSVG(path string, res *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	canvas := svg.New(f)
	canvas.Start(res.Quantized.Width, res.Quantized.Height)
	for _, p := range res.Outlines {
		fill := fmt.Sprintf("fill:rgb(%d,%d,%d);stroke:rgb(40,40,40)", p.R, p.G, p.B)
		if p.IsCircle && len(p.Segments) == 1 {
			seg := p.Segments[0]
			canvas.Circle(int(seg.Center.X), int(seg.Center.Y), int(seg.Radius), fill)
			continue
		}
		pts := boundary.Flatten(p, 10)
		xs := make([]int, len(pts))
		ys := make([]int, len(pts))
		for i, pt := range pts {
			xs[i] = int(pt.X)
			ys[i] = int(pt.Y)
		}
		canvas.Polygon(xs, ys, fill)
	}
	for _, pl := range res.Labels {
		canvas.Text(int(pl.At.X), int(pl.At.Y), fmt.Sprintf("%d", pl.Number),
			"text-anchor:middle;font-size:13px;fill:rgb(40,40,40)")
	}
	canvas.End()
	return nil
}

func printHelp() {
	fmt.Println("pbnkit - paint-by-numbers generator")
	fmt.Println()
	fmt.Println("Usage: pbnkit -in <image> [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -in path         Input image (png/jpeg), required")
	fmt.Println("  -out path        Output preview image (default pbn.png)")
	fmt.Println("  -colors n        Palette size (default 16)")
	fmt.Println("  -outline style   Outline style: sharp, medium, round, smooth (default medium)")
	fmt.Println("  -min-area n      Drop regions below n pixels (default 5)")
	fmt.Println("  -circles         Render circular regions as arcs")
	fmt.Println("  -aa level        Anti-aliasing: off, smart, mid (default off)")
	fmt.Println("  -noise level     Noise reduction: off, low, high (default off)")
	fmt.Println("  -upscale n       Upscale factor: 1, 2, 4 (default 1)")
	fmt.Println("  -badge style     Numeral badge: plain, circle, square, outline, bubble")
	fmt.Println("  -font-size n     Numeral height in pixels")
	fmt.Println("  -thickness n     Outline width override in pixels")
	fmt.Println("  -svg path        Also write outlines as SVG")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  PBNKIT_LOG_LEVEL=debug    Enable debug logging")
}
