package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelpaint/pbnkit/internal/raster"
)

func fill(b *raster.Buffer, x1, y1, x2, y2 int, r, g, bl uint8) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			b.SetRGBA(x, y, r, g, bl, 255)
		}
	}
}

func TestDetect_EmptyBuffer(t *testing.T) {
	det := Detect(raster.New(0, 0), Options{})
	require.NotNil(t, det)
	assert.Empty(t, det.Regions)
}

func TestDetect_TransparentBuffer(t *testing.T) {
	det := Detect(raster.New(20, 20), Options{}) // all alpha 0
	assert.Empty(t, det.Regions, "no opaque pixels should yield no regions")
}

func TestDetect_UniformImage(t *testing.T) {
	b := raster.New(50, 50)
	fill(b, 0, 0, 50, 50, 128, 128, 128)

	det := Detect(b, Options{})
	require.Len(t, det.Regions, 1)
	assert.Equal(t, 2500, det.Regions[0].Area)
	assert.Equal(t, int32(1), det.Regions[0].ID)
	assert.InDelta(t, 24.5, det.Regions[0].Center.X, 0.001)
	assert.InDelta(t, 24.5, det.Regions[0].Center.Y, 0.001)
}

func TestDetect_SquareOnBackground(t *testing.T) {
	// 100x100 white with a 40x40 red square: exactly 2 regions.
	b := raster.New(100, 100)
	fill(b, 0, 0, 100, 100, 255, 255, 255)
	fill(b, 30, 30, 70, 70, 255, 0, 0)

	det := Detect(b, Options{})
	require.Len(t, det.Regions, 2)

	areas := map[int]bool{}
	for _, r := range det.Regions {
		areas[r.Area] = true
	}
	assert.True(t, areas[1600], "square region of 1600 pixels expected")
	assert.True(t, areas[8400], "background region of 8400 pixels expected")
}

func TestDetect_PartitionInvariant(t *testing.T) {
	b := raster.New(60, 60)
	fill(b, 0, 0, 60, 60, 0, 0, 255)
	fill(b, 0, 0, 30, 60, 0, 255, 0)
	fill(b, 10, 10, 20, 20, 255, 0, 0)

	det := Detect(b, Options{})

	seen := make(map[int]int32)
	for _, r := range det.Regions {
		for _, idx := range r.Pixels {
			if prev, dup := seen[idx]; dup {
				t.Fatalf("pixel %d in two regions (%d and %d)", idx, prev, r.ID)
			}
			seen[idx] = r.ID
		}
	}
	assert.Equal(t, 3600, len(seen), "union of regions must cover every opaque pixel")

	// LabelMap must agree with the pixel sets.
	for idx, id := range seen {
		assert.Equal(t, id, det.Labels.IDs[idx])
	}
}

func TestDetect_MergeMonotonicity(t *testing.T) {
	// A 4-pixel speck inside a large field is under 0.1% of 100x100 and
	// must be absorbed.
	b := raster.New(100, 100)
	fill(b, 0, 0, 100, 100, 200, 200, 200)
	fill(b, 50, 50, 52, 52, 10, 10, 10)

	det := Detect(b, Options{})
	minSize := int(float64(100*100) * minSizeFraction)

	require.Len(t, det.Regions, 1, "speck should merge into the field")
	for _, r := range det.Regions {
		assert.GreaterOrEqual(t, r.Area, minSize)
	}
	assert.Equal(t, 10000, det.Regions[0].Area)
}

func TestDetect_MergePicksNearestColor(t *testing.T) {
	// Left half dark, right half light, with a small dark-gray speck on
	// the boundary. It must merge into the dark region.
	b := raster.New(100, 100)
	fill(b, 0, 0, 50, 100, 20, 20, 20)
	fill(b, 50, 0, 100, 100, 240, 240, 240)
	fill(b, 49, 49, 51, 51, 40, 40, 40) // 2x2 speck straddling the seam

	det := Detect(b, Options{})
	require.Len(t, det.Regions, 2)

	var dark *Region
	for _, r := range det.Regions {
		if r.R < 128 {
			dark = r
		}
	}
	require.NotNil(t, dark)
	assert.Equal(t, int32(dark.ID), det.Labels.ID(50, 49),
		"speck pixels should join the nearest-colored region")
}

func TestDetect_AllUndersizedKept(t *testing.T) {
	// A checkerboard of tiny cells where nothing reaches minSize: every
	// region must be kept so no pixel is lost.
	b := raster.New(64, 64)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if (x/2+y/2)%2 == 0 {
				b.SetRGBA(x, y, 255, 255, 255, 255)
			} else {
				b.SetRGBA(x, y, 0, 0, 0, 255)
			}
		}
	}

	det := Detect(b, Options{})
	total := 0
	for _, r := range det.Regions {
		total += r.Area
	}
	assert.Equal(t, 64*64, total, "all pixels must remain covered")
}

func TestDetect_ToleranceGroupsNearColors(t *testing.T) {
	b := raster.New(10, 10)
	fill(b, 0, 0, 10, 10, 100, 100, 100)
	// Within the default tolerance of 5: same region.
	fill(b, 0, 0, 10, 5, 103, 98, 100)

	det := Detect(b, Options{})
	assert.Len(t, det.Regions, 1)
}

func TestDetect_DiagonalNotConnected(t *testing.T) {
	// Two 5x5 black squares touching only at a corner must be separate
	// regions under 4-connectivity. Tolerance is disabled so the white
	// background stays distinct.
	b := raster.New(10, 10)
	fill(b, 0, 0, 10, 10, 255, 255, 255)
	fill(b, 0, 0, 5, 5, 0, 0, 0)
	fill(b, 5, 5, 10, 10, 0, 0, 0)

	det := Detect(b, Options{Tolerance: -1})

	black := 0
	for _, r := range det.Regions {
		if r.R == 0 {
			black++
		}
	}
	assert.Equal(t, 2, black, "corner-touching squares are distinct regions")
}

func TestDetect_ProgressReported(t *testing.T) {
	b := raster.New(40, 40)
	fill(b, 0, 0, 40, 40, 90, 90, 90)

	var pcts []int
	Detect(b, Options{Progress: func(stage string, pct int) {
		assert.Equal(t, "scan", stage)
		pcts = append(pcts, pct)
	}})

	require.NotEmpty(t, pcts)
	assert.GreaterOrEqual(t, pcts[0], 30)
	assert.Equal(t, 70, pcts[len(pcts)-1])
	for i := 1; i < len(pcts); i++ {
		assert.GreaterOrEqual(t, pcts[i], pcts[i-1], "progress must be monotonic")
	}
}

func TestLabelMap_OutOfBounds(t *testing.T) {
	m := &LabelMap{Width: 2, Height: 2, IDs: []int32{1, 1, 1, 1}}
	assert.Equal(t, int32(0), m.ID(-1, 0))
	assert.Equal(t, int32(0), m.ID(2, 0))
	assert.Equal(t, int32(0), m.ID(0, 2))
	assert.Equal(t, int32(1), m.ID(1, 1))
}
