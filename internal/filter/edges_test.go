package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixelpaint/pbnkit/internal/raster"
)

// uniform builds an opaque single-color buffer.
func uniform(w, h int, r, g, b uint8) *raster.Buffer {
	buf := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.SetRGBA(x, y, r, g, b, 255)
		}
	}
	return buf
}

// splitHalves builds a buffer whose left half is dark and right half light,
// giving one strong vertical edge down the middle.
func splitHalves(w, h int) *raster.Buffer {
	buf := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				buf.SetRGBA(x, y, 20, 20, 20, 255)
			} else {
				buf.SetRGBA(x, y, 230, 230, 230, 255)
			}
		}
	}
	return buf
}

func TestEdgeMask_UniformHasNoEdges(t *testing.T) {
	mask := EdgeMask(uniform(20, 20, 128, 128, 128), 30)
	for idx, isEdge := range mask {
		if isEdge {
			t.Fatalf("uniform image flagged edge at pixel %d", idx)
		}
	}
}

func TestEdgeMask_FindsContrastSeam(t *testing.T) {
	buf := splitHalves(20, 20)
	mask := EdgeMask(buf, 30)

	assert.True(t, mask[buf.Index(9, 10)] || mask[buf.Index(10, 10)],
		"the contrast seam must be flagged")
	assert.False(t, mask[buf.Index(2, 10)], "flat interior must not be flagged")
}

func TestEdgeMask_BorderNeverEdge(t *testing.T) {
	buf := splitHalves(10, 10)
	mask := EdgeMask(buf, 30)
	for x := 0; x < 10; x++ {
		assert.False(t, mask[buf.Index(x, 0)])
		assert.False(t, mask[buf.Index(x, 9)])
	}
	for y := 0; y < 10; y++ {
		assert.False(t, mask[buf.Index(0, y)])
		assert.False(t, mask[buf.Index(9, y)])
	}
}

func TestEdgeMask_ThresholdFallback(t *testing.T) {
	buf := splitHalves(10, 10)
	defaulted := EdgeMask(buf, 0)
	explicit := EdgeMask(buf, DefaultEdgeThreshold)
	assert.Equal(t, explicit, defaulted)
}

func TestSobelGradient_VerticalEdge(t *testing.T) {
	buf := splitHalves(20, 20)
	grad := sobelGradient(buf)

	seam := grad.mag[10*20+10]
	flat := grad.mag[10*20+3]
	assert.Greater(t, seam, flat, "gradient must peak at the seam")
	assert.Equal(t, 0.0, flat, "flat area has zero gradient")
}
