package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestNew(t *testing.T) {
	b := New(10, 5)
	if b.Width != 10 || b.Height != 5 {
		t.Errorf("dimensions: got %dx%d, want 10x5", b.Width, b.Height)
	}
	if len(b.Pix) != 10*5*4 {
		t.Errorf("pix length: got %d, want %d", len(b.Pix), 10*5*4)
	}
}

func TestNew_NegativeDimensions(t *testing.T) {
	b := New(-3, 7)
	if !b.Empty() {
		t.Error("negative-width buffer should be empty")
	}
	if len(b.Pix) != 0 {
		t.Errorf("pix length: got %d, want 0", len(b.Pix))
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	b := FromImage(img)
	r, g, bl, a := b.RGBA(1, 2)
	if r != 10 || g != 20 || bl != 30 || a != 255 {
		t.Errorf("pixel (1,2): got (%d,%d,%d,%d), want (10,20,30,255)", r, g, bl, a)
	}
}

func TestFromImage_NonZeroOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 9, 9))
	img.SetNRGBA(5, 5, color.NRGBA{R: 200, A: 255})

	b := FromImage(img)
	if b.Width != 4 || b.Height != 4 {
		t.Fatalf("dimensions: got %dx%d, want 4x4", b.Width, b.Height)
	}
	r, _, _, _ := b.RGBA(0, 0)
	if r != 200 {
		t.Errorf("origin should normalize to (0,0): got r=%d, want 200", r)
	}
}

func TestToImage_SharesMemory(t *testing.T) {
	b := New(3, 3)
	img := b.ToImage()
	img.SetNRGBA(2, 2, color.NRGBA{R: 99, A: 255})

	r, _, _, a := b.RGBA(2, 2)
	if r != 99 || a != 255 {
		t.Error("ToImage must share pixel memory with the buffer")
	}
}

func TestClone_Independent(t *testing.T) {
	b := New(2, 2)
	b.SetRGBA(0, 0, 1, 2, 3, 4)

	c := b.Clone()
	c.SetRGBA(0, 0, 9, 9, 9, 9)

	r, _, _, _ := b.RGBA(0, 0)
	if r != 1 {
		t.Error("mutating a clone must not affect the original")
	}
}

func TestIndexAndOffset(t *testing.T) {
	b := New(7, 3)
	if got := b.Index(4, 2); got != 2*7+4 {
		t.Errorf("Index(4,2): got %d, want %d", got, 2*7+4)
	}
	if got := b.Offset(4, 2); got != (2*7+4)*4 {
		t.Errorf("Offset(4,2): got %d, want %d", got, (2*7+4)*4)
	}
}

func TestIn(t *testing.T) {
	b := New(4, 4)
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{3, 3, true},
		{4, 0, false},
		{0, 4, false},
		{-1, 2, false},
	}
	for _, tt := range tests {
		if got := b.In(tt.x, tt.y); got != tt.want {
			t.Errorf("In(%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCopyAlpha(t *testing.T) {
	src := New(2, 1)
	src.SetRGBA(0, 0, 0, 0, 0, 128)
	src.SetRGBA(1, 0, 0, 0, 0, 7)

	dst := New(2, 1)
	dst.SetRGBA(0, 0, 5, 5, 5, 255)
	dst.CopyAlpha(src)

	_, _, _, a0 := dst.RGBA(0, 0)
	_, _, _, a1 := dst.RGBA(1, 0)
	if a0 != 128 || a1 != 7 {
		t.Errorf("alpha: got (%d,%d), want (128,7)", a0, a1)
	}
	r, _, _, _ := dst.RGBA(0, 0)
	if r != 5 {
		t.Error("CopyAlpha must not touch color channels")
	}
}

func TestCopyAlpha_MismatchedDimensions(t *testing.T) {
	src := New(3, 3)
	dst := New(2, 2)
	dst.SetRGBA(0, 0, 0, 0, 0, 42)
	dst.CopyAlpha(src)
	_, _, _, a := dst.RGBA(0, 0)
	if a != 42 {
		t.Error("mismatched buffers must be left unchanged")
	}
}
