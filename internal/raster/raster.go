package raster

import (
	"image"
	"image/draw"
)

// Buffer is a width×height RGBA pixel buffer with 8-bit samples.
//
// Pix holds samples row-major, 4 bytes per pixel (R, G, B, A), and always
// has length Width*Height*4. A zero-area Buffer (Width or Height == 0) is
// valid input to every engine operation and yields empty results.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a transparent-black Buffer of the given dimensions.
// Negative dimensions are treated as zero.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// FromImage copies an image.Image into a new Buffer.
//
// The image is converted to non-premultiplied 8-bit RGBA regardless of its
// source color model. The image's bounds origin is normalized to (0,0).
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	b := New(bounds.Dx(), bounds.Dy())
	if b.Empty() {
		return b
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	copy(b.Pix, nrgba.Pix)
	return b
}

// ToImage wraps the Buffer as an *image.NRGBA sharing the same pixel memory.
//
// Mutating the returned image mutates the Buffer and vice versa. Callers
// that need an independent copy should Clone the Buffer first.
func (b *Buffer) ToImage() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Clone returns a deep copy of the Buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		Width:  b.Width,
		Height: b.Height,
		Pix:    make([]uint8, len(b.Pix)),
	}
	copy(out.Pix, b.Pix)
	return out
}

// Empty reports whether the Buffer has zero area.
func (b *Buffer) Empty() bool {
	return b == nil || b.Width <= 0 || b.Height <= 0
}

// In reports whether (x, y) lies inside the Buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Index returns the pixel index y*Width+x. No bounds checking is performed.
func (b *Buffer) Index(x, y int) int {
	return y*b.Width + x
}

// Offset returns the byte offset of the pixel's R sample in Pix.
// No bounds checking is performed.
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// RGBA returns the four samples of the pixel at (x, y).
// No bounds checking is performed.
func (b *Buffer) RGBA(x, y int) (r, g, bl, a uint8) {
	i := b.Offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// SetRGBA stores the four samples of the pixel at (x, y).
// No bounds checking is performed.
func (b *Buffer) SetRGBA(x, y int, r, g, bl, a uint8) {
	i := b.Offset(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// SetRGB stores the color samples of the pixel at (x, y), leaving alpha
// untouched. No bounds checking is performed.
func (b *Buffer) SetRGB(x, y int, r, g, bl uint8) {
	i := b.Offset(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
}

// Opaque reports whether the pixel at (x, y) has alpha > 0.
// No bounds checking is performed.
func (b *Buffer) Opaque(x, y int) bool {
	return b.Pix[b.Offset(x, y)+3] > 0
}

// CopyAlpha copies the alpha channel of src into b. Both buffers must have
// identical dimensions; mismatched buffers are left unchanged.
//
// Filters that delegate whole-image work to library code use CopyAlpha to
// honor the engine-wide rule that alpha passes through unchanged.
func (b *Buffer) CopyAlpha(src *Buffer) {
	if b.Width != src.Width || b.Height != src.Height {
		return
	}
	for i := 3; i < len(b.Pix); i += 4 {
		b.Pix[i] = src.Pix[i]
	}
}
