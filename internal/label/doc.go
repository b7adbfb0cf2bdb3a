// Package label chooses where to place each region's color numeral and
// renders it in one of several badge styles.
//
// The anchor point is an approximate pole of inaccessibility: among a
// bounded sample of the region's pixels, the one whose minimum distance to
// the region boundary is largest. This keeps numerals away from outlines
// even in concave regions, where the centroid can fall outside the shape.
//
// Numerals are rasterized with the basicfont face from golang.org/x/image
// and scaled to the configured font size; badges (circle, square, bubble)
// are sized proportionally to the font.
package label
