// Package raster defines the in-memory RGBA pixel buffer shared by every
// stage of the paint-by-numbers engine.
//
// A Buffer stores 8-bit RGBA samples in a flat, row-major byte slice of
// length Width*Height*4. Two index spaces are used throughout the engine:
//
//   - Pixel index: y*Width + x, the unit used by region pixel sets.
//   - Byte offset: (y*Width + x) * 4, the position of a pixel's R sample
//     in Pix.
//
// # Coordinate System
//
// All coordinates are 0-based with the origin at the top-left corner.
// X increases rightward, Y increases downward.
//
// # Ownership
//
// Buffers are owned by the caller. Engine operations read their input and
// either mutate it in place (when documented) or allocate a fresh Buffer;
// no operation retains a reference to a caller's Buffer across calls.
package raster
