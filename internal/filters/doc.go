// Package filters holds the non-destructive edit stack and applies it to a
// raster.
//
// A Stack contains up to three toggle filters (grayscale, sepia, invert) in
// insertion order and two continuous adjustments (brightness, contrast) whose
// neutral value is 1.0. ApplyAll always starts from the raster it is given
// and returns a new one, so callers keep the unfiltered original and reapply
// the whole stack after every change instead of compounding edits.
//
// Per pixel the order is fixed:
//
//  1. enabled toggle filters, in insertion order
//  2. brightness: c * b, clamped to [0, 255]
//  3. contrast:   (c - 128) * k + 128, clamped to [0, 255]
//
// Channels are carried as float64 through the chain and rounded once at the
// end. Alpha is never modified.
package filters
