// Package imaging provides the raster representation and the image source
// used by the editor.
//
// A Raster is an immutable grid of straight (non-premultiplied) RGBA samples.
// Every operation that changes pixels returns a new Raster; the editor replaces
// its working raster wholesale on load and on crop commit.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left pixel:
//   - X increases rightward, Y increases downward
//   - For regions, Min is inclusive and Max is exclusive
//
// # Error Handling
//
// The sentinel errors declared here are shared by every editing package so
// callers can test failures with errors.Is:
//   - ErrDecode and ErrUnsupportedFormat from Decode
//   - ErrNoImageLoaded from any pipeline operation that needs a raster
//   - ErrInvalidRegion from crop extraction with an absent or empty region
//
// # Thread Safety
//
// Raster values are safe to share between goroutines because they are never
// mutated after construction. The ImageCache type is safe for concurrent use.
package imaging
