// Package editor is the event-driven controller of an editing session.
//
// A Session owns the working raster, the filter stack, the viewport
// transform and the crop selector, and is their only writer. Input events,
// filter changes, crop commits and exports are plain method calls; the
// renderer output and the filtered raster are recomputed from the stored
// original whenever one of their inputs changes.
//
// # Decoding
//
// Decoding is the one asynchronous step. Every load takes a token from
// BeginDecode; FinishDecode only installs the result if no newer load has
// started since, so an older decode that completes late is discarded with
// ErrStaleDecode. A successful load replaces the raster and resets the
// filters, the selection and the view.
//
// # Errors
//
// Failed operations leave the session unchanged. Pointer, filter, crop and
// export operations report imaging.ErrNoImageLoaded before an image exists.
package editor
