package imaging

import "errors"

var (
	// ErrDecode is returned when image bytes are in a known format but cannot
	// be decoded.
	ErrDecode = errors.New("decode error")

	// ErrUnsupportedFormat is returned when the image format is not recognized
	// or cannot be produced by the encoder.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrNoImageLoaded is returned by pipeline operations attempted before an
	// image exists.
	ErrNoImageLoaded = errors.New("no image loaded")

	// ErrInvalidRegion is returned when a crop is requested with no region or a
	// region of zero area.
	ErrInvalidRegion = errors.New("invalid crop region")
)
