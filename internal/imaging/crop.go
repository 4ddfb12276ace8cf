package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Extract copies the pixels inside rect into a new Raster.
//
// rect is clipped to the raster bounds first. A rectangle that is empty after
// clipping is rejected with ErrInvalidRegion.
func Extract(r *Raster, rect image.Rectangle) (*Raster, error) {
	if r == nil {
		return nil, ErrNoImageLoaded
	}

	clipped := rect.Canon().Intersect(r.Bounds())
	if clipped.Empty() {
		return nil, fmt.Errorf("%w: %v outside %dx%d image", ErrInvalidRegion, rect, r.Width, r.Height)
	}

	cropped := imaging.Crop(r.Image(), clipped)
	return &Raster{
		Width:  cropped.Rect.Dx(),
		Height: cropped.Rect.Dy(),
		Pix:    cropped.Pix,
	}, nil
}
