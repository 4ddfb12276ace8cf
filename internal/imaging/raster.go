package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Raster is the working image: a width x height grid of straight RGBA bytes.
//
// Pix holds 4 bytes per pixel in row-major order with no row padding, so
// len(Pix) == Width*Height*4. A Raster is never modified after it has been
// constructed; operations return new values instead.
type Raster struct {
	Width  int
	Height int
	Pix    []byte
}

// NewRaster allocates a fully transparent raster of the given size.
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}, nil
}

// FromImage converts any image.Image into a Raster.
//
// The source is normalized to non-premultiplied RGBA and rebased so the
// top-left pixel of its bounds becomes (0,0).
func FromImage(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, ErrNoImageLoaded
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image bounds %v", ErrDecode, b)
	}

	// Clone always returns a tightly packed *image.NRGBA rooted at (0,0).
	nrgba := imaging.Clone(img)
	return &Raster{
		Width:  nrgba.Rect.Dx(),
		Height: nrgba.Rect.Dy(),
		Pix:    nrgba.Pix,
	}, nil
}

// Image returns an *image.NRGBA view that shares the raster's pixel memory.
// Callers must not write through it.
func (r *Raster) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: r.Width * 4,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// Bounds returns the raster rectangle rooted at (0,0).
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	pix := make([]byte, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{Width: r.Width, Height: r.Height, Pix: pix}
}

// Offset returns the index of the first byte of pixel (x, y) in Pix.
func (r *Raster) Offset(x, y int) int {
	return (y*r.Width + x) * 4
}

// RGBA returns the four channel bytes of pixel (x, y).
func (r *Raster) RGBA(x, y int) (red, green, blue, alpha uint8) {
	i := r.Offset(x, y)
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3]
}

// Equal reports whether two rasters have identical size and bytes.
func (r *Raster) Equal(o *Raster) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Width != o.Width || r.Height != o.Height || len(r.Pix) != len(o.Pix) {
		return false
	}
	for i := range r.Pix {
		if r.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}
