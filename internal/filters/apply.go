package filters

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// rgb is one pixel's color channels during processing.
type rgb struct {
	r, g, b float64
}

// ApplyAll applies the stack to src and returns a new raster of the same
// size. src is never modified. A nil or neutral stack returns a plain copy.
func (s *Stack) ApplyAll(src *imaging.Raster) (*imaging.Raster, error) {
	if src == nil {
		return nil, imaging.ErrNoImageLoaded
	}
	if s.Neutral() {
		return src.Clone(), nil
	}

	dst := &imaging.Raster{
		Width:  src.Width,
		Height: src.Height,
		Pix:    make([]byte, len(src.Pix)),
	}

	toggles := append([]Kind(nil), s.toggles...)
	brightness := s.Adjustment(Brightness)
	contrast := s.Adjustment(Contrast)
	stride := src.Width * 4

	parallel.Line(src.Height, func(start, end int) {
		for y := start; y < end; y++ {
			row := y * stride
			for i := row; i < row+stride; i += 4 {
				c := rgb{float64(src.Pix[i]), float64(src.Pix[i+1]), float64(src.Pix[i+2])}
				c = applyPixel(c, toggles, brightness, contrast)
				dst.Pix[i] = quantize(c.r)
				dst.Pix[i+1] = quantize(c.g)
				dst.Pix[i+2] = quantize(c.b)
				dst.Pix[i+3] = src.Pix[i+3]
			}
		}
	})

	return dst, nil
}

// applyPixel runs the full chain on one color.
func applyPixel(c rgb, toggles []Kind, brightness, contrast float64) rgb {
	for _, k := range toggles {
		switch k {
		case Grayscale:
			c = grayscale(c)
		case Sepia:
			c = sepia(c)
		case Invert:
			c = invert(c)
		}
	}
	c = brighten(c, brightness)
	return applyContrast(c, contrast)
}

// grayscale uses ITU-R BT.601 luma weights.
func grayscale(c rgb) rgb {
	v := 0.299*c.r + 0.587*c.g + 0.114*c.b
	return rgb{v, v, v}
}

func sepia(c rgb) rgb {
	return rgb{
		r: math.Min(255, 0.393*c.r+0.769*c.g+0.189*c.b),
		g: math.Min(255, 0.349*c.r+0.686*c.g+0.168*c.b),
		b: math.Min(255, 0.272*c.r+0.534*c.g+0.131*c.b),
	}
}

func invert(c rgb) rgb {
	return rgb{255 - c.r, 255 - c.g, 255 - c.b}
}

func brighten(c rgb, factor float64) rgb {
	if factor == Neutral {
		return c
	}
	return rgb{
		r: clamp255(c.r * factor),
		g: clamp255(c.g * factor),
		b: clamp255(c.b * factor),
	}
}

func applyContrast(c rgb, factor float64) rgb {
	if factor == Neutral {
		return c
	}
	return rgb{
		r: clamp255((c.r-128)*factor + 128),
		g: clamp255((c.g-128)*factor + 128),
		b: clamp255((c.b-128)*factor + 128),
	}
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func quantize(v float64) uint8 {
	return uint8(math.Round(clamp255(v)))
}
