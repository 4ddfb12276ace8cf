package viewport

import (
	"fmt"
	"math"
)

const (
	// ZoomMin is the smallest allowed zoom factor.
	ZoomMin = 0.2

	// ZoomMax is the largest allowed zoom factor.
	ZoomMax = 5.0

	// ZoomStep is the factor applied by one wheel notch.
	ZoomStep = 1.1
)

// Point is a 2D coordinate in either canvas or image space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Mul returns p scaled by k.
func (p Point) Mul(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Size is a width/height pair in pixels.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Valid reports whether both dimensions are strictly positive and finite.
func (s Size) Valid() bool {
	return s.W > 0 && s.H > 0 && !math.IsInf(s.W, 0) && !math.IsInf(s.H, 0)
}

// Direction selects zoom-in or zoom-out for ZoomAt.
type Direction int

const (
	ZoomIn Direction = iota
	ZoomOut
)

// DirectionFromWheel converts a wheel delta into a zoom direction.
// Scrolling up (negative delta) zooms in.
func DirectionFromWheel(delta float64) Direction {
	if delta < 0 {
		return ZoomIn
	}
	return ZoomOut
}

// Transform is the zoom+pan state of the view.
//
// The zero value is not useful; use New or FitToViewport. The image and
// viewport sizes are remembered because the pan clamp depends on them.
type Transform struct {
	Zoom   float64 `json:"zoom"`
	Origin Point   `json:"origin"`

	image    Size
	viewport Size
}

// New returns an identity transform for the given image and viewport sizes,
// without fitting.
func New(image, viewport Size) *Transform {
	return &Transform{Zoom: 1, image: image, viewport: viewport}
}

// ViewportSize returns the viewport size the transform was last fitted to.
func (t *Transform) ViewportSize() Size { return t.viewport }

// ToImageSpace maps a canvas point to image space. No bounds check is made.
func (t *Transform) ToImageSpace(canvas Point) Point {
	return canvas.Sub(t.Origin).Mul(1 / t.Zoom)
}

// ToCanvasSpace maps an image point to canvas space.
func (t *Transform) ToCanvasSpace(img Point) Point {
	return t.Origin.Add(img.Mul(t.Zoom))
}

// ZoomAt scales the view by one ZoomStep around anchor, a canvas point.
//
// The zoom is clamped to [ZoomMin, ZoomMax]; the origin is recomputed so the
// image point under anchor stays under it.
func (t *Transform) ZoomAt(anchor Point, dir Direction) {
	factor := ZoomStep
	if dir == ZoomOut {
		factor = 1 / ZoomStep
	}
	t.SetZoom(anchor, t.Zoom*factor)
}

// SetZoom sets an explicit zoom level, clamped, keeping anchor fixed.
func (t *Transform) SetZoom(anchor Point, zoom float64) {
	if math.IsNaN(zoom) {
		return
	}
	z0 := t.Zoom
	z1 := clamp(zoom, ZoomMin, ZoomMax)
	if z1 == z0 {
		return
	}
	// o1 = a - (a - o0) * (z1/z0)
	t.Origin = anchor.Sub(anchor.Sub(t.Origin).Mul(z1 / z0))
	t.Zoom = z1
}

// PanBy translates the origin by delta canvas pixels and clamps it so that
// the scaled image keeps overlapping the viewport.
func (t *Transform) PanBy(delta Point) {
	t.Origin = t.Origin.Add(delta)
	t.clampOrigin()
}

// PanBounds returns the allowed origin range on both axes for the current
// zoom: [min(0, v - i*z), max(0, v - i*z)].
func (t *Transform) PanBounds() (lo, hi Point) {
	sx := t.viewport.W - t.image.W*t.Zoom
	sy := t.viewport.H - t.image.H*t.Zoom
	return Point{X: math.Min(0, sx), Y: math.Min(0, sy)},
		Point{X: math.Max(0, sx), Y: math.Max(0, sy)}
}

func (t *Transform) clampOrigin() {
	lo, hi := t.PanBounds()
	t.Origin.X = clamp(t.Origin.X, lo.X, hi.X)
	t.Origin.Y = clamp(t.Origin.Y, lo.Y, hi.Y)
}

// FitToViewport resets the transform so the whole image is visible and
// centered. The image is never upscaled by a fit, and the zoom still honors
// ZoomMin, so very large images are centered but overflow the viewport.
func (t *Transform) FitToViewport(image, viewport Size) error {
	if !image.Valid() {
		return fmt.Errorf("invalid image size %gx%g", image.W, image.H)
	}
	if !viewport.Valid() {
		return fmt.Errorf("invalid viewport size %gx%g", viewport.W, viewport.H)
	}

	zoom := clamp(math.Min(math.Min(viewport.W/image.W, viewport.H/image.H), 1), ZoomMin, ZoomMax)
	t.image = image
	t.viewport = viewport
	t.Zoom = zoom
	t.Origin = Point{
		X: (viewport.W - image.W*zoom) / 2,
		Y: (viewport.H - image.H*zoom) / 2,
	}
	return nil
}

// Resize refits the transform to a new viewport size for the current image.
func (t *Transform) Resize(viewport Size) error {
	return t.FitToViewport(t.image, viewport)
}

// Fit returns a new transform fitted to the given sizes.
func Fit(image, viewport Size) (*Transform, error) {
	t := New(image, viewport)
	if err := t.FitToViewport(image, viewport); err != nil {
		return nil, err
	}
	return t, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
