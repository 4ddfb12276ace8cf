// Package render draws the editor view: the filtered raster under the
// current zoom and pan, and the crop region overlay.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/ironsheep/image-edit-mcp/internal/filters"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/selection"
	"github.com/ironsheep/image-edit-mcp/internal/viewport"
)

// Options controls the look of the overlay.
type Options struct {
	// Background fills the viewport before the image is drawn.
	// Nil leaves it transparent.
	Background color.Color

	// Outline is the dashed crop border color.
	Outline color.Color
	// OutlineWidth is the border width in canvas pixels.
	OutlineWidth float64
	// Dash is the dash and gap length of the border.
	Dash float64

	// Dim is painted over the viewport outside the crop region.
	Dim color.Color

	// ZoomLabel draws the current zoom percentage in the bottom-right corner.
	ZoomLabel bool
	// LabelSize is the label font size in points.
	LabelSize float64
}

// DefaultOptions returns the stock overlay style: a red dashed border and a
// 35% black dim.
func DefaultOptions() Options {
	return Options{
		Outline:      color.NRGBA{R: 0xff, G: 0x52, B: 0x52, A: 0xff},
		OutlineWidth: 2,
		Dash:         6,
		Dim:          color.NRGBA{A: 89}, // rgba(0,0,0,0.35)
		LabelSize:    12,
	}
}

// Renderer produces canvas images. It holds no per-frame state and may be
// reused for every frame.
type Renderer struct {
	opts Options
	face font.Face
}

// New creates a renderer. The label font is parsed once here.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{opts: opts}
	if opts.ZoomLabel {
		f, err := truetype.Parse(gomono.TTF)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		size := opts.LabelSize
		if size <= 0 {
			size = 12
		}
		r.face = truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	return r, nil
}

// Render applies stack to src and draws the result through view. region may
// be nil. The returned image has the transform's viewport size.
func (r *Renderer) Render(src *imaging.Raster, stack *filters.Stack, view *viewport.Transform, region *selection.Rect) (image.Image, error) {
	if src == nil {
		return nil, imaging.ErrNoImageLoaded
	}
	filtered, err := stack.ApplyAll(src)
	if err != nil {
		return nil, err
	}
	return r.Draw(filtered, view, region)
}

// Draw renders an already filtered raster.
func (r *Renderer) Draw(filtered *imaging.Raster, view *viewport.Transform, region *selection.Rect) (image.Image, error) {
	if filtered == nil {
		return nil, imaging.ErrNoImageLoaded
	}
	vs := view.ViewportSize()
	if !vs.Valid() {
		return nil, fmt.Errorf("invalid viewport size %gx%g", vs.W, vs.H)
	}
	w, h := int(math.Round(vs.W)), int(math.Round(vs.H))

	dc := gg.NewContext(w, h)
	if r.opts.Background != nil {
		dc.SetColor(r.opts.Background)
		dc.Clear()
	}

	dc.Push()
	dc.Translate(view.Origin.X, view.Origin.Y)
	dc.Scale(view.Zoom, view.Zoom)
	dc.DrawImage(filtered.Image(), 0, 0)
	dc.Pop()

	if region != nil {
		r.drawRegion(dc, view, *region, float64(w), float64(h))
	}
	if r.face != nil {
		r.drawZoomLabel(dc, view.Zoom, float64(w), float64(h))
	}

	return dc.Image(), nil
}

// drawRegion strokes the projected crop rectangle and dims the four bands
// around it.
func (r *Renderer) drawRegion(dc *gg.Context, view *viewport.Transform, region selection.Rect, w, h float64) {
	tl := view.ToCanvasSpace(viewport.Point{X: region.X, Y: region.Y})
	rw, rh := region.W*view.Zoom, region.H*view.Zoom

	if r.opts.Outline != nil && r.opts.OutlineWidth > 0 {
		dc.Push()
		dc.SetColor(r.opts.Outline)
		dc.SetLineWidth(r.opts.OutlineWidth)
		if r.opts.Dash > 0 {
			dc.SetDash(r.opts.Dash)
		}
		dc.DrawRectangle(tl.X, tl.Y, rw, rh)
		dc.Stroke()
		dc.Pop()
	}

	if r.opts.Dim == nil {
		return
	}
	dc.Push()
	dc.SetColor(r.opts.Dim)
	for _, b := range DimBands(tl.X, tl.Y, rw, rh, w, h) {
		dc.DrawRectangle(b.X, b.Y, b.W, b.H)
		dc.Fill()
	}
	dc.Pop()
}

func (r *Renderer) drawZoomLabel(dc *gg.Context, zoom, w, h float64) {
	label := fmt.Sprintf("%.0f%%", zoom*100)
	dc.Push()
	dc.SetFontFace(r.face)
	tw, th := dc.MeasureString(label)
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(w-tw-12, h-th-12, tw+8, th+8)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(label, w-8, h-8, 1, 0)
	dc.Pop()
}

// Band is a canvas-space rectangle.
type Band struct {
	X, Y, W, H float64
}

// DimBands splits the viewport area outside the rectangle (x, y, rw, rh) into
// top, bottom, left and right bands. Top and bottom span the full width; left
// and right cover only the rectangle's rows. Bands are clipped to the
// viewport and empty ones are omitted.
func DimBands(x, y, rw, rh, w, h float64) []Band {
	top := clamp(y, 0, h)
	bottom := clamp(y+rh, 0, h)
	left := clamp(x, 0, w)
	right := clamp(x+rw, 0, w)

	candidates := []Band{
		{X: 0, Y: 0, W: w, H: top},
		{X: 0, Y: bottom, W: w, H: h - bottom},
		{X: 0, Y: top, W: left, H: bottom - top},
		{X: right, Y: top, W: w - right, H: bottom - top},
	}

	bands := candidates[:0]
	for _, b := range candidates {
		if b.W > 0 && b.H > 0 {
			bands = append(bands, b)
		}
	}
	return bands
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
