package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/ironsheep/image-edit-mcp/internal/export"
	"github.com/ironsheep/image-edit-mcp/internal/filters"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/render"
	"github.com/ironsheep/image-edit-mcp/internal/selection"
	"github.com/ironsheep/image-edit-mcp/internal/viewport"
)

// ErrStaleDecode is returned by FinishDecode when a newer load has started
// since the token was issued.
var ErrStaleDecode = errors.New("stale decode result discarded")

// DecodeFunc is the image source: it turns encoded bytes into a raster.
type DecodeFunc func(ctx context.Context, data []byte) (*imaging.Raster, *imaging.ImageInfo, error)

// Options configures a Session.
type Options struct {
	// Viewport is the canvas size the view is fitted to.
	Viewport viewport.Size

	// Render styles the crop overlay.
	Render render.Options

	// Decode defaults to imaging.Decode.
	Decode DecodeFunc

	// Debug enables per-operation log lines.
	Debug bool
}

// Session is one editing session.
//
// Methods are safe to call from multiple goroutines; they are serialized by
// an internal mutex so an asynchronous decode can complete while events are
// being handled.
type Session struct {
	mu sync.Mutex

	decode   DecodeFunc
	renderer *render.Renderer
	debug    bool

	viewportSize viewport.Size

	original *imaging.Raster
	info     *imaging.ImageInfo
	filtered *imaging.Raster // cached stack output, nil when stale

	stack *filters.Stack
	view  *viewport.Transform
	sel   *selection.Selector

	spaceHeld bool
	panning   bool
	lastPan   viewport.Point

	issued uint64 // newest decode token handed out
}

// New creates an empty session.
func New(opts Options) (*Session, error) {
	if !opts.Viewport.Valid() {
		return nil, fmt.Errorf("invalid viewport size %gx%g", opts.Viewport.W, opts.Viewport.H)
	}
	r, err := render.New(opts.Render)
	if err != nil {
		return nil, err
	}
	decode := opts.Decode
	if decode == nil {
		decode = imaging.Decode
	}

	return &Session{
		decode:       decode,
		renderer:     r,
		debug:        opts.Debug,
		viewportSize: opts.Viewport,
		stack:        filters.NewStack(),
		view:         viewport.New(viewport.Size{}, opts.Viewport),
		sel:          selection.New(0, 0),
	}, nil
}

func (s *Session) debugf(format string, args ...interface{}) {
	if s.debug {
		log.Printf("editor: "+format, args...)
	}
}

// === Loading ===

// BeginDecode issues the token for a new load. Any load started earlier
// becomes stale.
func (s *Session) BeginDecode() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// FinishDecode installs a decode result if token is still the newest one.
//
// A stale token returns ErrStaleDecode; a decode error is returned as is. In
// both cases the session is unchanged.
func (s *Session) FinishDecode(token uint64, r *imaging.Raster, info *imaging.ImageInfo, decodeErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.issued {
		s.debugf("discarding decode %d, newest is %d", token, s.issued)
		return ErrStaleDecode
	}
	if decodeErr != nil {
		return decodeErr
	}
	if r == nil {
		return fmt.Errorf("%w: decoder returned no raster", imaging.ErrDecode)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: decoder returned a %dx%d raster", imaging.ErrDecode, r.Width, r.Height)
	}

	if err := s.install(r, info); err != nil {
		return err
	}
	s.debugf("loaded %dx%d image (decode %d)", r.Width, r.Height, token)
	return nil
}

// Load decodes data and installs it synchronously.
func (s *Session) Load(ctx context.Context, data []byte) (*imaging.ImageInfo, error) {
	token := s.BeginDecode()
	r, info, err := s.decode(ctx, data)
	if err := s.FinishDecode(token, r, info, err); err != nil {
		return nil, err
	}
	return info, nil
}

// LoadResult is delivered by LoadAsync.
type LoadResult struct {
	Token uint64
	Info  *imaging.ImageInfo
	Err   error
}

// LoadAsync decodes data on a new goroutine. The returned channel receives
// exactly one result and is then closed. A load superseded by a later one
// reports ErrStaleDecode.
func (s *Session) LoadAsync(ctx context.Context, data []byte) <-chan LoadResult {
	token := s.BeginDecode()
	out := make(chan LoadResult, 1)
	go func() {
		defer close(out)
		r, info, err := s.decode(ctx, data)
		if err := s.FinishDecode(token, r, info, err); err != nil {
			out <- LoadResult{Token: token, Err: err}
			return
		}
		out <- LoadResult{Token: token, Info: info}
	}()
	return out
}

// install replaces the working raster and resets everything derived from the
// previous one. On error nothing is changed. Callers hold s.mu.
func (s *Session) install(r *imaging.Raster, info *imaging.ImageInfo) error {
	view, err := viewport.Fit(imageSize(r), s.viewportSize)
	if err != nil {
		return err
	}
	if info == nil {
		info = &imaging.ImageInfo{}
	}
	info.Width, info.Height = r.Width, r.Height

	s.original = r
	s.info = info
	s.filtered = nil
	s.stack.Reset()
	s.sel.Reset(float64(r.Width), float64(r.Height))
	s.panning = false
	s.view = view
	return nil
}

func imageSize(r *imaging.Raster) viewport.Size {
	return viewport.Size{W: float64(r.Width), H: float64(r.Height)}
}

func (s *Session) requireImage() error {
	if s.original == nil {
		return imaging.ErrNoImageLoaded
	}
	return nil
}

// === Input events ===

// HandleEvent applies one normalized input event.
//
// Key events are accepted at any time. Pointer and wheel events need an
// image and otherwise return imaging.ErrNoImageLoaded.
func (s *Session) HandleEvent(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Type {
	case KeyDown:
		if isSpace(ev.Key) {
			s.spaceHeld = true
		} else if isEscape(ev.Key) && s.original != nil {
			s.sel.Clear()
		}
		return nil
	case KeyUp:
		if isSpace(ev.Key) {
			s.spaceHeld = false
			s.panning = false
		}
		return nil
	}

	if err := s.requireImage(); err != nil {
		return err
	}

	switch ev.Type {
	case PointerDown:
		if s.spaceHeld {
			s.panning = true
			s.lastPan = ev.Point
			return nil
		}
		s.sel.PointerDown(s.view.ToImageSpace(ev.Point))
	case PointerMove:
		if s.panning {
			s.view.PanBy(ev.Point.Sub(s.lastPan))
			s.lastPan = ev.Point
			return nil
		}
		s.sel.PointerMove(s.view.ToImageSpace(ev.Point))
	case PointerUp:
		s.panning = false
		s.sel.PointerUp()
	case Wheel:
		if ev.WheelDelta == 0 {
			return nil
		}
		s.view.ZoomAt(ev.Point, viewport.DirectionFromWheel(ev.WheelDelta))
		s.debugf("zoom %.3f origin (%.1f,%.1f)", s.view.Zoom, s.view.Origin.X, s.view.Origin.Y)
	default:
		return fmt.Errorf("unsupported event type %v", ev.Type)
	}
	return nil
}

// === Viewport ===

// ZoomAt zooms one step around a canvas anchor.
func (s *Session) ZoomAt(anchor viewport.Point, dir viewport.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireImage(); err != nil {
		return err
	}
	s.view.ZoomAt(anchor, dir)
	return nil
}

// PanBy moves the view by a canvas delta, clamped.
func (s *Session) PanBy(delta viewport.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireImage(); err != nil {
		return err
	}
	s.view.PanBy(delta)
	return nil
}

// Fit resets the view to fit the image.
func (s *Session) Fit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireImage(); err != nil {
		return err
	}
	return s.view.Resize(s.viewportSize)
}

// Resize changes the viewport size and refits the view.
func (s *Session) Resize(size viewport.Size) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !size.Valid() {
		return fmt.Errorf("invalid viewport size %gx%g", size.W, size.H)
	}
	if s.original == nil {
		s.viewportSize = size
		s.view = viewport.New(viewport.Size{}, size)
		return nil
	}
	if err := s.view.Resize(size); err != nil {
		return err
	}
	s.viewportSize = size
	return nil
}

// ToImageSpace maps a canvas point through the current view.
func (s *Session) ToImageSpace(p viewport.Point) viewport.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.ToImageSpace(p)
}

// === Filters ===

// ToggleFilter flips a toggle filter and returns its new state.
func (s *Session) ToggleFilter(k filters.Kind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireImage(); err != nil {
		return false, err
	}
	on, err := s.stack.Toggle(k)
	if err != nil {
		return false, err
	}
	s.filtered = nil
	s.debugf("%s -> %v", k, on)
	return on, nil
}

// SetAdjustment sets the brightness or contrast factor (1.0 = 100%).
func (s *Session) SetAdjustment(k filters.Kind, factor float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireImage(); err != nil {
		return err
	}
	if err := s.stack.SetAdjustment(k, factor); err != nil {
		return err
	}
	s.filtered = nil
	return nil
}

// ResetFilters clears every filter and adjustment.
func (s *Session) ResetFilters() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireImage(); err != nil {
		return err
	}
	s.stack.Reset()
	s.filtered = nil
	return nil
}

// Filtered returns the stack applied to the stored original. The result is
// cached until the stack or the original changes.
func (s *Session) Filtered() (*imaging.Raster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filteredLocked()
}

func (s *Session) filteredLocked() (*imaging.Raster, error) {
	if err := s.requireImage(); err != nil {
		return nil, err
	}
	if s.filtered == nil {
		f, err := s.stack.ApplyAll(s.original)
		if err != nil {
			return nil, err
		}
		s.filtered = f
	}
	return s.filtered, nil
}

// === Crop ===

// SelectDefault selects a centered region of half the image size.
func (s *Session) SelectDefault() (selection.Rect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireImage(); err != nil {
		return selection.Rect{}, err
	}
	return s.sel.SelectDefault(), nil
}

// CancelCrop removes the crop region.
func (s *Session) CancelCrop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireImage(); err != nil {
		return err
	}
	s.sel.Clear()
	return nil
}

// CommitCrop bakes the filters, replaces the raster with the selected
// region and resets the filters, the selection and the view.
func (s *Session) CommitCrop() (*imaging.ImageInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireImage(); err != nil {
		return nil, err
	}

	var region *selection.Rect
	if r, ok := s.sel.Region(); ok {
		region = &r
	}
	cropped, err := export.CommitCrop(s.original, s.stack, region)
	if err != nil {
		return nil, err
	}

	info := *s.info
	if err := s.install(cropped, &info); err != nil {
		return nil, err
	}
	s.debugf("cropped to %dx%d", cropped.Width, cropped.Height)
	return &info, nil
}

// === Output ===

// Render draws the current view.
func (s *Session) Render() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered, err := s.filteredLocked()
	if err != nil {
		return nil, err
	}
	var region *selection.Rect
	if r, ok := s.sel.Region(); ok {
		region = &r
	}
	return s.renderer.Draw(filtered, s.view, region)
}

// Export encodes the filtered image at full resolution.
func (s *Session) Export(format export.Format) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireImage(); err != nil {
		return nil, err
	}
	return export.EncodeBytes(s.original, s.stack, format)
}

// Save exports the image and hands it to sink under name. The format follows
// the name's extension; an empty name means export.DefaultFilename.
func (s *Session) Save(sink export.Sink, name string) (string, error) {
	if name == "" {
		name = export.DefaultFilename
	}
	format, err := export.FormatFromFilename(name)
	if err != nil {
		return "", err
	}
	data, err := s.Export(format)
	if err != nil {
		return "", err
	}
	return sink.Save(name, data)
}

// SampleColor reads one pixel of the filtered image.
func (s *Session) SampleColor(x, y int) (*imaging.ColorResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered, err := s.filteredLocked()
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(filtered, x, y)
}
