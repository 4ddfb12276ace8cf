// Package selection implements the crop rectangle and the pointer state
// machine that draws and drags it.
//
// All coordinates are in image space. While a region exists it always lies
// inside the image: 0 <= X, 0 <= Y, X+W <= image width, Y+H <= image height.
package selection

import (
	"image"
	"math"

	"github.com/ironsheep/image-edit-mcp/internal/viewport"
)

// Rect is an axis-aligned rectangle in image space.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p viewport.Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Empty reports whether r has zero width or height.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Pixels rounds r to integer pixel bounds.
func (r Rect) Pixels() image.Rectangle {
	x := int(math.Round(r.X))
	y := int(math.Round(r.Y))
	return image.Rect(x, y, x+int(math.Round(r.W)), y+int(math.Round(r.H)))
}

// State is the interaction state of a Selector.
type State int

const (
	Idle State = iota
	Drawing
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Selector owns the optional crop region and its pointer state.
type Selector struct {
	imageW, imageH float64

	region *Rect
	state  State

	// anchor is the fixed corner while Drawing.
	anchor viewport.Point
	// grab is the pointer offset from the region origin while Dragging.
	grab viewport.Point
}

// New returns an idle selector with no region for an image of the given size.
func New(imageW, imageH float64) *Selector {
	return &Selector{imageW: imageW, imageH: imageH}
}

// Reset drops the region and adopts a new image size.
func (s *Selector) Reset(imageW, imageH float64) {
	*s = Selector{imageW: imageW, imageH: imageH}
}

// State returns the current interaction state.
func (s *Selector) State() State { return s.state }

// Region returns a copy of the current region and whether one exists.
func (s *Selector) Region() (Rect, bool) {
	if s.region == nil {
		return Rect{}, false
	}
	return *s.region, true
}

// Committable reports whether the region can be used for a crop.
func (s *Selector) Committable() bool {
	return s.region != nil && !s.region.Empty()
}

// Clear removes the region and returns to Idle.
func (s *Selector) Clear() {
	s.region = nil
	s.state = Idle
}

// SelectDefault replaces the region with a centered rectangle covering half
// of the image in each dimension.
func (s *Selector) SelectDefault() Rect {
	r := Rect{X: s.imageW / 4, Y: s.imageH / 4, W: s.imageW / 2, H: s.imageH / 2}
	s.region = &r
	s.state = Idle
	return r
}

// PointerDown starts dragging when p is inside the region and starts drawing
// a new region otherwise.
func (s *Selector) PointerDown(p viewport.Point) {
	if s.region != nil && s.region.Contains(p) {
		s.state = Dragging
		s.grab = p.Sub(viewport.Point{X: s.region.X, Y: s.region.Y})
		return
	}

	s.state = Drawing
	s.anchor = s.clampPoint(p)
	s.region = &Rect{X: s.anchor.X, Y: s.anchor.Y}
}

// PointerMove updates the region according to the current state. It is a
// no-op while Idle.
func (s *Selector) PointerMove(p viewport.Point) {
	switch s.state {
	case Drawing:
		q := s.clampPoint(p)
		s.region = &Rect{
			X: math.Min(s.anchor.X, q.X),
			Y: math.Min(s.anchor.Y, q.Y),
			W: math.Abs(q.X - s.anchor.X),
			H: math.Abs(q.Y - s.anchor.Y),
		}
	case Dragging:
		r := *s.region
		r.X = clamp(p.X-s.grab.X, 0, s.imageW-r.W)
		r.Y = clamp(p.Y-s.grab.Y, 0, s.imageH-r.H)
		s.region = &r
	}
}

// PointerUp ends any active interaction. The region is kept.
func (s *Selector) PointerUp() {
	s.state = Idle
}

func (s *Selector) clampPoint(p viewport.Point) viewport.Point {
	return viewport.Point{
		X: clamp(p.X, 0, s.imageW),
		Y: clamp(p.Y, 0, s.imageH),
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
