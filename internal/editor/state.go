package editor

import (
	"github.com/ironsheep/image-edit-mcp/internal/filters"
	"github.com/ironsheep/image-edit-mcp/internal/selection"
	"github.com/ironsheep/image-edit-mcp/internal/viewport"
)

// Snapshot is a read-only view of the session state.
type Snapshot struct {
	Loaded      bool   `json:"loaded"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Format      string `json:"format,omitempty"`
	DecodeToken uint64 `json:"decode_token"`

	Zoom     float64        `json:"zoom"`
	Origin   viewport.Point `json:"origin"`
	Viewport viewport.Size  `json:"viewport"`

	Region      *selection.Rect `json:"region,omitempty"`
	Committable bool            `json:"committable"`
	Interaction string          `json:"interaction"`
	Panning     bool            `json:"panning"`
	SpaceHeld   bool            `json:"space_held"`

	Filters []filters.Entry `json:"filters"`
}

// State returns a snapshot of the session.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Loaded:      s.original != nil,
		DecodeToken: s.issued,
		Zoom:        s.view.Zoom,
		Origin:      s.view.Origin,
		Viewport:    s.viewportSize,
		Committable: s.sel.Committable(),
		Interaction: s.sel.State().String(),
		Panning:     s.panning,
		SpaceHeld:   s.spaceHeld,
		Filters:     s.stack.Entries(),
	}
	if s.original != nil {
		snap.Width = s.original.Width
		snap.Height = s.original.Height
	}
	if s.info != nil {
		snap.Format = s.info.Format
	}
	if r, ok := s.sel.Region(); ok {
		snap.Region = &r
	}
	return snap
}
