package editor

import (
	"fmt"
	"strings"

	"github.com/ironsheep/image-edit-mcp/internal/viewport"
)

// EventType is the kind of a normalized input event.
type EventType int

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
	Wheel
	KeyDown
	KeyUp
)

var eventNames = map[EventType]string{
	PointerDown: "down",
	PointerMove: "move",
	PointerUp:   "up",
	Wheel:       "wheel",
	KeyDown:     "keydown",
	KeyUp:       "keyup",
}

func (t EventType) String() string {
	if s, ok := eventNames[t]; ok {
		return s
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// ParseEventType converts "down", "move", "up", "wheel", "keydown" or
// "keyup" into an EventType.
func ParseEventType(s string) (EventType, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for t, name := range eventNames {
		if name == n {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", s)
}

// Keys with a meaning to the session.
const (
	// KeySpace held down turns pointer drags into pans.
	KeySpace = "Space"
	// KeyEscape clears the crop region.
	KeyEscape = "Escape"
)

// Event is a normalized input event. Point is in canvas space and is used by
// pointer and wheel events; WheelDelta by wheel events; Key by key events.
type Event struct {
	Type       EventType
	Point      viewport.Point
	WheelDelta float64
	Key        string
}

func isSpace(key string) bool {
	return key == KeySpace || key == " " || strings.EqualFold(key, "space")
}

func isEscape(key string) bool {
	return key == KeyEscape || strings.EqualFold(key, "esc") || strings.EqualFold(key, "escape")
}
