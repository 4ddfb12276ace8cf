package filters

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Neutral is the adjustment factor that leaves pixels unchanged.
	Neutral = 1.0

	// MaxAdjustment is the largest accepted brightness or contrast factor
	// (200 % on the slider).
	MaxAdjustment = 2.0
)

// ErrInvalidParameter is returned for unknown kinds, toggles used as
// adjustments and out-of-range factors.
var ErrInvalidParameter = errors.New("invalid filter parameter")

// Entry is one element of the stack. Toggle kinds use Enabled, adjustment
// kinds use Param, which is nil for toggles.
type Entry struct {
	Kind    Kind     `json:"kind"`
	Enabled bool     `json:"enabled,omitempty"`
	Param   *float64 `json:"param,omitempty"`
}

// Stack is the ordered set of active edits.
//
// The zero value is an empty, neutral stack.
type Stack struct {
	toggles    []Kind
	brightness float64
	contrast   float64
	touched    map[Kind]bool
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Toggle adds the filter if it is absent and removes it if it is present.
// It returns whether the filter is enabled afterwards.
func (s *Stack) Toggle(k Kind) (bool, error) {
	if !k.IsToggle() {
		return false, fmt.Errorf("%w: %s is not a toggle filter", ErrInvalidParameter, k)
	}
	for i, t := range s.toggles {
		if t == k {
			s.toggles = append(s.toggles[:i:i], s.toggles[i+1:]...)
			return false, nil
		}
	}
	s.toggles = append(s.toggles, k)
	return true, nil
}

// Enabled reports whether toggle filter k is in the stack.
func (s *Stack) Enabled(k Kind) bool {
	for _, t := range s.toggles {
		if t == k {
			return true
		}
	}
	return false
}

// SetAdjustment sets the brightness or contrast factor. The factor must lie
// in [0, MaxAdjustment]; 1.0 is neutral.
func (s *Stack) SetAdjustment(k Kind, factor float64) error {
	if !k.IsAdjustment() {
		return fmt.Errorf("%w: %s is not an adjustment", ErrInvalidParameter, k)
	}
	if math.IsNaN(factor) || factor < 0 || factor > MaxAdjustment {
		return fmt.Errorf("%w: %s factor %g outside [0, %g]", ErrInvalidParameter, k, factor, MaxAdjustment)
	}
	if s.touched == nil {
		s.touched = make(map[Kind]bool)
	}
	s.touched[k] = true
	if k == Brightness {
		s.brightness = factor
	} else {
		s.contrast = factor
	}
	return nil
}

// Adjustment returns the factor for k, Neutral if never set.
func (s *Stack) Adjustment(k Kind) float64 {
	if !s.touched[k] {
		return Neutral
	}
	if k == Brightness {
		return s.brightness
	}
	if k == Contrast {
		return s.contrast
	}
	return Neutral
}

// Reset removes every toggle and restores neutral adjustments.
func (s *Stack) Reset() {
	*s = Stack{}
}

// Neutral reports whether applying the stack would leave pixels unchanged.
func (s *Stack) Neutral() bool {
	if s == nil {
		return true
	}
	return len(s.toggles) == 0 &&
		s.Adjustment(Brightness) == Neutral &&
		s.Adjustment(Contrast) == Neutral
}

// Entries lists the stack in application order: toggles in insertion order,
// then brightness and contrast once they have been set.
func (s *Stack) Entries() []Entry {
	out := make([]Entry, 0, len(s.toggles)+2)
	for _, k := range s.toggles {
		out = append(out, Entry{Kind: k, Enabled: true})
	}
	for _, k := range []Kind{Brightness, Contrast} {
		if s.touched[k] {
			p := s.Adjustment(k)
			out = append(out, Entry{Kind: k, Param: &p})
		}
	}
	return out
}
