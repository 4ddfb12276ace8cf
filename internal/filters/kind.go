package filters

import (
	"fmt"
	"strings"
)

// Kind identifies a filter or adjustment.
type Kind int

const (
	Grayscale Kind = iota
	Sepia
	Invert
	Brightness
	Contrast
)

var kindNames = map[Kind]string{
	Grayscale:  "grayscale",
	Sepia:      "sepia",
	Invert:     "invert",
	Brightness: "brightness",
	Contrast:   "contrast",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsToggle reports whether k is an on/off filter.
func (k Kind) IsToggle() bool {
	return k == Grayscale || k == Sepia || k == Invert
}

// IsAdjustment reports whether k carries a numeric factor.
func (k Kind) IsAdjustment() bool {
	return k == Brightness || k == Contrast
}

// ParseKind converts a name such as "sepia" into a Kind. Matching is
// case-insensitive.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k, s := range kindNames {
		if s == n {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown filter %q", ErrInvalidParameter, name)
}

// MarshalText encodes k by name.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidParameter, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
