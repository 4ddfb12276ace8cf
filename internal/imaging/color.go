package imaging

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBAColor represents an RGBA color with 8-bit components including alpha.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a sampled pixel in several representations.
type ColorResult struct {
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Hex  string    `json:"hex"`  // "#RRGGBB" (no alpha)
	RGBA RGBAColor `json:"rgba"` // Straight RGBA components
	HSL  HSLColor  `json:"hsl"`
}

// SampleColor reads pixel (x, y) of r.
//
// # Errors
//
//   - ErrNoImageLoaded if r is nil
//   - an out-of-bounds error if (x, y) is not inside the raster
func SampleColor(r *Raster, x, y int) (*ColorResult, error) {
	if r == nil {
		return nil, ErrNoImageLoaded
	}
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, r.Width, r.Height)
	}

	red, green, blue, alpha := r.RGBA(x, y)
	c := colorful.Color{R: float64(red) / 255, G: float64(green) / 255, B: float64(blue) / 255}
	h, s, l := c.Hsl()

	return &ColorResult{
		X:    x,
		Y:    y,
		Hex:  fmt.Sprintf("#%02X%02X%02X", red, green, blue),
		RGBA: RGBAColor{R: red, G: green, B: blue, A: alpha},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}, nil
}

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" into a straight
// RGBA color. The leading '#' is optional.
func ParseHexColor(hex string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}

	alpha := uint8(255)
	if len(s) == 8 {
		a, err := strconv.ParseUint(s[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in color %q: %w", hex, err)
		}
		alpha = uint8(a)
		s = s[:6]
	}

	c, err := colorful.Hex("#" + s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
