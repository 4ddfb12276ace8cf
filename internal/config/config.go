// Package config loads editor settings.
//
// Settings are resolved in three layers, later layers winning:
//  1. built-in defaults
//  2. ~/.imageeditrc (key = value lines, '#' starts a comment)
//  3. IMAGE_EDIT_* environment variables
package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// Config holds the editor settings.
type Config struct {
	ViewportWidth  float64
	ViewportHeight float64

	OutlineColor color.NRGBA
	DimAlpha     float64
	ZoomLabel    bool

	SaveDirectory string
	LogLevel      string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ViewportWidth:  1200,
		ViewportHeight: 700,
		OutlineColor:   color.NRGBA{R: 0xff, G: 0x52, B: 0x52, A: 0xff},
		DimAlpha:       0.35,
		LogLevel:       "info",
	}
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// DimColor returns the overlay color painted outside the crop region.
func (c *Config) DimColor() color.NRGBA {
	return color.NRGBA{A: uint8(c.DimAlpha*255 + 0.5)}
}

// Load returns the defaults overlaid with ~/.imageeditrc and the environment.
// A missing rc file is not an error; a malformed value is.
func Load() (*Config, error) {
	cfg := Default()

	if home, err := os.UserHomeDir(); err == nil {
		f, err := os.Open(filepath.Join(home, ".imageeditrc"))
		if err == nil {
			defer f.Close()
			if err := cfg.ReadRC(f); err != nil {
				return nil, err
			}
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadRC applies key = value settings from r.
func (c *Config) ReadRC(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		parts := strings.SplitN(text, "=", 2)
		if len(parts) != 2 {
			continue
		}
		if err := c.set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
			return fmt.Errorf("rc line %d: %w", line, err)
		}
	}
	return scanner.Err()
}

var envKeys = map[string]string{
	"IMAGE_EDIT_VIEWPORT_WIDTH":  "viewport_width",
	"IMAGE_EDIT_VIEWPORT_HEIGHT": "viewport_height",
	"IMAGE_EDIT_OUTLINE_COLOR":   "outline_color",
	"IMAGE_EDIT_DIM_ALPHA":       "dim_alpha",
	"IMAGE_EDIT_ZOOM_LABEL":      "zoom_label",
	"IMAGE_EDIT_SAVE_DIR":        "save_directory",
	"IMAGE_EDIT_LOG_LEVEL":       "log_level",
}

// ApplyEnv applies IMAGE_EDIT_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for env, key := range envKeys {
		v, ok := lookup(env)
		if !ok || v == "" {
			continue
		}
		if err := c.set(key, v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

func (c *Config) set(key, value string) error {
	switch strings.ToLower(key) {
	case "viewport_width", "viewportwidth", "width":
		v, err := parsePositive(value)
		if err != nil {
			return err
		}
		c.ViewportWidth = v
	case "viewport_height", "viewportheight", "height":
		v, err := parsePositive(value)
		if err != nil {
			return err
		}
		c.ViewportHeight = v
	case "outline_color", "outlinecolor":
		col, err := imaging.ParseHexColor(value)
		if err != nil {
			return err
		}
		c.OutlineColor = col
	case "dim_alpha", "dimalpha":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 || v > 1 {
			return fmt.Errorf("dim alpha %q must be a number in [0, 1]", value)
		}
		c.DimAlpha = v
	case "zoom_label", "zoomlabel":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("zoom label %q: %w", value, err)
		}
		c.ZoomLabel = v
	case "save_directory", "save_dir", "savedirectory", "savedir":
		c.SaveDirectory = expandHome(value)
	case "log_level", "loglevel":
		c.LogLevel = strings.ToLower(value)
	}
	return nil
}

func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("size %q must be a positive number", s)
	}
	return v, nil
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
