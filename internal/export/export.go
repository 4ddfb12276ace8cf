// Package export materializes flat rasters from the edit pipeline: crop
// commits and encoded downloads. Both work at the raster's native resolution
// and ignore the on-screen zoom and pan.
package export

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-edit-mcp/internal/filters"
	raster "github.com/ironsheep/image-edit-mcp/internal/imaging"
	"github.com/ironsheep/image-edit-mcp/internal/selection"
)

// DefaultFilename is the suggested name for downloads.
const DefaultFilename = "edited-image.png"

// Bake applies the stack to src at native resolution.
func Bake(src *raster.Raster, stack *filters.Stack) (*raster.Raster, error) {
	if src == nil {
		return nil, raster.ErrNoImageLoaded
	}
	if stack == nil {
		return src.Clone(), nil
	}
	return stack.ApplyAll(src)
}

// CommitCrop bakes the stack into src and extracts region, rounded to whole
// pixels and clipped to the image.
//
// # Errors
//
//   - ErrNoImageLoaded if src is nil
//   - ErrInvalidRegion if region is nil or has zero area after rounding
func CommitCrop(src *raster.Raster, stack *filters.Stack, region *selection.Rect) (*raster.Raster, error) {
	if src == nil {
		return nil, raster.ErrNoImageLoaded
	}
	if region == nil || region.Empty() {
		return nil, fmt.Errorf("%w: no region selected", raster.ErrInvalidRegion)
	}
	rect := region.Pixels()
	if rect.Empty() {
		return nil, fmt.Errorf("%w: region %+v rounds to zero area", raster.ErrInvalidRegion, *region)
	}

	baked, err := Bake(src, stack)
	if err != nil {
		return nil, err
	}
	return raster.Extract(baked, rect)
}

// Format is a lossless output encoding.
type Format = imaging.Format

// FormatFromFilename picks the encoding from a file extension. Only lossless
// formats are accepted: PNG, BMP and TIFF. An empty extension means PNG.
func FormatFromFilename(name string) (Format, error) {
	if filepath.Ext(name) == "" {
		return imaging.PNG, nil
	}
	f, err := imaging.FormatFromFilename(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", raster.ErrUnsupportedFormat, filepath.Ext(name))
	}
	return checkLossless(f)
}

func checkLossless(f Format) (Format, error) {
	switch f {
	case imaging.PNG, imaging.BMP, imaging.TIFF:
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s is not lossless", raster.ErrUnsupportedFormat, strings.ToLower(f.String()))
	}
}

// Encode bakes the stack into src and writes it to w in the given format.
func Encode(w io.Writer, src *raster.Raster, stack *filters.Stack, format Format) error {
	if src == nil {
		return raster.ErrNoImageLoaded
	}
	if _, err := checkLossless(format); err != nil {
		return err
	}

	baked, err := Bake(src, stack)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, baked.Image(), format); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// EncodeBytes is Encode into a byte slice.
func EncodeBytes(src *raster.Raster, stack *filters.Stack, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, src, stack, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
