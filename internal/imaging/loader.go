package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageInfo describes a decoded image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format name reported by the registered decoder,
	// e.g. "png", "jpeg", "gif", "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// SizeBytes is the length of the encoded input.
	SizeBytes int64 `json:"size_bytes"`
}

// Decode turns encoded image bytes into a Raster.
//
// The format is sniffed from the content, not from a file name. JPEG images
// carrying an EXIF orientation tag are rotated upright.
//
// # Errors
//
//   - ErrUnsupportedFormat if no registered decoder recognizes the bytes
//   - ErrDecode if the bytes are recognized but corrupt
//   - ctx.Err() if the context is cancelled before decoding finishes
func Decode(ctx context.Context, data []byte) (*Raster, *ImageInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: empty input", ErrUnsupportedFormat)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrDecode, format, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	r, err := FromImage(img)
	if err != nil {
		return nil, nil, err
	}

	return r, &ImageInfo{
		Width:     r.Width,
		Height:    r.Height,
		Format:    format,
		SizeBytes: int64(len(data)),
	}, nil
}

// ImageCache keeps the encoded bytes of image files keyed by path so that
// reloading an unchanged file does not read it again.
//
// An entry is served only while the file's size and modification time match
// what was read; otherwise the file is read again. Only the encoded form is
// cached, so every decode yields a fresh Raster.
//
// ImageCache is safe for concurrent use by multiple goroutines.
type ImageCache struct {
	mu    sync.RWMutex
	files map[string]cachedFile
}

type cachedFile struct {
	data    []byte
	size    int64
	modTime time.Time
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		files: make(map[string]cachedFile),
	}
}

// Read returns the bytes of the file at path, from the cache when the file
// is unchanged since it was cached.
func (c *ImageCache) Read(path string) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		c.mu.Lock()
		delete(c.files, path)
		c.mu.Unlock()
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	c.mu.RLock()
	entry, ok := c.files[path]
	c.mu.RUnlock()
	if ok && entry.size == fi.Size() && entry.modTime.Equal(fi.ModTime()) {
		return entry.data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	c.mu.Lock()
	c.files[path] = cachedFile{data: data, size: fi.Size(), modTime: fi.ModTime()}
	c.mu.Unlock()

	return data, nil
}

// Len returns the number of cached files.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.files)
}
