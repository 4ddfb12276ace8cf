package imaging

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// encodePNG encodes img and fails the test on error
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	data := encodePNG(t, createInMemoryImage(100, 50, color.RGBA{0, 128, 255, 255}))

	r, info, err := Decode(context.Background(), data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if r.Width != 100 || r.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 100x50", r.Width, r.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.SizeBytes != int64(len(data)) {
		t.Errorf("SizeBytes: got %d, want %d", info.SizeBytes, len(data))
	}
	red, green, blue, alpha := r.RGBA(10, 10)
	if red != 0 || green != 128 || blue != 255 || alpha != 255 {
		t.Errorf("pixel: got (%d,%d,%d,%d)", red, green, blue, alpha)
	}
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("definitely not an image")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(context.Background(), tt.data)
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("got %v, want ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestDecode_Corrupt(t *testing.T) {
	data := encodePNG(t, createGradientRaster(t, 64, 64).Image())
	// Keep the header so the format is recognized, drop the pixel data.
	truncated := data[:len(data)/2]

	_, _, err := Decode(context.Background(), truncated)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}

func TestDecode_CancelledContext(t *testing.T) {
	data := encodePNG(t, createInMemoryImage(4, 4, color.White))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := Decode(ctx, data); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestImageCache_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache-test.png")
	if err := os.WriteFile(path, []byte("aaaa"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}

	cache := NewImageCache()
	if data, err := cache.Read(path); err != nil || string(data) != "aaaa" {
		t.Fatalf("first Read: got (%q, %v)", data, err)
	}

	// Same size and modification time: served from the cache.
	if err := os.WriteFile(path, []byte("bbbb"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.Chtimes(path, fi.ModTime(), fi.ModTime()); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	if data, err := cache.Read(path); err != nil || string(data) != "aaaa" {
		t.Errorf("unchanged file: got (%q, %v), want cached aaaa", data, err)
	}

	// A new modification time invalidates the entry.
	later := fi.ModTime().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	if data, err := cache.Read(path); err != nil || string(data) != "bbbb" {
		t.Errorf("touched file: got (%q, %v), want bbbb", data, err)
	}

	// So does a new size.
	if err := os.WriteFile(path, []byte("cccccc"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}
	if data, err := cache.Read(path); err != nil || string(data) != "cccccc" {
		t.Errorf("resized file: got (%q, %v), want cccccc", data, err)
	}

	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestImageCache_RemovedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.png")
	if err := os.WriteFile(path, encodePNG(t, createInMemoryImage(2, 2, color.Black)), 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}

	cache := NewImageCache()
	if _, err := cache.Read(path); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove image: %v", err)
	}
	if _, err := cache.Read(path); err == nil {
		t.Error("Read should fail once the file is removed")
	}
	if cache.Len() != 0 {
		t.Errorf("Len: got %d, want 0 after the file was removed", cache.Len())
	}
}

func TestImageCache_MissingFile(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Read(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Read should fail for a missing file")
	}
}
