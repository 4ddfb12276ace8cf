package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates an in-memory test image filled with one color
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createGradientRaster creates a raster whose pixel (x,y) is (x, y, x+y, 255)
func createGradientRaster(t *testing.T, width, height int) *Raster {
	t.Helper()
	r, err := NewRaster(width, height)
	if err != nil {
		t.Fatalf("NewRaster failed: %v", err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := r.Offset(x, y)
			r.Pix[i] = uint8(x)
			r.Pix[i+1] = uint8(y)
			r.Pix[i+2] = uint8(x + y)
			r.Pix[i+3] = 255
		}
	}
	return r
}

func TestNewRaster(t *testing.T) {
	r, err := NewRaster(10, 4)
	if err != nil {
		t.Fatalf("NewRaster failed: %v", err)
	}
	if r.Width != 10 || r.Height != 4 {
		t.Errorf("dimensions: got %dx%d, want 10x4", r.Width, r.Height)
	}
	if len(r.Pix) != 10*4*4 {
		t.Errorf("len(Pix): got %d, want %d", len(r.Pix), 10*4*4)
	}
}

func TestNewRaster_InvalidSize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRaster(tt.w, tt.h); err == nil {
				t.Error("NewRaster should fail for non-positive sizes")
			}
		})
	}
}

func TestFromImage(t *testing.T) {
	img := createInMemoryImage(8, 6, color.RGBA{10, 20, 30, 255})

	r, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if r.Width != 8 || r.Height != 6 {
		t.Fatalf("dimensions: got %dx%d, want 8x6", r.Width, r.Height)
	}
	red, green, blue, alpha := r.RGBA(7, 5)
	if red != 10 || green != 20 || blue != 30 || alpha != 255 {
		t.Errorf("pixel: got (%d,%d,%d,%d), want (10,20,30,255)", red, green, blue, alpha)
	}
}

func TestFromImage_RebasesBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 9, 8))
	img.SetNRGBA(5, 5, color.NRGBA{1, 2, 3, 4})

	r, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if r.Width != 4 || r.Height != 3 {
		t.Fatalf("dimensions: got %dx%d, want 4x3", r.Width, r.Height)
	}
	red, green, blue, alpha := r.RGBA(0, 0)
	if red != 1 || green != 2 || blue != 3 || alpha != 4 {
		t.Errorf("top-left pixel: got (%d,%d,%d,%d), want (1,2,3,4)", red, green, blue, alpha)
	}
}

func TestFromImage_Nil(t *testing.T) {
	if _, err := FromImage(nil); !errors.Is(err, ErrNoImageLoaded) {
		t.Errorf("FromImage(nil): got %v, want ErrNoImageLoaded", err)
	}
}

func TestRaster_ImageSharesPixels(t *testing.T) {
	r := createGradientRaster(t, 4, 4)
	img := r.Image()

	if img.Bounds() != r.Bounds() {
		t.Errorf("bounds: got %v, want %v", img.Bounds(), r.Bounds())
	}
	c := img.NRGBAAt(3, 2)
	if c.R != 3 || c.G != 2 || c.B != 5 {
		t.Errorf("NRGBAAt(3,2): got %v, want (3,2,5)", c)
	}
}

func TestRaster_CloneIsDeep(t *testing.T) {
	r := createGradientRaster(t, 3, 3)
	c := r.Clone()

	if !r.Equal(c) {
		t.Fatal("clone should equal source")
	}
	c.Pix[0] = 99
	if r.Pix[0] == 99 {
		t.Error("modifying clone changed source")
	}
	if r.Equal(c) {
		t.Error("Equal should report the difference")
	}
}

func TestRaster_Equal(t *testing.T) {
	a := createGradientRaster(t, 3, 3)
	b := createGradientRaster(t, 3, 4)

	if a.Equal(b) {
		t.Error("rasters of different size must not be equal")
	}
	var nilRaster *Raster
	if a.Equal(nilRaster) {
		t.Error("raster must not equal nil")
	}
	if !nilRaster.Equal(nil) {
		t.Error("nil must equal nil")
	}
}
