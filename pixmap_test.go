package okfield

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestPixmapSetGetPixel(t *testing.T) {
	pm := NewPixmap(4, 3)

	c := RGBA{R: 0.25, G: 0.5, B: 0.75, A: 1}
	pm.SetPixel(2, 1, c)

	if got := pm.GetPixel(2, 1); got != c {
		t.Errorf("GetPixel(2, 1) = %+v, want %+v", got, c)
	}
	if got := pm.GetPixel(0, 0); got != (RGBA{}) {
		t.Errorf("GetPixel(0, 0) = %+v, want zero", got)
	}
}

func TestPixmapBoundsChecks(t *testing.T) {
	pm := NewPixmap(2, 2)

	// Out-of-bounds writes are dropped, reads return zero.
	pm.SetPixel(-1, 0, RGBA{R: 1})
	pm.SetPixel(0, -1, RGBA{R: 1})
	pm.SetPixel(2, 0, RGBA{R: 1})
	pm.SetPixel(0, 2, RGBA{R: 1})

	for _, v := range pm.Data() {
		if v != 0 {
			t.Fatal("out-of-bounds SetPixel modified the buffer")
		}
	}
	if got := pm.GetPixel(5, 5); got != (RGBA{}) {
		t.Errorf("GetPixel out of bounds = %+v, want zero", got)
	}
}

func TestPixmapStoresOutOfGamut(t *testing.T) {
	pm := NewPixmap(1, 1)
	c := RGBA{R: -0.5, G: 1.5, B: 0.5, A: 1}
	pm.SetPixel(0, 0, c)

	// Values are stored as-is; clamping happens on export only.
	if got := pm.GetPixel(0, 0); got != c {
		t.Errorf("GetPixel = %+v, want unclamped %+v", got, c)
	}
}

func TestPixmapClear(t *testing.T) {
	pm := NewPixmap(3, 3)
	pm.Clear(RGBA{R: 0.1, G: 0.2, B: 0.3, A: 1})

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := pm.GetPixel(x, y); got != (RGBA{R: 0.1, G: 0.2, B: 0.3, A: 1}) {
				t.Fatalf("pixel (%d, %d) = %+v after Clear", x, y, got)
			}
		}
	}
}

func TestPixmapToImage(t *testing.T) {
	pm := NewPixmap(2, 1)
	pm.SetPixel(0, 0, RGBA{R: 1, G: 0, B: 0, A: 1})
	pm.SetPixel(1, 0, RGBA{R: 2, G: -1, B: 0.5, A: 1}) // out of gamut

	img := pm.ToImage()
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v", img.Bounds())
	}

	// Linear 1 encodes to 255, linear 0 to 0.
	if r := img.Pix[0]; r != 255 {
		t.Errorf("pixel 0 R = %d, want 255", r)
	}
	if g := img.Pix[1]; g != 0 {
		t.Errorf("pixel 0 G = %d, want 0", g)
	}

	// Out-of-gamut components clamp on export.
	if r := img.Pix[4]; r != 255 {
		t.Errorf("pixel 1 R = %d, want 255 (clamped)", r)
	}
	if g := img.Pix[5]; g != 0 {
		t.Errorf("pixel 1 G = %d, want 0 (clamped)", g)
	}

	// Linear 0.5 display-encodes to ~188, well above the naive 128.
	want := uint8(SRGBEncode(0.5)*255 + 0.5)
	if b := img.Pix[6]; b != want {
		t.Errorf("pixel 1 B = %d, want %d (display-encoded)", b, want)
	}
}

func TestPixmapScale(t *testing.T) {
	pm := NewPixmap(8, 8)
	pm.Clear(RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1})

	img := pm.Scale(4, 2)
	if img.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Fatalf("scaled bounds = %v, want 4x2", img.Bounds())
	}

	// Uniform input stays uniform under resampling.
	want := img.Pix[0]
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != want {
			t.Fatalf("scaled pixel %d = %d, want %d", i/4, img.Pix[i], want)
		}
	}
}

func TestPixmapImageInterface(t *testing.T) {
	pm := NewPixmap(2, 2)
	var _ image.Image = pm

	if pm.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("Bounds = %v", pm.Bounds())
	}
	if pm.ColorModel() == nil {
		t.Error("ColorModel is nil")
	}
	_ = pm.At(0, 0)
}

func TestPixmapSavePNG(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Clear(RGBA{R: 0.2, G: 0.4, B: 0.6, A: 1})

	path := filepath.Join(t.TempDir(), "out.png")
	if err := pm.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}
}
