package okfield

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Pixmap is a rectangular pixel buffer of linear sRGB colors, four float32
// components per pixel in row-major RGBA order. Linear floats are the only
// form the core ever writes; display encoding happens on export.
type Pixmap struct {
	width  int
	height int
	data   []float32 // linear RGBA, 4 floats per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]float32, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (linear RGBA, 4 floats per pixel).
func (p *Pixmap) Data() []float32 {
	return p.data
}

// SetPixel sets the color of a single pixel. The value is stored as-is:
// out-of-gamut components are preserved until export.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return RGBA{}
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: p.data[i+0],
		G: p.data[i+1],
		B: p.data[i+2],
		A: p.data[i+3],
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// ToImage converts the pixmap to an 8-bit image.RGBA, clamping each channel
// to [0, 1] and applying the sRGB transfer function. Alpha is clamped but
// not encoded.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	for i := 0; i < p.width*p.height; i++ {
		src := p.data[i*4 : i*4+4]
		dst := img.Pix[i*4 : i*4+4]
		dst[0] = uint8(SRGBEncode(clamp01(src[0]))*255 + 0.5)
		dst[1] = uint8(SRGBEncode(clamp01(src[1]))*255 + 0.5)
		dst[2] = uint8(SRGBEncode(clamp01(src[2]))*255 + 0.5)
		dst[3] = uint8(clamp01(src[3])*255 + 0.5)
	}
	return img
}

// Scale returns the pixmap resampled to the given dimensions as an 8-bit
// image, using Catmull-Rom interpolation in display-encoded space. Intended
// for swatch thumbnails, not for further field math.
func (p *Pixmap) Scale(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), p.ToImage(), p.Bounds(), draw.Src, nil)
	return dst
}

// SavePNG saves the pixmap to a PNG file, display-encoded.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface, display-encoded.
func (p *Pixmap) At(x, y int) color.Color {
	c := p.GetPixel(x, y)
	return color.NRGBA{
		R: uint8(SRGBEncode(clamp01(c.R))*255 + 0.5),
		G: uint8(SRGBEncode(clamp01(c.G))*255 + 0.5),
		B: uint8(SRGBEncode(clamp01(c.B))*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
