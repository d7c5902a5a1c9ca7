package okfield

import "fmt"

// Variant selects which of the two applications' gradient formulas a Field
// uses. The wallpaper and the swatch tool share the formula except for the
// vertical scale constant and whether the Voronoi blend applies; both values
// are deliberate, not interchangeable.
type Variant int

const (
	// VariantWallpaper is the wallpaper field: vertical scale 0.7 with the
	// nearest-palette blend driven by Progress.
	VariantWallpaper Variant = iota

	// VariantSwatch is the plain-gradient swatch field: vertical scale 0.8,
	// no palette, no blend.
	VariantSwatch
)

// String returns the variant name.
func (v Variant) String() string {
	switch v {
	case VariantWallpaper:
		return "wallpaper"
	case VariantSwatch:
		return "swatch"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// verticalScale returns the constant multiplying the normalized Y coordinate
// in the gradient formula. Must match the vertical_scale arguments passed to
// field_color in gpu/shaders/field.wgsl.
func (v Variant) verticalScale() float32 {
	if v == VariantSwatch {
		return 0.8
	}
	return 0.7
}

// blends reports whether the variant applies the Voronoi blend.
func (v Variant) blends() bool {
	return v == VariantWallpaper
}

// Gradient formula constants shared by both variants.
const (
	gradientLightness = 0.7
	gradientXScale    = 0.8
	gradientBias      = -0.4
)

// Field is the per-pixel color field specification: viewport, palette,
// blend progress, and variant. A Field is immutable for the duration of one
// frame evaluation; both execution paths read it without synchronization.
type Field struct {
	// Width and Height are the viewport size in pixels. Both must be
	// positive; pixel coordinates are normalized by them.
	Width, Height float32

	// Palette holds the Oklab colors partitioning screen space. May be
	// empty, in which case the blend is skipped regardless of Progress.
	Palette Palette

	// Progress is the blend weight between the pure gradient (0) and the
	// pure nearest-palette field (1). The core does not clamp it: values
	// outside [0, 1] extrapolate linearly and are visually out of range.
	// Callers animating progress are expected to clamp upstream.
	Progress float32

	// Variant selects the gradient formula variant.
	Variant Variant
}

// OklabAt evaluates the field at pixel coordinate (x, y) in Oklab space,
// before conversion to linear sRGB. Purely functional: no side effects, and
// identical inputs always yield identical outputs.
func (f *Field) OklabAt(x, y float32) Oklab {
	u := x / f.Width
	v := y / f.Height

	c := Oklab{
		L: gradientLightness,
		A: u*gradientXScale + gradientBias,
		B: v*f.Variant.verticalScale() + gradientBias,
	}

	if f.Variant.blends() && f.Progress > 0 && len(f.Palette) > 0 {
		nearest, _ := f.Palette.Nearest(c)
		c = c.Lerp(nearest, f.Progress)
	}
	return c
}

// At evaluates the field at pixel coordinate (x, y) and returns the final
// linear sRGB color, alpha fixed at 1.
func (f *Field) At(x, y float32) RGBA {
	return f.OklabAt(x, y).LinearSRGB()
}
