package okfield

import "math"

// Oklab is a color in the Oklab perceptual color space: lightness L and the
// two chroma axes a and b. It is an immutable value type with no identity
// beyond its coordinates.
type Oklab struct {
	L, A, B float32
}

// RGBA is a linear (not gamma-encoded) sRGB color. Components are nominally
// in [0, 1] but out-of-gamut values are representable; display clamping is
// the caller's concern.
type RGBA struct {
	R, G, B, A float32
}

// Oklab to linear sRGB matrix coefficients.
//
// These constants are the canonical Oklab->linear-sRGB transform.
// They must stay byte-for-byte identical to the ones in gpu/shaders/field.wgsl;
// TestShaderConversionConstants in gpu/ guards against drift.
const (
	oklabM1L2A = 0.3963377774
	oklabM1L2B = 0.2158037573
	oklabM1M2A = -0.1055613458
	oklabM1M2B = -0.0638541728
	oklabM1S2A = -0.0894841775
	oklabM1S2B = -1.2914855480

	oklabM2RL = 4.0767416621
	oklabM2RM = -3.3077115913
	oklabM2RS = 0.2309699292
	oklabM2GL = -1.2684380046
	oklabM2GM = 2.6097574011
	oklabM2GS = -0.3413193965
	oklabM2BL = -0.0041960863
	oklabM2BM = -0.7034186147
	oklabM2BS = 1.7076147010
)

// LinearSRGB converts the color to linear sRGB via the fixed polynomial
// transform. The function is total over finite inputs: out-of-gamut results
// are simply outside [0, 1] per channel, and non-finite inputs propagate.
// Alpha is fixed at 1.
func (c Oklab) LinearSRGB() RGBA {
	l_ := c.L + oklabM1L2A*c.A + oklabM1L2B*c.B
	m_ := c.L + oklabM1M2A*c.A + oklabM1M2B*c.B
	s_ := c.L + oklabM1S2A*c.A + oklabM1S2B*c.B

	l := l_ * l_ * l_
	m := m_ * m_ * m_
	s := s_ * s_ * s_

	return RGBA{
		R: oklabM2RL*l + oklabM2RM*m + oklabM2RS*s,
		G: oklabM2GL*l + oklabM2GM*m + oklabM2GS*s,
		B: oklabM2BL*l + oklabM2BM*m + oklabM2BS*s,
		A: 1,
	}
}

// Lerp performs per-channel linear interpolation between two Oklab colors.
// t is not clamped; values outside [0, 1] extrapolate.
func (c Oklab) Lerp(other Oklab, t float32) Oklab {
	return Oklab{
		L: c.L + (other.L-c.L)*t,
		A: c.A + (other.A-c.A)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// OklabFromLinearSRGB converts a linear sRGB color to Oklab. This is the
// inverse of Oklab.LinearSRGB and is used when ingesting externally supplied
// colors (palette loading, pointer-picked swatches); the per-pixel field
// never calls it.
func OklabFromLinearSRGB(c RGBA) Oklab {
	l := 0.4122214708*c.R + 0.5363325363*c.G + 0.0514459929*c.B
	m := 0.2119034982*c.R + 0.6806995451*c.G + 0.1073969566*c.B
	s := 0.0883024619*c.R + 0.2817188376*c.G + 0.6299787005*c.B

	lc := cbrt32(l)
	mc := cbrt32(m)
	sc := cbrt32(s)

	return Oklab{
		L: 0.2104542553*lc + 0.7936177850*mc - 0.0040720468*sc,
		A: 1.9779984951*lc - 2.4285922050*mc + 0.4505937099*sc,
		B: 0.0259040371*lc + 0.7827717662*mc - 0.8086757660*sc,
	}
}

// SRGBDecode converts a display-encoded sRGB component in [0, 1] to linear.
func SRGBDecode(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return float32(math.Pow((float64(v)+0.055)/1.055, 2.4))
}

// SRGBEncode converts a linear sRGB component in [0, 1] to display-encoded.
func SRGBEncode(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return float32(1.055*math.Pow(float64(v), 1.0/2.4) - 0.055)
}

func cbrt32(v float32) float32 {
	return float32(math.Cbrt(float64(v)))
}

// clamp01 restricts a value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
