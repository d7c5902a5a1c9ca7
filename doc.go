// Package okfield renders a full-screen procedural color field that blends
// an analytic Oklab gradient with a nearest-palette-color ("Voronoi")
// partition of screen space.
//
// # Overview
//
// okfield is the shared core behind a wallpaper generator and a color-swatch
// tool. Both applications evaluate the same per-pixel formula: a constant
// lightness gradient across normalized screen coordinates, optionally blended
// toward the nearest palette entry in Oklab space, converted to linear sRGB
// for output.
//
// # Quick Start
//
//	import "github.com/gogpu/okfield"
//
//	palette := okfield.Palette{
//	    {L: 0.7, A: -0.2, B: 0.3},
//	    {L: 0.3, A: 0.1, B: -0.1},
//	}
//
//	pm, err := okfield.Render(1920, 1080, palette, 0.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pm.SavePNG("wallpaper.png")
//
// # Dual execution paths
//
// The field is realized twice: as a WGSL program executed on the GPU
// (package gpu, one invocation per pixel) and as a CPU routine
// (SoftwareRenderer, parallel row bands). The two paths share the exact
// polynomial constants for the Oklab to linear-sRGB conversion and the same
// nearest-color metric; keeping them numerically synchronized is the central
// invariant of the package and is enforced by the parity tests in gpu/.
//
// GPU acceleration is opt-in via blank import:
//
//	import _ "github.com/gogpu/okfield/gpu" // registers the wgpu accelerator
//
// # Variants
//
// The two applications use slightly different vertical gradient scales:
// VariantWallpaper (0.7, with the Voronoi blend) and VariantSwatch (0.8,
// plain gradient). Neither is a hidden default; Render selects Wallpaper and
// RenderGradient selects Swatch.
//
// # Coordinate system
//
// Origin (0,0) at top-left, X increases right, Y increases down. Pixel
// coordinates are normalized by the viewport size before evaluation.
package okfield

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
