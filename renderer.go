package okfield

import (
	"errors"
	"sync"
)

// Renderer is the interface for evaluating a color field into a pixmap.
// Both realizations of the field (software and GPU) implement it.
type Renderer interface {
	// RenderField evaluates f for every pixel of pm.
	// Returns an error if the rendering operation fails.
	RenderField(pm *Pixmap, f *Field) error
}

// Render entry point errors.
var (
	// ErrInvalidViewport is returned when a viewport dimension is not positive.
	ErrInvalidViewport = errors.New("okfield: viewport dimensions must be positive")

	// ErrNilTarget is returned when the target pixmap is nil.
	ErrNilTarget = errors.New("okfield: target pixmap is nil")

	// ErrNilField is returned when the field is nil.
	ErrNilField = errors.New("okfield: field is nil")

	// ErrViewportMismatch is returned when a caller-supplied pixmap does not
	// match the requested viewport size.
	ErrViewportMismatch = errors.New("okfield: pixmap size does not match viewport")
)

// defaultSoftware is the shared CPU renderer used when no custom renderer is
// injected and the GPU accelerator declines the frame. Created lazily; its
// worker pool lives for the process lifetime.
var defaultSoftware = sync.OnceValue(func() *SoftwareRenderer {
	return NewSoftwareRenderer(0)
})

// Render evaluates the wallpaper color field (VariantWallpaper, vertical
// scale 0.7) over a width x height viewport and returns the resulting linear
// sRGB pixel buffer.
//
// progress is the blend weight between the pure gradient (0) and the pure
// nearest-palette field (1); it is not clamped. An empty palette disables
// the blend regardless of progress, yielding the pure gradient.
//
// If a GPU accelerator is registered it renders the frame; on any
// accelerator error the software path takes over transparently.
func Render(width, height int, palette Palette, progress float32, opts ...Option) (*Pixmap, error) {
	f := &Field{
		Width:    float32(width),
		Height:   float32(height),
		Palette:  palette,
		Progress: progress,
		Variant:  VariantWallpaper,
	}
	return renderField(f, width, height, opts)
}

// RenderGradient evaluates the plain-gradient swatch field (VariantSwatch,
// vertical scale 0.8) with no palette and no blend.
func RenderGradient(width, height int, opts ...Option) (*Pixmap, error) {
	f := &Field{
		Width:   float32(width),
		Height:  float32(height),
		Variant: VariantSwatch,
	}
	return renderField(f, width, height, opts)
}

// renderField runs the accelerator-first, CPU-fallback control flow shared
// by the entry points.
func renderField(f *Field, width, height int, opts []Option) (*Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidViewport
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	pm := o.pixmap
	if pm == nil {
		pm = NewPixmap(width, height)
	} else if pm.Width() != width || pm.Height() != height {
		return nil, ErrViewportMismatch
	}

	if o.renderer != nil {
		if err := o.renderer.RenderField(pm, f); err != nil {
			return nil, err
		}
		return pm, nil
	}

	if a := Accelerator(); a != nil {
		err := a.RenderField(pm, f)
		if err == nil {
			return pm, nil
		}
		if !errors.Is(err, ErrFallbackToCPU) {
			Logger().Warn("okfield: GPU render failed, falling back to CPU",
				"accelerator", a.Name(), "error", err)
		}
	}

	var r Renderer
	if o.workers > 0 {
		sr := NewSoftwareRenderer(o.workers)
		defer sr.Close()
		r = sr
	} else {
		r = defaultSoftware()
	}

	if err := r.RenderField(pm, f); err != nil {
		return nil, err
	}
	return pm, nil
}
