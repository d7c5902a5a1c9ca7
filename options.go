package okfield

// Option configures a render call.
//
// Example:
//
//	// Default: registered accelerator, software fallback
//	pm, err := okfield.Render(1920, 1080, palette, 0.5)
//
//	// Force a specific renderer (dependency injection)
//	pm, err := okfield.Render(1920, 1080, palette, 0.5,
//	    okfield.WithRenderer(myRenderer))
type Option func(*renderOptions)

// renderOptions holds optional configuration for a render call.
type renderOptions struct {
	renderer Renderer
	pixmap   *Pixmap
	workers  int
}

// defaultOptions returns the default render options.
func defaultOptions() renderOptions {
	return renderOptions{
		renderer: nil, // accelerator first, then shared SoftwareRenderer
		pixmap:   nil, // allocated per call
		workers:  0,   // GOMAXPROCS
	}
}

// WithRenderer forces a specific renderer, bypassing the registered GPU
// accelerator. Use this for dependency injection or to pin the CPU path.
func WithRenderer(r Renderer) Option {
	return func(o *renderOptions) {
		o.renderer = r
	}
}

// WithPixmap renders into an existing pixmap instead of allocating one.
// The pixmap dimensions must match the requested viewport.
func WithPixmap(pm *Pixmap) Option {
	return func(o *renderOptions) {
		o.pixmap = pm
	}
}

// WithWorkers sets the CPU worker count for the software path.
// Zero or negative selects GOMAXPROCS. Ignored when a custom renderer or
// the GPU accelerator handles the frame.
func WithWorkers(n int) Option {
	return func(o *renderOptions) {
		o.workers = n
	}
}
