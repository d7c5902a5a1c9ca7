//go:build !nogpu

package gpu

import (
	"log/slog"
	"sync"

	"github.com/gogpu/okfield"
)

// Accelerator adapts FieldRenderer to the okfield.GPUAccelerator interface.
type Accelerator struct {
	mu       sync.Mutex
	renderer *FieldRenderer
	log      *slog.Logger
}

var _ okfield.GPUAccelerator = (*Accelerator)(nil)

// NewAccelerator creates an unregistered, uninitialized accelerator.
// Most users rely on the package init registration instead.
func NewAccelerator() *Accelerator {
	return &Accelerator{log: okfield.Logger()}
}

// Name implements okfield.GPUAccelerator.
func (a *Accelerator) Name() string { return "wgpu" }

// Init opens the GPU device and builds the compute pipelines.
func (a *Accelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.renderer != nil {
		return nil
	}
	r, err := NewFieldRenderer(a.log)
	if err != nil {
		return err
	}
	a.renderer = r
	return nil
}

// Close releases GPU resources.
func (a *Accelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.renderer != nil {
		a.renderer.Destroy()
		a.renderer = nil
	}
}

// RenderField implements okfield.GPUAccelerator.
func (a *Accelerator) RenderField(pm *okfield.Pixmap, f *okfield.Field) error {
	a.mu.Lock()
	r := a.renderer
	a.mu.Unlock()
	if r == nil {
		return okfield.ErrFallbackToCPU
	}
	return r.RenderField(pm, f)
}

// SetLogger receives the logger configured via okfield.SetLogger.
func (a *Accelerator) SetLogger(l *slog.Logger) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.log = l
	if a.renderer != nil {
		a.renderer.mu.Lock()
		a.renderer.log = l
		a.renderer.mu.Unlock()
	}
}

func init() {
	if err := okfield.RegisterAccelerator(NewAccelerator()); err != nil {
		okfield.Logger().Warn("okfield/gpu: GPU accelerator not available", "err", err)
	}
}
