package okfield

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the GPU accelerator cannot render this frame.
// The caller should transparently fall back to CPU rendering.
var ErrFallbackToCPU = errors.New("okfield: falling back to CPU rendering")

// GPUAccelerator is an optional GPU realization of the color field.
//
// When registered via RegisterAccelerator, Render tries GPU rendering first.
// If the accelerator returns ErrFallbackToCPU or any other error, rendering
// transparently falls back to the software path.
//
// The GPU implementation lives in the gpu sub-package; users opt in via
// blank import:
//
//	import _ "github.com/gogpu/okfield/gpu" // enables GPU acceleration
type GPUAccelerator interface {
	// Name returns the accelerator name (e.g., "wgpu").
	Name() string

	// Init initializes GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// RenderField evaluates the field for every pixel of pm.
	// The implementation must compute the exact formula of Field.At; the
	// two paths are required to agree to float32 precision.
	// Returns ErrFallbackToCPU if the frame cannot be GPU-rendered.
	RenderField(pm *Pixmap, f *Field) error
}

var (
	accelMu sync.RWMutex
	accel   GPUAccelerator
)

// RegisterAccelerator registers a GPU accelerator for optional GPU rendering.
//
// Only one accelerator can be registered; subsequent calls replace the
// previous one. The accelerator's Init() method is called during
// registration; if it fails, the accelerator is not registered and the
// error is returned.
//
// Typical usage via init() in GPU backend packages:
//
//	func init() {
//	    okfield.RegisterAccelerator(NewAccelerator())
//	}
func RegisterAccelerator(a GPUAccelerator) error {
	if a == nil {
		return errors.New("okfield: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	propagateLogger(a, Logger())
	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// Accelerator returns the currently registered GPU accelerator, or nil.
func Accelerator() GPUAccelerator {
	accelMu.RLock()
	a := accel
	accelMu.RUnlock()
	return a
}
