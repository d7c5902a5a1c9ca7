package okfield

import (
	"github.com/gogpu/okfield/internal/parallel"
)

// SoftwareRenderer is the CPU realization of the color field. It evaluates
// Field.At for every pixel, splitting the viewport into row bands executed
// on a work-stealing worker pool.
//
// SoftwareRenderer is the reference implementation: the GPU path is required
// to agree with it to float32 precision.
type SoftwareRenderer struct {
	pool *parallel.WorkerPool
}

// NewSoftwareRenderer creates a software renderer with the given worker
// count. Zero or negative selects GOMAXPROCS.
func NewSoftwareRenderer(workers int) *SoftwareRenderer {
	return &SoftwareRenderer{
		pool: parallel.NewWorkerPool(workers),
	}
}

// RenderField implements Renderer. Each row band becomes one work item so
// workers can steal rows from each other on uneven machines.
func (r *SoftwareRenderer) RenderField(pm *Pixmap, f *Field) error {
	if pm == nil {
		return ErrNilTarget
	}
	if f == nil {
		return ErrNilField
	}

	width := pm.Width()
	height := pm.Height()
	if width == 0 || height == 0 {
		return nil
	}

	bands := parallel.Bands(height, r.pool.Workers()*4)
	if len(bands) == 1 {
		renderBand(pm, f, width, bands[0])
		return nil
	}

	work := make([]func(), len(bands))
	for i, band := range bands {
		work[i] = func() {
			renderBand(pm, f, width, band)
		}
	}
	r.pool.ExecuteAll(work)
	return nil
}

// renderBand evaluates the field over rows [band.Y0, band.Y1).
func renderBand(pm *Pixmap, f *Field, width int, band parallel.Band) {
	for y := band.Y0; y < band.Y1; y++ {
		fy := float32(y)
		for x := 0; x < width; x++ {
			pm.SetPixel(x, y, f.At(float32(x), fy))
		}
	}
}

// Workers returns the renderer's worker count.
func (r *SoftwareRenderer) Workers() int {
	return r.pool.Workers()
}

// Close shuts down the worker pool. The renderer must not be used after
// Close.
func (r *SoftwareRenderer) Close() {
	r.pool.Close()
}
