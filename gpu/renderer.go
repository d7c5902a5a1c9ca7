//go:build !nogpu

package gpu

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/okfield"
)

//go:embed shaders/field.wgsl
var fieldShaderWGSL string

// ErrNotInitialized is returned when rendering is attempted on a renderer
// whose GPU resources are gone.
var ErrNotInitialized = errors.New("okfield/gpu: renderer not initialized")

// gpuTimeout bounds the fence wait for one dispatch.
const gpuTimeout = 5 * time.Second

// FieldRenderer evaluates color fields on the GPU with a wgpu/hal compute
// pipeline. One dispatch covers the whole viewport; the result is read back
// into the caller's pixmap.
//
// Thread safety: FieldRenderer is safe for concurrent use; dispatches are
// serialized internally.
type FieldRenderer struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader           hal.ShaderModule
	bindLayout       hal.BindGroupLayout
	pipeLayout       hal.PipelineLayout
	fieldPipeline    hal.ComputePipeline
	gradientPipeline hal.ComputePipeline

	adapterName string
	log         *slog.Logger
	ready       bool
}

// NewFieldRenderer opens a GPU device and builds the compute pipelines.
// Returns an error if no usable adapter is found or shader compilation
// fails; the caller should fall back to the software path.
func NewFieldRenderer(log *slog.Logger) (*FieldRenderer, error) {
	if log == nil {
		log = okfield.Logger()
	}
	r := &FieldRenderer{log: log}
	if err := r.initGPU(); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

// AdapterName returns the name of the selected GPU adapter.
func (r *FieldRenderer) AdapterName() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.adapterName
}

func (r *FieldRenderer) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("okfield/gpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("okfield/gpu: create instance: %w", err)
	}
	r.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("okfield/gpu: no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("okfield/gpu: open device: %w", err)
	}
	r.device = openDev.Device
	r.queue = openDev.Queue
	r.adapterName = selected.Info.Name

	if err := r.createPipelines(); err != nil {
		return err
	}

	r.ready = true
	r.log.Info("okfield/gpu: GPU renderer initialized", "adapter", r.adapterName)
	return nil
}

func (r *FieldRenderer) createPipelines() error {
	// Compile WGSL to SPIR-V.
	spirvBytes, err := naga.Compile(fieldShaderWGSL)
	if err != nil {
		return fmt.Errorf("okfield/gpu: compile field shader: %w", err)
	}
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "field_shader",
		Source: hal.ShaderSource{SPIRV: spirvCode},
	})
	if err != nil {
		return fmt.Errorf("okfield/gpu: create shader module: %w", err)
	}
	r.shader = shader

	bindLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "field_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("okfield/gpu: create bind group layout: %w", err)
	}
	r.bindLayout = bindLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "field_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{r.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("okfield/gpu: create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	fieldPipeline, err := r.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "field_pipeline", Layout: r.pipeLayout,
		Compute: hal.ComputeState{Module: r.shader, EntryPoint: "cs_field"},
	})
	if err != nil {
		return fmt.Errorf("okfield/gpu: create field pipeline: %w", err)
	}
	r.fieldPipeline = fieldPipeline

	gradientPipeline, err := r.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "gradient_pipeline", Layout: r.pipeLayout,
		Compute: hal.ComputeState{Module: r.shader, EntryPoint: "cs_gradient"},
	})
	if err != nil {
		return fmt.Errorf("okfield/gpu: create gradient pipeline: %w", err)
	}
	r.gradientPipeline = gradientPipeline

	return nil
}

// RenderField implements okfield.Renderer: one compute dispatch over the
// viewport, then a staging readback into pm.
func (r *FieldRenderer) RenderField(pm *okfield.Pixmap, f *okfield.Field) error {
	if pm == nil {
		return okfield.ErrNilTarget
	}
	if f == nil {
		return okfield.ErrNilField
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return ErrNotInitialized
	}

	w := uint32(pm.Width())  //nolint:gosec // dimensions always fit uint32
	h := uint32(pm.Height()) //nolint:gosec // dimensions always fit uint32
	if w == 0 || h == 0 {
		return nil
	}

	pipeline := r.fieldPipeline
	if f.Variant == okfield.VariantSwatch {
		pipeline = r.gradientPipeline
	}

	uniforms := f.Uniforms()
	paletteBytes := f.Palette.Pack()
	if len(paletteBytes) == 0 {
		// The palette binding needs a non-empty buffer; a zero entry with
		// progress forced to 0 keeps the blend off.
		paletteBytes = make([]byte, okfield.PaletteStride)
		uniforms.Progress = 0
	}
	uniformBytes := uniforms.Pack()

	// Each output texel is a vec4<f32>.
	pixelBufSize := uint64(w) * uint64(h) * 16

	uniformBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "field_uniforms", Size: uint64(len(uniformBytes)),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("okfield/gpu: create uniform buffer: %w", err)
	}
	defer r.device.DestroyBuffer(uniformBuf)

	paletteBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "field_palette", Size: uint64(len(paletteBytes)),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("okfield/gpu: create palette buffer: %w", err)
	}
	defer r.device.DestroyBuffer(paletteBuf)

	storageBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "field_output", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("okfield/gpu: create output buffer: %w", err)
	}
	defer r.device.DestroyBuffer(storageBuf)

	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "field_staging", Size: pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("okfield/gpu: create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	r.queue.WriteBuffer(uniformBuf, 0, uniformBytes)
	r.queue.WriteBuffer(paletteBuf, 0, paletteBytes)

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "field_bind", Layout: r.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uint64(len(uniformBytes))}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: paletteBuf.NativeHandle(), Offset: 0, Size: uint64(len(paletteBytes))}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: storageBuf.NativeHandle(), Offset: 0, Size: pixelBufSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("okfield/gpu: create bind group: %w", err)
	}
	defer r.device.DestroyBindGroup(bindGroup)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "field_encoder"})
	if err != nil {
		return fmt.Errorf("okfield/gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("field"); err != nil {
		return fmt.Errorf("okfield/gpu: begin encoding: %w", err)
	}

	computePass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "field_pass"})
	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)
	computePass.Dispatch((w+7)/8, (h+7)/8, 1)
	computePass.End()

	encoder.CopyBufferToBuffer(storageBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: pixelBufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("okfield/gpu: end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("okfield/gpu: create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)
	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("okfield/gpu: submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, gpuTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("okfield/gpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, pixelBufSize)
	if err := r.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("okfield/gpu: readback: %w", err)
	}

	data := pm.Data()
	for i := range data {
		data[i] = okfield.ReadFloat32(readback, i*4)
	}
	return nil
}

// Destroy releases all GPU resources. Safe to call on a partially
// initialized renderer and safe to call multiple times.
func (r *FieldRenderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.device != nil {
		if r.gradientPipeline != nil {
			r.device.DestroyComputePipeline(r.gradientPipeline)
			r.gradientPipeline = nil
		}
		if r.fieldPipeline != nil {
			r.device.DestroyComputePipeline(r.fieldPipeline)
			r.fieldPipeline = nil
		}
		if r.pipeLayout != nil {
			r.device.DestroyPipelineLayout(r.pipeLayout)
			r.pipeLayout = nil
		}
		if r.bindLayout != nil {
			r.device.DestroyBindGroupLayout(r.bindLayout)
			r.bindLayout = nil
		}
		if r.shader != nil {
			r.device.DestroyShaderModule(r.shader)
			r.shader = nil
		}
		r.device.Destroy()
		r.device = nil
	}
	if r.instance != nil {
		r.instance.Destroy()
		r.instance = nil
	}
	r.queue = nil
	r.ready = false
}
