// Package gpu registers the wgpu compute accelerator for color field
// rendering.
//
// Import this package to render fields on the GPU; the compute shader
// evaluates the same formula as the software path and the two are kept in
// float32 agreement.
//
// If GPU initialization fails (no Vulkan available), the registration is
// silently skipped and rendering falls back to CPU.
//
// Usage:
//
//	import _ "github.com/gogpu/okfield/gpu" // enable GPU acceleration
package gpu
