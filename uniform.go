package okfield

import "math"

// FieldUniforms is the small fixed-size configuration block shared with the
// GPU program. Must match ScreenUniforms in gpu/shaders/field.wgsl: a vec2
// viewport size, the blend progress, and explicit padding to the 16-byte
// uniform buffer alignment.
type FieldUniforms struct {
	Width    float32 // viewport width in pixels
	Height   float32 // viewport height in pixels
	Progress float32 // Voronoi blend progress
	Pad      float32 // padding for alignment
}

// FieldUniformsSize is the byte size of the packed uniform block.
const FieldUniformsSize = 16

// PaletteStride is the byte stride of one packed palette entry: a
// 4-component float vector, three Oklab channels plus one unused alpha slot.
// The GPU derives the entry count from the buffer size alone.
const PaletteStride = 16

// Uniforms returns the uniform block describing the field's external inputs.
func (f *Field) Uniforms() FieldUniforms {
	return FieldUniforms{
		Width:    f.Width,
		Height:   f.Height,
		Progress: f.Progress,
	}
}

// Pack serializes the uniform block to little-endian bytes for GPU upload.
func (u FieldUniforms) Pack() []byte {
	buf := make([]byte, FieldUniformsSize)
	writeFloat32(buf, 0, u.Width)
	writeFloat32(buf, 4, u.Height)
	writeFloat32(buf, 8, u.Progress)
	writeFloat32(buf, 12, u.Pad)
	return buf
}

// Pack serializes the palette as a read-only storage buffer: one vec4 per
// entry, w component zero.
func (p Palette) Pack() []byte {
	buf := make([]byte, len(p)*PaletteStride)
	for i, c := range p {
		off := i * PaletteStride
		writeFloat32(buf, off+0, c.L)
		writeFloat32(buf, off+4, c.A)
		writeFloat32(buf, off+8, c.B)
		writeFloat32(buf, off+12, 0)
	}
	return buf
}

// Byte serialization helpers for GPU buffer upload.

func writeUint32(buf []byte, offset int, val uint32) {
	buf[offset] = byte(val)
	buf[offset+1] = byte(val >> 8)
	buf[offset+2] = byte(val >> 16)
	buf[offset+3] = byte(val >> 24)
}

func writeFloat32(buf []byte, offset int, val float32) {
	writeUint32(buf, offset, math.Float32bits(val))
}

// ReadFloat32 decodes a little-endian float32 from buf at offset. Used when
// unpacking GPU readback buffers.
func ReadFloat32(buf []byte, offset int) float32 {
	bits := uint32(buf[offset]) |
		uint32(buf[offset+1])<<8 |
		uint32(buf[offset+2])<<16 |
		uint32(buf[offset+3])<<24
	return math.Float32frombits(bits)
}
