package model

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the WGSL declaration matching GPUVertex.
const GPUVertexSource = `struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) tex_coord: vec2<f32>,
    @location(3) color: vec4<f32>,
};
`

// GPUVertex is the interleaved vertex layout uploaded for static meshes.
// Size: 48 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 24: UV texture coordinate (8 bytes)
	Color    [4]float32 // offset 32: material diffuse RGB + opacity (16 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalTo writes the vertex into buf, which must hold at least Size bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPUVertex) MarshalTo(buf []byte) {
	put := func(off int, v float32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
	}
	for i := range 3 {
		put(i*4, g.Position[i])
		put(12+i*4, g.Normal[i])
	}
	put(24, g.TexCoord[0])
	put(28, g.TexCoord[1])
	for i := range 4 {
		put(32+i*4, g.Color[i])
	}
}

// Marshal serializes the vertex into a new 48-byte buffer.
//
// Returns:
//   - []byte: buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, g.Size())
	g.MarshalTo(buf)
	return buf
}
