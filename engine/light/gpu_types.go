package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights caps the lights written to the light storage buffer.
const MaxGPULights = 16

// GPULightSource is the WGSL definition matching GPULight (64 bytes, std430).
const GPULightSource = `struct Light {
    position: vec3<f32>,
    light_type: u32,
    color: vec3<f32>,
    intensity: f32,
    direction: vec3<f32>,
    light_range: f32,
    ground_color: vec3<f32>,
    casts_shadow: u32,
};

struct LightHeader {
    count: u32,
    _pad0: u32,
    _pad1: u32,
    _pad2: u32,
};
`

// GPULight is the GPU-aligned representation of a single light.
// Size: 64 bytes.
type GPULight struct {
	Position    [3]float32 // offset  0
	LightType   uint32     // offset 12
	Color       [3]float32 // offset 16
	Intensity   float32    // offset 28
	Direction   [3]float32 // offset 32
	LightRange  float32    // offset 44
	GroundColor [3]float32 // offset 48
	CastsShadow uint32     // offset 60
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalTo writes the 64-byte GPU layout into buf.
//
// Parameters:
//   - buf: destination, at least 64 bytes
func (g *GPULight) MarshalTo(buf []byte) {
	putVec3(buf[0:12], g.Position)
	binary.LittleEndian.PutUint32(buf[12:16], g.LightType)
	putVec3(buf[16:28], g.Color)
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Intensity))
	putVec3(buf[32:44], g.Direction)
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(g.LightRange))
	putVec3(buf[48:60], g.GroundColor)
	binary.LittleEndian.PutUint32(buf[60:64], g.CastsShadow)
}

// ToGPULight converts a Light to its GPU layout.
func ToGPULight(l Light) GPULight {
	var casts uint32
	if l.CastsShadows() && l.Type() == LightTypeDirectional {
		casts = 1
	}
	return GPULight{
		Position:    [3]float32(l.Position()),
		LightType:   uint32(l.Type()),
		Color:       [3]float32(l.Color()),
		Intensity:   l.Intensity(),
		Direction:   [3]float32(l.Direction()),
		LightRange:  l.Range(),
		GroundColor: [3]float32(l.GroundColor()),
		CastsShadow: casts,
	}
}

// GPUShadowUniformSource is the WGSL declaration matching GPUShadowUniform.
const GPUShadowUniformSource = `struct ShadowUniform {
    view_proj: mat4x4<f32>,
    bias: f32,
    enabled: u32,
    _pad0: f32,
    _pad1: f32,
};
`

// GPUShadowUniform is the light-space transform of the directional shadow map.
// Size: 80 bytes.
type GPUShadowUniform struct {
	ViewProj [16]float32 // offset  0
	Bias     float32     // offset 64
	Enabled  uint32      // offset 68
	_pad     [2]float32  // offset 72
}

// Size returns the size of the GPUShadowUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUShadowUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a little-endian byte buffer.
//
// Parameters:
//   - enabled: false writes Enabled as zero, for nodes that do not receive shadows
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUShadowUniform) Marshal(enabled bool) []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(g.Bias))
	if enabled {
		binary.LittleEndian.PutUint32(buf[68:72], g.Enabled)
	}
	return buf
}

// MarshalLightBuffer packs enabled lights behind a 16-byte count header.
//
// Parameters:
//   - lights: the scene lights; disabled lights are skipped and at most MaxGPULights are written
//
// Returns:
//   - []byte: header followed by the light array
func MarshalLightBuffer(lights []Light) []byte {
	var g GPULight
	stride := g.Size()
	buf := make([]byte, 16, 16+len(lights)*stride)
	count := 0
	for _, l := range lights {
		if l == nil || !l.Enabled() || count == MaxGPULights {
			continue
		}
		g = ToGPULight(l)
		buf = append(buf, make([]byte, stride)...)
		g.MarshalTo(buf[16+count*stride:])
		count++
	}
	binary.LittleEndian.PutUint32(buf[0:4], uint32(count))
	return buf
}

func putVec3(buf []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
}
