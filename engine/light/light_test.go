package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomLights(t *testing.T) {
	lights := RoomLights(5, 3)
	require.Len(t, lights, 4)

	assert.Equal(t, LightTypeAmbient, lights[0].Type())
	assert.Equal(t, float32(0.4), lights[0].Intensity())

	assert.Equal(t, LightTypeHemisphere, lights[1].Type())
	assert.Equal(t, float32(0.5), lights[1].Intensity())
	assert.InDelta(t, 0x44/255.0, lights[1].GroundColor()[0], 1e-6)

	dir := lights[2]
	assert.Equal(t, LightTypeDirectional, dir.Type())
	assert.True(t, dir.CastsShadows())
	assert.Equal(t, 2048, dir.ShadowMapSize())
	assert.Equal(t, float32(-0.0001), dir.ShadowBias())
	assert.InDelta(t, 1, dir.Direction().Len(), 1e-5)
	assert.Less(t, dir.Direction().Y(), float32(0))

	point := lights[3]
	assert.Equal(t, mgl32.Vec3{0, 2.5, 0}, point.Position())
	assert.Equal(t, float32(0.7), point.Intensity())
	assert.Equal(t, float32(7.5), point.Range())
	assert.Equal(t, mgl32.Vec3{}, point.Direction())
	assert.False(t, point.CastsShadows())
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, HexColor(0xff0000))
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, HexColor(0x0000ff))
}

func TestMarshalLightBuffer(t *testing.T) {
	lights := append(RoomLights(5, 3), NewLight(LightTypePoint, WithEnabled(false)))
	buf := MarshalLightBuffer(lights)

	var g GPULight
	require.Equal(t, 64, g.Size())
	require.Len(t, buf, 16+4*64)
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(buf[0:4]))

	// Point light is the fourth entry.
	off := 16 + 3*64
	assert.Equal(t, uint32(LightTypePoint), binary.LittleEndian.Uint32(buf[off+12:off+16]))
	assert.Equal(t, float32(7.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[off+44:off+48])))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[off+60:off+64]))

	dirOff := 16 + 2*64
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[dirOff+60:dirOff+64]))
}

func TestShadowProjection(t *testing.T) {
	lights := RoomLights(5, 3)
	assert.Equal(t, mgl32.Ident4(), ShadowProjection(lights[0], 5, 20))

	vp := ShadowProjection(lights[2], 5, 20)
	origin := vp.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, origin.X(), 1e-4)
	assert.InDelta(t, 0, origin.Y(), 1e-4)
	// Depth lands inside the WebGPU [0, 1] range.
	assert.Greater(t, origin.Z(), float32(0))
	assert.Less(t, origin.Z(), float32(1))
}

func TestShadowCaster(t *testing.T) {
	lights := RoomLights(5, 3)
	assert.Same(t, lights[2], ShadowCaster(lights))

	assert.Nil(t, ShadowCaster(lights[:2]))
	off := NewLight(LightTypeDirectional, WithShadows(1024, -0.01), WithEnabled(false))
	assert.Nil(t, ShadowCaster([]Light{off, lights[3]}))
}

func TestNewShadowUniform(t *testing.T) {
	lights := RoomLights(5, 3)
	u := NewShadowUniform(lights[2], 5, 20)
	assert.Equal(t, uint32(1), u.Enabled)
	assert.Equal(t, DefaultShadowBias, u.Bias)
	assert.Equal(t, [16]float32(ShadowProjection(lights[2], 5, 20)), u.ViewProj)

	require.Equal(t, 80, u.Size())
	on := u.Marshal(true)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(on[68:72]))
	assert.Equal(t, DefaultShadowBias, math.Float32frombits(binary.LittleEndian.Uint32(on[64:68])))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(u.Marshal(false)[68:72]))

	none := NewShadowUniform(nil, 5, 20)
	assert.Equal(t, uint32(0), none.Enabled)
	assert.Equal(t, [16]float32(mgl32.Ident4()), none.ViewProj)
}
