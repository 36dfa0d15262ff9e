package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func assertVecInDelta(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v vs %v", i, want, got)
	}
}

func TestNewCameraFacesNegativeZ(t *testing.T) {
	c := NewCamera()
	assertVecInDelta(t, mgl32.Vec3{0, 0, -1}, c.Forward())
	assert.InDelta(t, mgl32.DegToRad(75), c.Fov(), eps)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
}

func TestLookAtPointsForwardAtTarget(t *testing.T) {
	cases := []mgl32.Vec3{
		{0, 1.6, 0},
		{3, 0, 0},
		{-2, 4, 7},
		{0.5, -1, -3},
	}
	for _, target := range cases {
		c := NewCamera(WithPosition(mgl32.Vec3{0, 1.6, 9}))
		c.LookAt(target)
		want := target.Sub(c.Position()).Normalize()
		assertVecInDelta(t, want, c.Forward())
	}
}

func TestLookAtCoincidentPointKeepsOrientation(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{1, 2, 3}), WithLookAt(mgl32.Vec3{1, 2, 0}))
	before := c.Forward()
	c.LookAt(mgl32.Vec3{1, 2, 3})
	assertVecInDelta(t, before, c.Forward())
}

func TestOrientationRotatesNegativeZToForward(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{0, 1.6, 9}), WithLookAt(mgl32.Vec3{2, 1, 0}))
	ahead := c.Orientation().Rotate(mgl32.Vec3{0, 0, -1})
	assertVecInDelta(t, c.Forward(), ahead)
}

func TestRotateClampsPitch(t *testing.T) {
	c := NewCamera()
	c.Rotate(0, 10)
	assert.InDelta(t, maxPitch, c.Pitch(), eps)
	c.Rotate(0, -20)
	assert.InDelta(t, -maxPitch, c.Pitch(), eps)
}

func TestCenterRayMatchesPose(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{0, 1.6, 9}), WithLookAt(mgl32.Vec3{0, 1.6, 0}))
	origin, dir := c.CenterRay()
	assert.Equal(t, mgl32.Vec3{0, 1.6, 9}, origin)
	assertVecInDelta(t, mgl32.Vec3{0, 0, -1}, dir)
}

func TestViewMatrixMapsTargetOntoNegativeZ(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{1, 2, 3}), WithLookAt(mgl32.Vec3{4, 2, -1}))
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{4, 2, -1, 1})
	assert.InDelta(t, 0, p.X(), eps)
	assert.InDelta(t, 0, p.Y(), eps)
	assert.InDelta(t, -5, p.Z(), eps)
}

func TestProjectionDepthInWebGPURange(t *testing.T) {
	c := NewCamera(WithNear(0.5), WithFar(50))
	near := c.ProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, -0.5, 1})
	far := c.ProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, -50, 1})
	assert.InDelta(t, 0, near.Z()/near.W(), eps)
	assert.InDelta(t, 1, far.Z()/far.W(), eps)
}

func TestSetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera(WithAspect(1.5))
	c.SetAspect(0)
	assert.Equal(t, float32(1.5), c.Aspect())
	c.SetAspect(2)
	assert.Equal(t, float32(2), c.Aspect())
}

func TestGPUUniformMarshal(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{1, 2, 3}))
	u := c.GPUUniform()
	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, [3]float32{1, 2, 3}, u.CameraPosition)
	assert.Equal(t, math.Float32bits(1), uint32(buf[64])|uint32(buf[65])<<8|uint32(buf[66])<<16|uint32(buf[67])<<24)
}

func TestCameraStateIsValueSnapshot(t *testing.T) {
	pos := mgl32.Vec3{0, 1.6, 9}
	s := NewCameraState(pos, mgl32.Vec3{0, 1.6, 0})
	pos[0] = 42
	assert.Equal(t, mgl32.Vec3{0, 1.6, 9}, s.Position())
	assert.True(t, s.Equal(NewCameraState(mgl32.Vec3{0, 1.6, 9}, mgl32.Vec3{0, 1.6, 0})))
	assert.False(t, s.Equal(NewCameraState(mgl32.Vec3{0, 1.6, 9}, mgl32.Vec3{0, 1.6, 1})))
}
