package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePointerLock struct {
	calls []bool
}

func (f *fakePointerLock) SetPointerLock(locked bool) {
	f.calls = append(f.calls, locked)
}

func TestAsFreeRoamAndAsOrbit(t *testing.T) {
	cam := NewCamera()
	fr := NewFreeRoamController(cam)
	oc := NewOrbitController(cam)

	got, ok := AsFreeRoam(fr)
	assert.True(t, ok)
	assert.NotNil(t, got)
	_, ok = AsOrbit(fr)
	assert.False(t, ok)

	_, ok = AsOrbit(oc)
	assert.True(t, ok)
	_, ok = AsFreeRoam(oc)
	assert.False(t, ok)

	_, ok = AsFreeRoam(nil)
	assert.False(t, ok)
	_, ok = AsOrbit(nil)
	assert.False(t, ok)
}

func TestFreeRoamLockNotifiesOnChangeOnly(t *testing.T) {
	pl := &fakePointerLock{}
	fr := NewFreeRoamController(NewCamera(), WithPointerLock(pl))

	var events []bool
	release := fr.OnLockChange(func(locked bool) { events = append(events, locked) })

	fr.Lock()
	fr.Lock()
	assert.True(t, fr.IsLocked())
	fr.HandlePointerLockChange(false)
	assert.False(t, fr.IsLocked())

	assert.Equal(t, []bool{true, false}, events)
	assert.Equal(t, []bool{true, true}, pl.calls)

	release()
	release()
	fr.Lock()
	assert.Equal(t, []bool{true, false}, events)
}

func TestFreeRoamMovesAlongHorizontalAxes(t *testing.T) {
	cam := NewCamera(WithPosition(mgl32.Vec3{0, 1.6, 9}), WithLookAt(mgl32.Vec3{0, 5, 0}))
	fr := NewFreeRoamController(cam)

	fr.MoveForward(2)
	assertVecInDelta(t, mgl32.Vec3{0, 1.6, 7}, cam.Position())

	fr.MoveRight(1)
	assertVecInDelta(t, mgl32.Vec3{1, 1.6, 7}, cam.Position())

	fr.MoveForward(-3)
	assertVecInDelta(t, mgl32.Vec3{1, 1.6, 10}, cam.Position())
}

func TestFreeRoamLookIgnoredWhileUnlocked(t *testing.T) {
	cam := NewCamera()
	fr := NewFreeRoamController(cam)
	fr.Look(100, 0)
	assert.Equal(t, float32(0), cam.Yaw())

	fr.Lock()
	fr.Look(100, 0)
	assert.InDelta(t, -0.2, cam.Yaw(), eps)
}

func TestOrbitUpdateReaimsCameraAtTarget(t *testing.T) {
	cam := NewCamera(WithPosition(mgl32.Vec3{-0.1, 0.66, 6.69}))
	oc := NewOrbitController(cam)
	target := mgl32.Vec3{-0.1, 3.66, 1.69}
	oc.SetTarget(target)
	oc.Update()

	assert.Equal(t, mgl32.Vec3{-0.1, 0.66, 6.69}, cam.Position())
	assertVecInDelta(t, target.Sub(cam.Position()).Normalize(), cam.Forward())
}

func TestOrbitInputRequiresEnabled(t *testing.T) {
	cam := NewCamera(WithPosition(mgl32.Vec3{0, 0, 5}))
	oc := NewOrbitController(cam)
	oc.Update()

	oc.Rotate(50, 0)
	oc.Zoom(2)
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, cam.Position())

	oc.SetEnabled(true)
	require.True(t, oc.Enabled())
	oc.Zoom(2)
	assert.InDelta(t, 4, cam.Position().Len(), eps)

	oc.Rotate(100, 0)
	assert.InDelta(t, 4, cam.Position().Len(), eps)
	assertVecInDelta(t, cam.Position().Mul(-1).Normalize(), cam.Forward())
}

func TestOrbitClampsRadius(t *testing.T) {
	cam := NewCamera(WithPosition(mgl32.Vec3{0, 0, 5}))
	oc := NewOrbitController(cam, WithRadiusBounds(1, 6))
	oc.Update()
	oc.SetEnabled(true)
	oc.Zoom(100)
	assert.InDelta(t, 1, cam.Position().Len(), eps)
	oc.Zoom(-100)
	assert.InDelta(t, 6, cam.Position().Len(), eps)
}
