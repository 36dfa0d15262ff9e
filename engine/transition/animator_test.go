package transition

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	roomState    = camera.NewCameraState(mgl32.Vec3{0, 1.6, 9}, mgl32.Vec3{0, 1.6, 8})
	inspectState = camera.NewCameraState(mgl32.Vec3{-0.1, 0.66, 6.69}, mgl32.Vec3{-0.1, 3.66, 1.69})
)

func TestActivateSnapsToStart(t *testing.T) {
	cam := camera.NewCamera(camera.WithPosition(mgl32.Vec3{5, 5, 5}))
	a := NewAnimator()
	a.Activate(roomState, inspectState, cam, nil)

	assert.True(t, a.Animating())
	assert.Equal(t, float32(0), a.Progress())
	assert.Equal(t, roomState.Position(), cam.Position())
}

func TestRetriggerDoesNotSnap(t *testing.T) {
	cam := camera.NewCamera()
	a := NewAnimator()
	a.Activate(roomState, inspectState, cam, nil)
	a.Update(0.1, cam, nil)
	mid := cam.Position()

	a.Activate(inspectState, roomState, cam, nil)
	assert.Equal(t, mid, cam.Position())
	assert.Equal(t, float32(0), a.Progress())
}

func TestDistanceToTargetNonIncreasing(t *testing.T) {
	cam := camera.NewCamera()
	a := NewAnimator()
	a.Activate(roomState, inspectState, cam, nil)

	prev := cam.Position().Sub(inspectState.Position()).Len()
	for a.Animating() {
		a.Update(1.0/60.0, cam, nil)
		d := cam.Position().Sub(inspectState.Position()).Len()
		assert.LessOrEqual(t, d, prev+1e-5)
		prev = d
	}
	assert.Equal(t, inspectState.Position(), cam.Position())
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	cam := camera.NewCamera()
	var completions int
	a := NewAnimator(WithOnComplete(func() { completions++ }))
	a.Activate(roomState, inspectState, cam, nil)

	frames := 0
	for a.Animating() {
		require.Less(t, frames, 1000)
		a.Update(1.0/60.0, cam, nil)
		frames++
	}
	assert.Equal(t, 1, completions)
	// 1 / (2.5 per second) at 60 fps, give or take float accumulation
	assert.InDelta(t, 24, frames, 1)

	settled := cam.Position()
	for range 10 {
		assert.False(t, a.Update(1.0/60.0, cam, nil))
	}
	assert.Equal(t, 1, completions)
	assert.Equal(t, settled, cam.Position())
}

func TestLargeDeltaCompletesInOneStep(t *testing.T) {
	cam := camera.NewCamera()
	var completions int
	a := NewAnimator()
	a.OnComplete(func() { completions++ })
	a.Activate(roomState, inspectState, cam, nil)
	assert.True(t, a.Update(5, cam, nil))
	assert.False(t, a.Animating())
	assert.Equal(t, 1, completions)
	assert.Equal(t, inspectState.Position(), cam.Position())
}

func TestDeactivateSuppressesCompletion(t *testing.T) {
	cam := camera.NewCamera()
	var completions int
	a := NewAnimator(WithOnComplete(func() { completions++ }))
	a.Activate(roomState, inspectState, cam, nil)
	a.Update(0.1, cam, nil)
	a.Deactivate()
	assert.False(t, a.Update(1, cam, nil))
	assert.Equal(t, 0, completions)
}

func TestLookAtWithoutOrbitRig(t *testing.T) {
	cam := camera.NewCamera()
	a := NewAnimator()
	a.Activate(roomState, inspectState, cam, nil)
	a.Update(1, cam, nil)
	want := inspectState.Target().Sub(inspectState.Position()).Normalize()
	got := cam.Forward()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-4)
	}
}

func TestOrbitTargetDrivenOnlyWhenEnabled(t *testing.T) {
	cam := camera.NewCamera()
	orbit := camera.NewOrbitController(cam)
	a := NewAnimator()

	a.Activate(roomState, inspectState, cam, orbit)
	assert.Equal(t, roomState.Target(), orbit.Target(), "activation snap writes the orbit target")

	a.Update(0.1, cam, orbit)
	assert.Equal(t, roomState.Target(), orbit.Target(), "disabled orbit is left alone mid-flight")

	orbit.SetEnabled(true)
	a.Update(0.1, cam, orbit)
	assert.NotEqual(t, roomState.Target(), orbit.Target())

	a.Update(1, cam, orbit)
	assert.Equal(t, inspectState.Target(), orbit.Target())
}

func TestLinearEasing(t *testing.T) {
	cam := camera.NewCamera()
	start := camera.NewCameraState(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	end := camera.NewCameraState(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{10, 0, -1})
	a := NewAnimator(WithEasing(Linear), WithSpeed(1))
	a.Activate(start, end, cam, nil)
	a.Update(0.25, cam, nil)
	assert.InDelta(t, 2.5, cam.Position().X(), 1e-5)
}

func TestNonPositiveSpeedFallsBack(t *testing.T) {
	a := NewAnimator(WithSpeed(0))
	cam := camera.NewCamera()
	a.Activate(roomState, inspectState, cam, nil)
	a.Update(0.1, cam, nil)
	assert.InDelta(t, 0.25, a.Progress(), 1e-6)
}
