package view_state

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-room/common"
	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/Carmen-Shannon/oxy-room/engine/input"
	"github.com/Carmen-Shannon/oxy-room/engine/movement"
	"github.com/Carmen-Shannon/oxy-room/engine/picking"
	"github.com/Carmen-Shannon/oxy-room/engine/poi"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(1.0 / 60.0)

type fixture struct {
	cam      camera.Camera
	freeRoam camera.FreeRoamRig
	orbit    camera.OrbitRig
	catalog  *poi.Catalog
	registry picking.Registry
	machine  Machine
	shield   poi.Poi
}

func newFixture(t *testing.T, options ...MachineBuilderOption) *fixture {
	t.Helper()
	cam := camera.NewCamera(
		camera.WithPosition(common.InitialRoomPosition),
		camera.WithLookAt(mgl32.Vec3{0, 0, 0}),
	)
	catalog := poi.DefaultCatalog()
	shield, ok := catalog.Get("detail_2")
	require.True(t, ok)

	registry := picking.NewRegistry()
	registry.Register(picking.Hitbox{PoiID: shield.ID, Center: shield.Position, Radius: common.PoiHitboxRadius})

	f := &fixture{
		cam:      cam,
		freeRoam: camera.NewFreeRoamController(cam),
		orbit:    camera.NewOrbitController(cam),
		catalog:  catalog,
		registry: registry,
		shield:   shield,
	}
	f.machine = NewMachine(cam, f.freeRoam, f.orbit, catalog, registry, options...)
	return f
}

func (f *fixture) settle(t *testing.T) {
	t.Helper()
	for i := 0; f.machine.Mode() == ModeTransitioning; i++ {
		require.Less(t, i, 500, "transition never completed")
		f.machine.Frame(frame, movement.Keys{})
	}
}

func assertVecInDelta(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v vs %v", i, want, got)
	}
}

func TestStartsExploringWithFreeRoamRig(t *testing.T) {
	f := newFixture(t)
	s := f.machine.Snapshot()
	assert.Equal(t, ModeExploring, s.Mode)
	assert.Nil(t, s.ActivePoi)
	assert.Nil(t, s.TransitionStart)
	assert.True(t, s.LastRoomCameraState.Equal(camera.NewCameraState(mgl32.Vec3{0, 1.6, 9}, mgl32.Vec3{0, 1.6, 0})))

	rig := f.machine.ActiveRig()
	require.NotNil(t, rig)
	assert.Equal(t, camera.RigFreeRoam, rig.Kind())
	assert.False(t, f.orbit.Enabled())
}

func TestShieldClickSetsInspectTarget(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.machine.ClickPoi(f.shield))

	s := f.machine.Snapshot()
	require.NotNil(t, s.TransitionTarget)
	assertVecInDelta(t, mgl32.Vec3{-0.1, 0.66, 6.69}, s.TransitionTarget.Position())
	assertVecInDelta(t, mgl32.Vec3{-0.1, 3.66, 1.69}, s.TransitionTarget.Target())
	assert.Equal(t, ModeTransitioning, s.Mode)
	assert.Equal(t, DirectionToPoi, s.Direction)
	require.NotNil(t, s.ActivePoi)
	assert.Equal(t, "detail_2", s.ActivePoi.ID)
}

func TestClickStartIsOneUnitAhead(t *testing.T) {
	f := newFixture(t)
	pos := f.cam.Position()
	fwd := f.cam.Forward()
	require.True(t, f.machine.ClickPoi(f.shield))

	s := f.machine.Snapshot()
	require.NotNil(t, s.TransitionStart)
	assert.Equal(t, pos, s.TransitionStart.Position())
	assertVecInDelta(t, pos.Add(fwd), s.TransitionStart.Target())
	assert.True(t, s.LastRoomCameraState.Equal(*s.TransitionStart))
}

func TestSecondClickWhileTransitioningIsIgnored(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.machine.ClickPoi(f.shield))
	f.machine.Frame(frame, movement.Keys{})
	before := f.machine.Snapshot()

	other := f.shield
	other.ID = "other"
	other.CameraTarget = mgl32.Vec3{4, 4, 4}
	assert.False(t, f.machine.ClickPoi(other))
	assert.False(t, f.machine.SelectPoi("detail_2"))

	after := f.machine.Snapshot()
	assert.Equal(t, before.TransitionStart, after.TransitionStart)
	assert.Equal(t, before.TransitionTarget, after.TransitionTarget)
	assert.Equal(t, before.ActivePoi, after.ActivePoi)
}

func TestBackRoundTripRestoresRoomStateExactly(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.machine.ClickPoi(f.shield))
	s0 := f.machine.Snapshot().LastRoomCameraState
	f.settle(t)
	require.Equal(t, ModeInspecting, f.machine.Mode())

	require.True(t, f.machine.Back())
	s := f.machine.Snapshot()
	require.NotNil(t, s.TransitionTarget)
	assert.True(t, s.TransitionTarget.Equal(s0))
	assert.Equal(t, DirectionToRoom, s.Direction)
	assert.Nil(t, s.ActivePoi)

	f.settle(t)
	assert.Equal(t, ModeExploring, f.machine.Mode())
	assert.Equal(t, s0.Position(), f.cam.Position())
}

func TestBackStartUsesOrbitTarget(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.machine.ClickPoi(f.shield))
	f.settle(t)

	f.orbit.SetTarget(mgl32.Vec3{0, 3, 1})
	require.True(t, f.machine.Back())
	s := f.machine.Snapshot()
	assert.Equal(t, mgl32.Vec3{0, 3, 1}, s.TransitionStart.Target())
	assert.False(t, f.orbit.Enabled())
}

func TestBackGuards(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.machine.Back(), "no active poi")

	require.True(t, f.machine.ClickPoi(f.shield))
	assert.False(t, f.machine.Back(), "already transitioning")
	assert.Equal(t, DirectionToPoi, f.machine.Snapshot().Direction)
}

func TestRigExclusivityPerMode(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.machine.ClickPoi(f.shield))
	assert.Nil(t, f.machine.ActiveRig())
	assert.False(t, f.orbit.Enabled())

	f.settle(t)
	rig := f.machine.ActiveRig()
	require.NotNil(t, rig)
	assert.Equal(t, camera.RigOrbit, rig.Kind())
	assert.True(t, f.orbit.Enabled())
	assert.Equal(t, f.shield.CameraTarget, f.orbit.Target())

	require.True(t, f.machine.Back())
	assert.Nil(t, f.machine.ActiveRig())
	assert.False(t, f.orbit.Enabled())

	f.settle(t)
	rig = f.machine.ActiveRig()
	require.NotNil(t, rig)
	assert.Equal(t, camera.RigFreeRoam, rig.Kind())
	assert.False(t, f.orbit.Enabled())
}

func TestModeAfterSequenceFollowsLastEffectiveAction(t *testing.T) {
	f := newFixture(t)
	actions := []string{"click", "back", "click", "click", "back", "back", "click", "back", "back", "click"}
	inspecting := false
	for _, action := range actions {
		var ok bool
		switch action {
		case "click":
			ok = f.machine.ClickPoi(f.shield)
			assert.Equal(t, !inspecting, ok)
			if ok {
				inspecting = true
			}
		case "back":
			ok = f.machine.Back()
			assert.Equal(t, inspecting, ok)
			if ok {
				inspecting = false
			}
		}
		f.settle(t)
		assert.Equal(t, inspecting, f.machine.Mode() == ModeInspecting, "after %s", action)
		assert.Equal(t, !inspecting, f.machine.Mode() == ModeExploring, "after %s", action)
	}
}

func TestLockedClickOnTargetedPoiStartsTransition(t *testing.T) {
	f := newFixture(t)
	click := input.Click{Button: common.MouseButtonLeft, Origin: input.OriginCanvas}

	assert.True(t, f.machine.HandleClick(click), "first click locks")
	assert.True(t, f.freeRoam.IsLocked())
	assert.True(t, f.machine.Snapshot().Locked)
	assert.Equal(t, ModeExploring, f.machine.Mode())

	f.machine.Frame(frame, movement.Keys{})
	assert.Equal(t, "detail_2", f.machine.Snapshot().TargetedPoiID)

	assert.True(t, f.machine.HandleClick(click))
	s := f.machine.Snapshot()
	assert.Equal(t, ModeTransitioning, s.Mode)
	assert.False(t, f.freeRoam.IsLocked(), "clicking a poi releases the pointer")
	assert.False(t, s.Locked)

	f.machine.Frame(frame, movement.Keys{})
	assert.Equal(t, "", f.machine.Snapshot().TargetedPoiID)
}

func TestClickIgnoredFromControlsAndOtherButtons(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.machine.HandleClick(input.Click{Button: common.MouseButtonLeft, Origin: input.OriginControl}))
	assert.False(t, f.machine.HandleClick(input.Click{Button: common.MouseButtonRight, Origin: input.OriginCanvas}))
	assert.False(t, f.freeRoam.IsLocked())
}

func TestLockedClickWithoutTargetDoesNothing(t *testing.T) {
	f := newFixture(t)
	f.cam.LookAt(mgl32.Vec3{5, 1.6, 9})
	require.True(t, f.machine.RequestLock())
	f.machine.Frame(frame, movement.Keys{})
	assert.Equal(t, "", f.machine.Snapshot().TargetedPoiID)
	assert.False(t, f.machine.HandleClick(input.Click{Button: common.MouseButtonLeft, Origin: input.OriginCanvas}))
	assert.Equal(t, ModeExploring, f.machine.Mode())
}

func TestTargetingRequiresLock(t *testing.T) {
	f := newFixture(t)
	f.machine.Frame(frame, movement.Keys{})
	assert.Equal(t, "", f.machine.Snapshot().TargetedPoiID)
}

func TestLockEventsDoNotChangeMode(t *testing.T) {
	f := newFixture(t)
	f.freeRoam.Lock()
	assert.True(t, f.machine.Snapshot().Locked)
	f.freeRoam.HandlePointerLockChange(false)
	assert.False(t, f.machine.Snapshot().Locked)
	assert.Equal(t, ModeExploring, f.machine.Mode())
}

func TestUnlockKeepsFlagWhenConfigured(t *testing.T) {
	f := newFixture(t, WithUnlockResetsLock(false))
	f.freeRoam.Lock()
	f.freeRoam.Unlock()
	assert.True(t, f.machine.Snapshot().Locked)

	click := input.Click{Button: common.MouseButtonLeft, Origin: input.OriginLockOverlay}
	assert.True(t, f.machine.HandleClick(click), "an unlocked rig can still be re-locked")
	assert.True(t, f.freeRoam.IsLocked())
}

func TestLockListenerReleasedOutsideExploring(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.machine.ClickPoi(f.shield))
	f.freeRoam.Lock()
	assert.False(t, f.machine.Snapshot().Locked)
	assert.False(t, f.machine.RequestLock())
	f.freeRoam.Unlock()

	f.settle(t)
	require.True(t, f.machine.Back())
	f.settle(t)
	f.freeRoam.Lock()
	assert.True(t, f.machine.Snapshot().Locked)
}

func TestMovementOnlyWhileExploring(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.machine.RequestLock())
	start := f.cam.Position()
	for range 30 {
		f.machine.Frame(frame, movement.Keys{Forward: true})
	}
	assert.NotEqual(t, start, f.cam.Position())
	assert.Equal(t, float32(1.6), f.cam.Position().Y())

	require.True(t, f.machine.ClickPoi(f.shield))
	f.settle(t)
	inspectPos := f.cam.Position()
	for range 30 {
		f.machine.Frame(frame, movement.Keys{Forward: true})
	}
	assert.Equal(t, inspectPos, f.cam.Position())
}

func TestSelectPoiUnknownID(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.machine.SelectPoi("missing"))
	assert.True(t, f.machine.SelectPoi("detail_2"))
}

func TestObserversSeeChanges(t *testing.T) {
	f := newFixture(t)
	var modes []Mode
	release := f.machine.Subscribe(func(s Session) { modes = append(modes, s.Mode) })

	require.True(t, f.machine.ClickPoi(f.shield))
	f.settle(t)
	release()
	require.True(t, f.machine.Back())

	require.NotEmpty(t, modes)
	assert.Equal(t, ModeTransitioning, modes[0])
	assert.Equal(t, ModeInspecting, modes[len(modes)-1])
}

func TestSnapshotIsDetached(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.machine.ClickPoi(f.shield))
	s := f.machine.Snapshot()
	s.ActivePoi.Name = "mutated"
	assert.Equal(t, "Shield", f.machine.Snapshot().ActivePoi.Name)
}

func TestScrollAndDragOnlyWhileInspecting(t *testing.T) {
	f := newFixture(t)
	pos := f.cam.Position()
	f.machine.Scroll(3)
	assert.Equal(t, pos, f.cam.Position())

	require.True(t, f.machine.ClickPoi(f.shield))
	f.settle(t)
	before := f.cam.Position().Sub(f.orbit.Target()).Len()
	f.machine.Scroll(2)
	after := f.cam.Position().Sub(f.orbit.Target()).Len()
	assert.Less(t, after, before)

	p := f.cam.Position()
	f.machine.PointerMotion(40, 0, false)
	assert.Equal(t, p, f.cam.Position())
	f.machine.PointerMotion(40, 0, true)
	assert.NotEqual(t, p, f.cam.Position())
}
