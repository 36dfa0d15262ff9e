package transition

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-room/common"
	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Easing maps linear progress in [0, 1] to eased progress in [0, 1].
type Easing func(progress float32) float32

// SmoothStep is the default easing.
func SmoothStep(progress float32) float32 {
	return common.SmoothStep(progress, 0, 1)
}

// Linear applies no easing.
func Linear(progress float32) float32 {
	return mgl32.Clamp(progress, 0, 1)
}

// Animator interpolates the camera between two CameraStates over time.
// It never enables or disables rigs; it only writes the camera and, when an
// orbit rig is active, the orbit target.
type Animator interface {
	// Activate starts a transition from start to target and resets progress.
	// The camera snaps to start unless a transition is already running, so a
	// retrigger continues from wherever the camera is now.
	//
	// Parameters:
	//   - start: the pose to interpolate from
	//   - target: the pose to interpolate to
	//   - cam: the camera to drive
	//   - rig: the active control rig, may be nil
	Activate(start, target camera.CameraState, cam camera.Camera, rig camera.Rig)

	// Deactivate stops the running transition without firing the completion callback.
	Deactivate()

	// Update advances the transition by delta seconds.
	//
	// Parameters:
	//   - delta: elapsed seconds since the last frame
	//   - cam: the camera to drive
	//   - rig: the active control rig, may be nil
	//
	// Returns:
	//   - bool: true if the camera was written this frame
	Update(delta float32, cam camera.Camera, rig camera.Rig) bool

	// Animating reports whether a transition is running.
	Animating() bool

	// Progress returns the linear progress of the running transition.
	Progress() float32

	// Start returns the pose of the current or last transition's start.
	Start() camera.CameraState

	// Target returns the pose of the current or last transition's end.
	Target() camera.CameraState

	// OnComplete sets the callback fired once when a transition reaches its target.
	//
	// Parameters:
	//   - fn: the completion callback, nil clears it
	OnComplete(fn func())
}

type animatorImpl struct {
	logger *slog.Logger

	speed  float32
	easing Easing

	start    camera.CameraState
	target   camera.CameraState
	progress float32

	animating  bool
	onComplete func()
}

var _ Animator = &animatorImpl{}

// NewAnimator creates an Animator using the room's transition speed and smooth-step easing.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Animator: the animator
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animatorImpl{
		logger: slog.Default(),
		speed:  common.CameraAnimationSpeed,
		easing: SmoothStep,
	}
	for _, option := range options {
		option(a)
	}
	if a.speed <= 0 {
		a.speed = common.CameraAnimationSpeed
	}
	return a
}

func (a *animatorImpl) Activate(start, target camera.CameraState, cam camera.Camera, rig camera.Rig) {
	a.start = start
	a.target = target
	if !a.animating && cam != nil {
		apply(cam, rig, start.Position(), start.Target(), false)
	}
	a.progress = 0
	a.animating = true
	a.logger.Debug("transition activated", "start", start.String(), "target", target.String())
}

func (a *animatorImpl) Deactivate() {
	a.animating = false
}

func (a *animatorImpl) Update(delta float32, cam camera.Camera, rig camera.Rig) bool {
	if !a.animating || cam == nil {
		return false
	}

	a.progress += delta * a.speed
	if a.progress < 1 {
		eased := a.easing(a.progress)
		pos := common.LerpVec3(a.start.Position(), a.target.Position(), eased)
		look := common.LerpVec3(a.start.Target(), a.target.Target(), eased)
		apply(cam, rig, pos, look, true)
		return true
	}

	apply(cam, rig, a.target.Position(), a.target.Target(), false)
	a.animating = false
	a.logger.Debug("transition complete", "target", a.target.String())
	if a.onComplete != nil {
		a.onComplete()
	}
	return true
}

func (a *animatorImpl) Animating() bool {
	return a.animating
}

func (a *animatorImpl) Progress() float32 {
	return a.progress
}

func (a *animatorImpl) Start() camera.CameraState {
	return a.start
}

func (a *animatorImpl) Target() camera.CameraState {
	return a.target
}

func (a *animatorImpl) OnComplete(fn func()) {
	a.onComplete = fn
}

// apply writes a pose. With an orbit rig the look point becomes the orbit target;
// mid-flight frames additionally require the rig to be enabled. Without one the
// camera looks at the point directly.
func apply(cam camera.Camera, rig camera.Rig, position, look mgl32.Vec3, requireEnabled bool) {
	cam.SetPosition(position)
	if orbit, ok := camera.AsOrbit(rig); ok && (!requireEnabled || orbit.Enabled()) {
		orbit.SetTarget(look)
		orbit.Update()
		return
	}
	cam.LookAt(look)
}
