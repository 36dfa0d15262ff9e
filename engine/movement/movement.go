package movement

import (
	"github.com/Carmen-Shannon/oxy-room/common"
	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// disengagedDecay is the per-frame velocity decay applied while the rig is not walking.
const disengagedDecay float32 = 0.1

// Keys is the held-direction state for one frame.
type Keys struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
}

// Any reports whether any direction is held.
func (k Keys) Any() bool {
	return k.Forward || k.Back || k.Left || k.Right
}

func boolToFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// Movement turns held keys into a damped walk applied to the free-roam rig.
type Movement interface {
	// Update advances one frame. Walking only happens when rig is a locked free-roam rig;
	// otherwise the velocity keeps decaying toward zero.
	//
	// Parameters:
	//   - delta: elapsed seconds since the last frame
	//   - keys: held directions
	//   - rig: the active control rig, may be nil
	//   - cam: the camera the rig drives
	Update(delta float32, keys Keys, rig camera.Rig, cam camera.Camera)

	// Velocity returns the current local-space velocity (x strafe, z forward/back).
	Velocity() mgl32.Vec3

	// Reset zeroes the velocity.
	Reset()
}

type movementImpl struct {
	velocity mgl32.Vec3

	speed       float32
	damping     float32
	eyeHeight   float32
	clampBounds bool
	boundsX     float32
	boundsZ     float32
}

var _ Movement = &movementImpl{}

// NewMovement creates a Movement with the room's walking defaults.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Movement: the movement component
func NewMovement(options ...MovementBuilderOption) Movement {
	m := &movementImpl{
		speed:     common.WalkSpeed,
		damping:   common.WalkDamping,
		eyeHeight: common.PlayerHeight,
		boundsX:   common.RoomWidth/2 - common.RoomBoundsMargin,
		boundsZ:   common.RoomDepth/2 - common.RoomBoundsMargin,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *movementImpl) Update(delta float32, keys Keys, rig camera.Rig, cam camera.Camera) {
	fr, ok := camera.AsFreeRoam(rig)
	if !ok || !fr.IsLocked() || cam == nil {
		m.velocity = common.LerpVec3(m.velocity, mgl32.Vec3{}, disengagedDecay)
		return
	}

	factor := mgl32.Clamp(delta*m.damping, 0, 1)
	m.velocity = common.LerpVec3(m.velocity, mgl32.Vec3{0, m.velocity.Y(), 0}, factor)

	dir := mgl32.Vec3{
		boolToFloat(keys.Right) - boolToFloat(keys.Left),
		0,
		boolToFloat(keys.Forward) - boolToFloat(keys.Back),
	}
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	if keys.Forward || keys.Back {
		m.velocity[2] -= dir.Z() * m.speed * delta
	}
	if keys.Left || keys.Right {
		m.velocity[0] -= dir.X() * m.speed * delta
	}

	fr.MoveRight(-m.velocity.X() * delta)
	fr.MoveForward(-m.velocity.Z() * delta)

	pos := cam.Position()
	if m.clampBounds {
		pos[0] = mgl32.Clamp(pos[0], -m.boundsX, m.boundsX)
		pos[2] = mgl32.Clamp(pos[2], -m.boundsZ, m.boundsZ)
	}
	pos[1] = m.eyeHeight
	cam.SetPosition(pos)
}

func (m *movementImpl) Velocity() mgl32.Vec3 {
	return m.velocity
}

func (m *movementImpl) Reset() {
	m.velocity = mgl32.Vec3{}
}
