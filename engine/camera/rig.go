package camera

import "github.com/go-gl/mathgl/mgl32"

// RigKind tags the variant of a control rig.
type RigKind int

const (
	RigFreeRoam RigKind = iota
	RigOrbit
)

func (k RigKind) String() string {
	switch k {
	case RigFreeRoam:
		return "free_roam"
	case RigOrbit:
		return "orbit"
	default:
		return "unknown"
	}
}

// Rig is whatever control rig currently drives the camera.
// Consumers branch on Kind (or AsFreeRoam / AsOrbit) instead of concrete types.
type Rig interface {
	// Kind returns the rig variant.
	Kind() RigKind
}

// FreeRoamRig is first-person look and walk control engaged by locking the pointer.
type FreeRoamRig interface {
	Rig

	// Lock engages the rig and captures the pointer.
	Lock()

	// Unlock releases the pointer and disengages the rig.
	Unlock()

	// IsLocked reports whether the rig is engaged.
	IsLocked() bool

	// MoveForward walks along the horizontal facing direction.
	//
	// Parameters:
	//   - amount: distance in world units, negative walks backward
	MoveForward(amount float32)

	// MoveRight strafes along the horizontal right axis.
	//
	// Parameters:
	//   - amount: distance in world units, negative strafes left
	MoveRight(amount float32)

	// Look applies a pointer motion delta in pixels. Ignored while unlocked.
	//
	// Parameters:
	//   - dx, dy: pointer motion since the last event
	Look(dx, dy float64)

	// OnLockChange registers a callback for lock and unlock events.
	//
	// Parameters:
	//   - fn: called with the new lock state
	//
	// Returns:
	//   - func(): removes the callback, safe to call more than once
	OnLockChange(fn func(locked bool)) (release func())

	// HandlePointerLockChange reports a pointer lock change made outside the rig,
	// such as the window releasing the cursor on Escape.
	//
	// Parameters:
	//   - locked: the new pointer lock state
	HandlePointerLockChange(locked bool)
}

// OrbitRig rotates and zooms the camera around a target point.
type OrbitRig interface {
	Rig

	// Target returns the orbit point.
	Target() mgl32.Vec3

	// SetTarget moves the orbit point. Call Update to re-aim the camera.
	//
	// Parameters:
	//   - target: the new orbit point
	SetTarget(target mgl32.Vec3)

	// Enabled reports whether user input drives the rig.
	Enabled() bool

	// SetEnabled toggles user input.
	//
	// Parameters:
	//   - enabled: the new state
	SetEnabled(enabled bool)

	// Update re-derives the orbit from the camera position and re-aims the camera at the target.
	Update()

	// Rotate orbits by a pointer drag delta in pixels. Ignored while disabled.
	//
	// Parameters:
	//   - dx, dy: pointer motion since the last event
	Rotate(dx, dy float64)

	// Zoom moves the camera toward (positive) or away from the target. Ignored while disabled.
	//
	// Parameters:
	//   - delta: scroll amount
	Zoom(delta float32)
}

// PointerLock captures and releases the OS cursor.
type PointerLock interface {
	// SetPointerLock captures (true) or releases (false) the cursor.
	SetPointerLock(locked bool)
}

// AsFreeRoam returns the rig as a FreeRoamRig when it is that variant.
//
// Parameters:
//   - r: the active rig, may be nil
//
// Returns:
//   - FreeRoamRig: the rig or nil
//   - bool: true if r is a free-roam rig
func AsFreeRoam(r Rig) (FreeRoamRig, bool) {
	if r == nil || r.Kind() != RigFreeRoam {
		return nil, false
	}
	f, ok := r.(FreeRoamRig)
	return f, ok
}

// AsOrbit returns the rig as an OrbitRig when it is that variant.
//
// Parameters:
//   - r: the active rig, may be nil
//
// Returns:
//   - OrbitRig: the rig or nil
//   - bool: true if r is an orbit rig
func AsOrbit(r Rig) (OrbitRig, bool) {
	if r == nil || r.Kind() != RigOrbit {
		return nil, false
	}
	o, ok := r.(OrbitRig)
	return o, ok
}
