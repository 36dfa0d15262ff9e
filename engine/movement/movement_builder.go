package movement

// MovementBuilderOption is a functional option for configuring a Movement.
type MovementBuilderOption func(*movementImpl)

// WithSpeed sets the walking acceleration in units per second.
//
// Parameters:
//   - speed: acceleration applied while a key is held
//
// Returns:
//   - MovementBuilderOption: functional option to set speed
func WithSpeed(speed float32) MovementBuilderOption {
	return func(m *movementImpl) {
		m.speed = speed
	}
}

// WithDamping sets the multiplier turning delta into the velocity decay factor.
//
// Parameters:
//   - damping: decay rate per second
//
// Returns:
//   - MovementBuilderOption: functional option to set damping
func WithDamping(damping float32) MovementBuilderOption {
	return func(m *movementImpl) {
		m.damping = damping
	}
}

// WithEyeHeight sets the height the camera is pinned to while walking.
//
// Parameters:
//   - height: eye height in world units
//
// Returns:
//   - MovementBuilderOption: functional option to set eye height
func WithEyeHeight(height float32) MovementBuilderOption {
	return func(m *movementImpl) {
		m.eyeHeight = height
	}
}

// WithRoomBounds enables clamping the horizontal position to the room interior.
//
// Parameters:
//   - width: room extent along X
//   - depth: room extent along Z
//   - margin: distance kept from each wall
//
// Returns:
//   - MovementBuilderOption: functional option to enable bounds clamping
func WithRoomBounds(width, depth, margin float32) MovementBuilderOption {
	return func(m *movementImpl) {
		m.clampBounds = true
		m.boundsX = width/2 - margin
		m.boundsZ = depth/2 - margin
	}
}
