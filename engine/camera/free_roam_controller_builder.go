package camera

// FreeRoamControllerOption is a functional option for configuring a FreeRoamRig.
type FreeRoamControllerOption func(*freeRoamControllerImpl)

// WithPointerLock sets the collaborator that captures the OS cursor on Lock.
//
// Parameters:
//   - pl: the pointer lock implementation, usually the window
//
// Returns:
//   - FreeRoamControllerOption: functional option to set the pointer lock
func WithPointerLock(pl PointerLock) FreeRoamControllerOption {
	return func(fr *freeRoamControllerImpl) {
		fr.pointerLock = pl
	}
}

// WithLookSensitivity sets the radians of rotation per pixel of pointer motion.
//
// Parameters:
//   - sensitivity: radians per pixel
//
// Returns:
//   - FreeRoamControllerOption: functional option to set look sensitivity
func WithLookSensitivity(sensitivity float32) FreeRoamControllerOption {
	return func(fr *freeRoamControllerImpl) {
		fr.lookSensitivity = sensitivity
	}
}
