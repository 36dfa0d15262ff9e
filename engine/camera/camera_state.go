package camera

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraState is an immutable snapshot of where a camera is and what it looks at.
// The fields are unexported and held by value so a state can be shared freely.
type CameraState struct {
	position mgl32.Vec3
	target   mgl32.Vec3
}

// NewCameraState creates a CameraState.
//
// Parameters:
//   - position: world-space camera position
//   - target: world-space look-at or orbit point
//
// Returns:
//   - CameraState: the snapshot
func NewCameraState(position, target mgl32.Vec3) CameraState {
	return CameraState{position: position, target: target}
}

// StateOf captures the pose of a camera with an explicit target.
//
// Parameters:
//   - cam: the camera whose position is read
//   - target: the look-at point to record
//
// Returns:
//   - CameraState: the snapshot
func StateOf(cam Camera, target mgl32.Vec3) CameraState {
	return NewCameraState(cam.Position(), target)
}

// Position returns the camera position of the snapshot.
func (s CameraState) Position() mgl32.Vec3 {
	return s.position
}

// Target returns the look-at point of the snapshot.
func (s CameraState) Target() mgl32.Vec3 {
	return s.target
}

// Equal reports exact component-wise equality with another state.
func (s CameraState) Equal(other CameraState) bool {
	return s.position == other.position && s.target == other.target
}

func (s CameraState) String() string {
	return fmt.Sprintf("{position:%v target:%v}", s.position, s.target)
}
