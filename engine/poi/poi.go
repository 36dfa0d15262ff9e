package poi

import (
	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

// Poi describes an inspectable object placed in the room.
type Poi struct {
	ID   string
	Name string

	// Position places the POI label and its hitbox in room space.
	Position mgl32.Vec3

	ObjURL string
	MtlURL string

	// CameraTarget is the point the inspect camera orbits.
	CameraTarget mgl32.Vec3

	// CameraPositionOffset is added to CameraTarget to place the inspect camera.
	CameraPositionOffset mgl32.Vec3

	Scale    mgl32.Vec3
	Rotation mgl32.Vec3
}

// InspectState returns the camera pose that frames the POI.
//
// Returns:
//   - camera.CameraState: position cameraTarget+offset, target cameraTarget
func (p Poi) InspectState() camera.CameraState {
	return camera.NewCameraState(p.CameraTarget.Add(p.CameraPositionOffset), p.CameraTarget)
}
