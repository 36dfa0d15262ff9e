package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// maxPitch keeps the view direction away from the poles so the view matrix stays well defined.
const maxPitch = float32(math.Pi/2 - 0.01)

// clipCorrection remaps OpenGL clip-space depth [-1, 1] to the WebGPU range [0, 1].
var clipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	yaw      float32
	pitch    float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera defines the interface for the scene's perspective camera.
// The camera owns its position and a yaw/pitch orientation. Control rigs and the
// transition animator mutate it; the renderer reads its matrices every frame.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// SetPosition moves the camera without changing its orientation.
	//
	// Parameters:
	//   - position: new world-space position
	SetPosition(position mgl32.Vec3)

	// Orientation returns the camera rotation as a quaternion (yaw about Y, then pitch about X).
	//
	// Returns:
	//   - mgl32.Quat: the camera orientation
	Orientation() mgl32.Quat

	// Yaw returns the rotation about the world Y axis in radians.
	Yaw() float32

	// Pitch returns the rotation about the camera X axis in radians.
	Pitch() float32

	// Forward returns the unit facing direction. A camera with zero yaw and pitch faces -Z.
	//
	// Returns:
	//   - mgl32.Vec3: normalized view direction
	Forward() mgl32.Vec3

	// LookAt orients the camera toward a world-space point.
	// A point coincident with the camera position leaves the orientation unchanged.
	//
	// Parameters:
	//   - point: world-space point to face
	LookAt(point mgl32.Vec3)

	// Rotate adds yaw and pitch deltas in radians. Pitch is clamped short of straight up/down.
	//
	// Parameters:
	//   - dYaw: yaw delta
	//   - dPitch: pitch delta
	Rotate(dYaw, dPitch float32)

	// CenterRay returns the ray through the center of the viewport.
	//
	// Returns:
	//   - origin: the camera position
	//   - direction: normalized forward direction
	CenterRay() (origin, direction mgl32.Vec3)

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// ViewMatrix returns the current view matrix.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix in WebGPU clip space.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	ViewProjectionMatrix() mgl32.Mat4

	// GPUUniform packs the view-projection matrix and position for upload.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform block
	GPUUniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the origin facing -Z.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		fov:    mgl32.DegToRad(75),
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.updateMatrices()
}

func (c *cameraImpl) Orientation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation()
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forward()
}

func (c *cameraImpl) LookAt(point mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookAt(point)
	c.updateMatrices()
}

func (c *cameraImpl) Rotate(dYaw, dPitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw += dYaw
	c.pitch = mgl32.Clamp(c.pitch+dPitch, -maxPitch, maxPitch)
	c.updateMatrices()
}

func (c *cameraImpl) CenterRay() (origin, direction mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position, c.forward()
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) GPUUniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		ViewProj:       [16]float32(c.viewProjectionMatrix),
		CameraPosition: [3]float32(c.position),
	}
}

// orientation builds the yaw-then-pitch quaternion. Caller must hold the mutex.
func (c *cameraImpl) orientation() mgl32.Quat {
	return mgl32.QuatRotate(c.yaw, mgl32.Vec3{0, 1, 0}).Mul(mgl32.QuatRotate(c.pitch, mgl32.Vec3{1, 0, 0}))
}

// forward rotates -Z by the current orientation. Caller must hold the mutex.
func (c *cameraImpl) forward() mgl32.Vec3 {
	return c.orientation().Rotate(mgl32.Vec3{0, 0, -1}).Normalize()
}

// lookAt derives yaw and pitch from the direction to point. Caller must hold the mutex.
func (c *cameraImpl) lookAt(point mgl32.Vec3) {
	d := point.Sub(c.position)
	if d.Len() < 1e-6 {
		return
	}
	horizontal := float32(math.Hypot(float64(d.X()), float64(d.Z())))
	c.yaw = float32(math.Atan2(float64(-d.X()), float64(-d.Z())))
	c.pitch = float32(math.Atan2(float64(d.Y()), float64(horizontal)))
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	q := c.orientation()
	forward := q.Rotate(mgl32.Vec3{0, 0, -1})
	up := q.Rotate(mgl32.Vec3{0, 1, 0})

	c.viewMatrix = mgl32.LookAtV(c.position, c.position.Add(forward), up)
	c.projectionMatrix = clipCorrection.Mul4(mgl32.Perspective(c.fov, c.aspect, c.near, c.far))
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
