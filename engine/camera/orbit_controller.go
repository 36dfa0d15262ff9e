package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// orbitControllerImpl is the OrbitRig. The camera position is kept as spherical
// coordinates (radius, azimuth, elevation) relative to the target.
type orbitControllerImpl struct {
	mu *sync.Mutex

	camera Camera
	target mgl32.Vec3

	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	rotateSpeed float32
	zoomSpeed   float32

	enabled bool
}

var _ OrbitRig = &orbitControllerImpl{}

// NewOrbitController creates an orbit rig around the given camera. The rig starts disabled.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitRig: the newly created rig
func NewOrbitController(cam Camera, options ...OrbitControllerOption) OrbitRig {
	oc := &orbitControllerImpl{
		mu:     &sync.Mutex{},
		camera: cam,

		minRadius:    0.5,
		maxRadius:    20.0,
		minElevation: float32(-math.Pi/2 + 0.05),
		maxElevation: float32(math.Pi/2 - 0.05),

		rotateSpeed: 0.005,
		zoomSpeed:   0.5,
	}
	for _, option := range options {
		option(oc)
	}
	return oc
}

func (oc *orbitControllerImpl) Kind() RigKind {
	return RigOrbit
}

func (oc *orbitControllerImpl) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControllerImpl) SetTarget(target mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
}

func (oc *orbitControllerImpl) Enabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enabled
}

func (oc *orbitControllerImpl) SetEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enabled = enabled
}

func (oc *orbitControllerImpl) Update() {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	offset := oc.camera.Position().Sub(oc.target)
	r := offset.Len()
	if r < 1e-6 {
		return
	}
	oc.radius = r
	oc.elevation = float32(math.Asin(float64(mgl32.Clamp(offset.Y()/r, -1, 1))))
	oc.azimuth = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))

	if oc.clamp() {
		oc.camera.SetPosition(oc.target.Add(oc.spherical()))
	}
	oc.camera.LookAt(oc.target)
}

func (oc *orbitControllerImpl) Rotate(dx, dy float64) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	oc.azimuth -= float32(dx) * oc.rotateSpeed
	oc.elevation += float32(dy) * oc.rotateSpeed
	oc.clamp()
	oc.apply()
}

func (oc *orbitControllerImpl) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	oc.radius -= delta * oc.zoomSpeed
	oc.clamp()
	oc.apply()
}

// --- internal helpers ---

// spherical returns the camera offset from the target. Caller must hold the mutex.
func (oc *orbitControllerImpl) spherical() mgl32.Vec3 {
	cosElev := float32(math.Cos(float64(oc.elevation)))
	sinElev := float32(math.Sin(float64(oc.elevation)))
	cosAzim := float32(math.Cos(float64(oc.azimuth)))
	sinAzim := float32(math.Sin(float64(oc.azimuth)))
	return mgl32.Vec3{
		oc.radius * cosElev * sinAzim,
		oc.radius * sinElev,
		oc.radius * cosElev * cosAzim,
	}
}

// clamp enforces the radius and elevation bounds and reports whether anything changed.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) clamp() bool {
	r := mgl32.Clamp(oc.radius, oc.minRadius, oc.maxRadius)
	e := mgl32.Clamp(oc.elevation, oc.minElevation, oc.maxElevation)
	changed := r != oc.radius || e != oc.elevation
	oc.radius, oc.elevation = r, e
	return changed
}

// apply moves the camera to the spherical position and aims it at the target.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) apply() {
	oc.camera.SetPosition(oc.target.Add(oc.spherical()))
	oc.camera.LookAt(oc.target)
}
