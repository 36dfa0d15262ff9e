package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitControllerOption is a functional option for configuring an OrbitRig.
type OrbitControllerOption func(*orbitControllerImpl)

// WithOrbitTarget sets the initial orbit point.
//
// Parameters:
//   - target: world-space orbit point
//
// Returns:
//   - OrbitControllerOption: functional option to set the target
func WithOrbitTarget(target mgl32.Vec3) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.target = target
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum distance from target
//   - max: maximum distance from target
//
// Returns:
//   - OrbitControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minRadius = min
		oc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles in radians.
//
// Parameters:
//   - min: minimum elevation
//   - max: maximum elevation
//
// Returns:
//   - OrbitControllerOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minElevation = min
		oc.maxElevation = max
	}
}

// WithRotateSpeed sets the radians of orbit per pixel of drag.
//
// Parameters:
//   - speed: radians per pixel
//
// Returns:
//   - OrbitControllerOption: functional option to set rotate speed
func WithRotateSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the distance moved per unit of scroll.
//
// Parameters:
//   - speed: world units per scroll unit
//
// Returns:
//   - OrbitControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomSpeed = speed
	}
}
