package common

import "github.com/go-gl/mathgl/mgl32"

// Lerp linearly interpolates between a and b.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor, not clamped
//
// Returns:
//   - float32: a + (b - a) * t
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpVec3 linearly interpolates each component between a and b.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor, not clamped
//
// Returns:
//   - mgl32.Vec3: the interpolated vector
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		Lerp(a[0], b[0], t),
		Lerp(a[1], b[1], t),
		Lerp(a[2], b[2], t),
	}
}

// SmoothStep returns the Hermite smooth-step of x between min and max.
// Values at or below min map to 0, at or above max map to 1.
//
// Parameters:
//   - x: input value
//   - min: lower edge
//   - max: upper edge
//
// Returns:
//   - float32: eased value in [0, 1]
func SmoothStep(x, min, max float32) float32 {
	if x <= min {
		return 0
	}
	if x >= max {
		return 1
	}
	t := (x - min) / (max - min)
	return t * t * (3 - 2*t)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return mgl32.Clamp(v, lo, hi)
}
