package light

import "github.com/go-gl/mathgl/mgl32"

// ShadowMapResolution is the shadow map size of the directional light.
const ShadowMapResolution = 2048

// DefaultShadowBias is the depth bias of the directional light.
const DefaultShadowBias float32 = -0.0001

// DefaultShadowFar is the far plane of the directional light's orthographic shadow projection.
const DefaultShadowFar float32 = 50

// shadowClipCorrection remaps OpenGL clip-space depth [-1, 1] to the WebGPU range [0, 1].
var shadowClipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// ShadowProjection returns the light-space view-projection of a directional light
// whose orthographic box covers one and a half times the room footprint.
//
// Parameters:
//   - l: a directional light
//   - width: room width (X)
//   - depth: room depth (Z)
//
// Returns:
//   - mgl32.Mat4: the light view-projection in WebGPU clip space, identity for other light types
func ShadowProjection(l Light, width, depth float32) mgl32.Mat4 {
	if l == nil || l.Type() != LightTypeDirectional {
		return mgl32.Ident4()
	}
	halfX, halfY := width*1.5, depth*1.5
	proj := mgl32.Ortho(-halfX, halfX, -halfY, halfY, 0.5, DefaultShadowFar)
	view := mgl32.LookAtV(l.Position(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return shadowClipCorrection.Mul4(proj).Mul4(view)
}

// ShadowCaster returns the first enabled directional light that casts shadows.
// Only directional shadows are rendered.
//
// Parameters:
//   - lights: the scene lights
//
// Returns:
//   - Light: the caster, nil when none qualifies
func ShadowCaster(lights []Light) Light {
	for _, l := range lights {
		if l != nil && l.Enabled() && l.CastsShadows() && l.Type() == LightTypeDirectional {
			return l
		}
	}
	return nil
}

// NewShadowUniform builds the shadow pass uniform for a caster over the room footprint.
//
// Parameters:
//   - caster: the shadow-casting light, may be nil
//   - width: room width (X)
//   - depth: room depth (Z)
//
// Returns:
//   - GPUShadowUniform: the uniform; Enabled is zero when caster is nil
func NewShadowUniform(caster Light, width, depth float32) GPUShadowUniform {
	if caster == nil {
		return GPUShadowUniform{ViewProj: [16]float32(mgl32.Ident4())}
	}
	return GPUShadowUniform{
		ViewProj: [16]float32(ShadowProjection(caster, width, depth)),
		Bias:     caster.ShadowBias(),
		Enabled:  1,
	}
}
