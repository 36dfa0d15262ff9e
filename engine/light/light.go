package light

import "github.com/go-gl/mathgl/mgl32"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment uniformly.
	LightTypeAmbient LightType = iota

	// LightTypeHemisphere blends a sky color and a ground color by the fragment normal's Y.
	LightTypeHemisphere

	// LightTypeDirectional is a distant source with a direction and an orthographic shadow.
	LightTypeDirectional

	// LightTypePoint emits from a position and attenuates to zero at its range.
	LightTypePoint
)

func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeHemisphere:
		return "hemisphere"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType     LightType
	position      mgl32.Vec3
	color         mgl32.Vec3
	groundColor   mgl32.Vec3
	intensity     float32
	lightRange    float32
	castsShadows  bool
	shadowMapSize int
	shadowBias    float32
	enabled       bool
}

// Light is an immutable light descriptor consumed by the renderer.
type Light interface {
	// Type returns the kind of light source.
	Type() LightType

	// Position returns the world-space position. Directional lights shine from
	// this position toward the origin.
	Position() mgl32.Vec3

	// Direction returns the normalized direction light travels, from Position toward the origin.
	//
	// Returns:
	//   - mgl32.Vec3: unit direction, zero for ambient and point lights
	Direction() mgl32.Vec3

	// Color returns the RGB color (the sky color for hemisphere lights).
	Color() mgl32.Vec3

	// GroundColor returns the ground color of a hemisphere light.
	GroundColor() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier.
	Intensity() float32

	// Range returns the distance at which a point light reaches zero. Zero means unbounded.
	Range() float32

	// CastsShadows reports whether the light renders a shadow map.
	CastsShadows() bool

	// ShadowMapSize returns the width and height of the shadow map in texels.
	ShadowMapSize() int

	// ShadowBias returns the depth bias applied to shadow comparisons.
	ShadowBias() float32

	// Enabled reports whether the light contributes to rendering.
	Enabled() bool
}

var _ Light = &lightImpl{}

// NewLight creates a Light configured with the given options.
//
// Parameters:
//   - lightType: the kind of light
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the light descriptor
func NewLight(lightType LightType, options ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:     lightType,
		color:         mgl32.Vec3{1, 1, 1},
		intensity:     1,
		shadowMapSize: ShadowMapResolution,
		enabled:       true,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	if l.lightType != LightTypeDirectional || l.position.Len() == 0 {
		return mgl32.Vec3{}
	}
	return l.position.Mul(-1).Normalize()
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) GroundColor() mgl32.Vec3 {
	return l.groundColor
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) ShadowMapSize() int {
	return l.shadowMapSize
}

func (l *lightImpl) ShadowBias() float32 {
	return l.shadowBias
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

// HexColor converts a 0xRRGGBB value to an RGB vector.
func HexColor(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(hex>>16&0xff) / 255,
		float32(hex>>8&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// RoomLights returns the lighting rig of the room: ambient fill, a hemisphere
// light, a shadow-casting directional key light and a ceiling point light.
// Point lights do not cast shadows.
//
// Parameters:
//   - width: room width (X)
//   - height: room height (Y)
//
// Returns:
//   - []Light: the lights in upload order
func RoomLights(width, height float32) []Light {
	return []Light{
		NewLight(LightTypeAmbient, WithIntensity(0.4)),
		NewLight(LightTypeHemisphere, WithIntensity(0.5), WithGroundColor(HexColor(0x444444))),
		NewLight(LightTypeDirectional,
			WithPosition(mgl32.Vec3{8, 15, 10}),
			WithIntensity(1),
			WithShadows(ShadowMapResolution, DefaultShadowBias),
		),
		NewLight(LightTypePoint,
			WithPosition(mgl32.Vec3{0, height - 0.5, 0}),
			WithIntensity(0.7),
			WithRange(width*1.5),
		),
	}
}
