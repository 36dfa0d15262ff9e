package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-room/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	id            string
	enabled       atomic.Bool
	mdl           model.Model
	position      mgl32.Vec3
	scale         mgl32.Vec3
	rotation      mgl32.Vec3
	castShadow    bool
	receiveShadow bool
}

// GameObject is a placed instance of a Model in a scene.
type GameObject interface {
	// ID returns the object's identifier.
	ID() string

	// Enabled returns whether this object is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is drawn.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Model returns the Model drawn by this object, or nil while it is not loaded.
	Model() model.Model

	// SetModel assigns the Model.
	//
	// Parameters:
	//   - m: the Model, nil to clear
	SetModel(m model.Model)

	// Position returns the world-space translation.
	Position() mgl32.Vec3

	// SetPosition sets the world-space translation.
	SetPosition(p mgl32.Vec3)

	// Scale returns the per-axis scale.
	Scale() mgl32.Vec3

	// SetScale sets the per-axis scale.
	SetScale(s mgl32.Vec3)

	// Rotation returns the XYZ Euler rotation in radians.
	Rotation() mgl32.Vec3

	// SetRotation sets the XYZ Euler rotation in radians.
	SetRotation(r mgl32.Vec3)

	// CastShadow reports whether the object renders into shadow maps.
	CastShadow() bool

	// ReceiveShadow reports whether the object samples shadow maps.
	ReceiveShadow() bool

	// ModelMatrix composes translation * rotation(X, Y, Z order) * scale.
	//
	// Returns:
	//   - mgl32.Mat4: the local-to-world transform
	ModelMatrix() mgl32.Mat4

	// WorldBounds returns the model bounds center and radius after the transform.
	//
	// Returns:
	//   - mgl32.Vec3: world-space center
	//   - float32: radius scaled by the largest scale component
	//   - bool: false when no model is set or it has no geometry
	WorldBounds() (mgl32.Vec3, float32, bool)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled with unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale: mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() string {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) SetModel(m model.Model) {
	g.mdl = m
}

func (g *gameObject) Position() mgl32.Vec3 {
	return g.position
}

func (g *gameObject) SetPosition(p mgl32.Vec3) {
	g.position = p
}

func (g *gameObject) Scale() mgl32.Vec3 {
	return g.scale
}

func (g *gameObject) SetScale(s mgl32.Vec3) {
	g.scale = s
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	return g.rotation
}

func (g *gameObject) SetRotation(r mgl32.Vec3) {
	g.rotation = r
}

func (g *gameObject) CastShadow() bool {
	return g.castShadow
}

func (g *gameObject) ReceiveShadow() bool {
	return g.receiveShadow
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(g.position.X(), g.position.Y(), g.position.Z())
	r := mgl32.HomogRotate3DX(g.rotation.X()).
		Mul4(mgl32.HomogRotate3DY(g.rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(g.rotation.Z()))
	s := mgl32.Scale3D(g.scale.X(), g.scale.Y(), g.scale.Z())
	return t.Mul4(r).Mul4(s)
}

func (g *gameObject) WorldBounds() (mgl32.Vec3, float32, bool) {
	if g.mdl == nil {
		return mgl32.Vec3{}, 0, false
	}
	b := g.mdl.Bounds()
	if b.Empty() {
		return mgl32.Vec3{}, 0, false
	}
	center := g.ModelMatrix().Mul4x1(b.Center().Vec4(1)).Vec3()
	s := max(abs32(g.scale.X()), abs32(g.scale.Y()), abs32(g.scale.Z()))
	return center, b.Radius() * s, true
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
