package scene

import (
	"github.com/Carmen-Shannon/oxy-room/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeKind identifies what a Node draws.
type NodeKind int

const (
	// NodePlane is a flat rectangle of the room shell.
	NodePlane NodeKind = iota
	// NodeMarker is a POI label with its hitbox sphere.
	NodeMarker
	// NodeModel is a loaded model instance.
	NodeModel
	// NodePlaceholder stands in for a model that is still loading.
	NodePlaceholder
)

func (k NodeKind) String() string {
	switch k {
	case NodePlane:
		return "plane"
	case NodeMarker:
		return "marker"
	case NodeModel:
		return "model"
	case NodePlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Node is one visible item handed to the renderer for a frame.
type Node struct {
	Kind NodeKind
	Name string

	// Transform is local-to-world. Planes are unit quads in XY facing +Z,
	// scaled by Size.
	Transform mgl32.Mat4
	Color     mgl32.Vec4

	// Size is the plane width and height.
	Size mgl32.Vec2

	// Radius is the marker hitbox radius.
	Radius float32

	// Model is set for NodeModel.
	Model model.Model

	// Highlighted marks the targeted marker.
	Highlighted bool

	// CastShadow draws the node into the directional shadow map; ReceiveShadow samples it.
	CastShadow    bool
	ReceiveShadow bool
}

// Plane is one rectangle of the room shell.
type Plane struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Size     mgl32.Vec2
	Color    mgl32.Vec4
}

// Transform returns translation * rotation * size scale.
func (p Plane) Transform() mgl32.Mat4 {
	t := mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z())
	r := mgl32.HomogRotate3DX(p.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(p.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(p.Rotation.Z()))
	return t.Mul4(r).Mul4(mgl32.Scale3D(p.Size.X(), p.Size.Y(), 1))
}
