package renderer

import (
	"math"

	"github.com/Carmen-Shannon/oxy-room/engine/model"
	"github.com/Carmen-Shannon/oxy-room/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Marker spheres and the loading placeholder are tessellated at these resolutions.
const (
	sphereSegments = 16
	sphereRings    = 8

	placeholderSize = 0.5
)

// batch is the baked, world-space geometry of one scene node.
type batch struct {
	key         string
	version     uint64
	fingerprint fingerprint
	vertices    []byte
	indices     []byte
	indexCount  int
	translucent bool

	castShadow    bool
	receiveShadow bool
}

// fingerprint holds every node field that affects baked geometry.
type fingerprint struct {
	kind      scene.NodeKind
	transform mgl32.Mat4
	color     mgl32.Vec4
	size      mgl32.Vec2
	radius    float32
	mdl       model.Model
}

func fingerprintOf(n scene.Node) fingerprint {
	return fingerprint{
		kind:      n.Kind,
		transform: n.Transform,
		color:     n.Color,
		size:      n.Size,
		radius:    n.Radius,
		mdl:       n.Model,
	}
}

func nodeKey(n scene.Node) string {
	return n.Kind.String() + ":" + n.Name
}

// bakeNode converts a node into world-space vertices and triangle indices.
//
// Parameters:
//   - n: the node to bake
//
// Returns:
//   - []model.GPUVertex: vertices with world positions, normals and colors
//   - []uint32: triangle list indices
func bakeNode(n scene.Node) ([]model.GPUVertex, []uint32) {
	switch n.Kind {
	case scene.NodePlane:
		return transformed(quad(), n.Transform, n.Color)
	case scene.NodeMarker:
		return transformed(sphere(n.Radius), n.Transform, n.Color)
	case scene.NodePlaceholder:
		return transformed(cube(placeholderSize), n.Transform, n.Color)
	case scene.NodeModel:
		return bakeModel(n)
	default:
		return nil, nil
	}
}

func bakeModel(n scene.Node) ([]model.GPUVertex, []uint32) {
	if n.Model == nil {
		return nil, nil
	}
	var verts []model.GPUVertex
	var indices []uint32
	normalMat := normalMatrix(n.Transform)
	for _, mesh := range n.Model.Meshes() {
		mat := n.Model.Material(mesh.Material)
		color := mgl32.Vec4{mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2], mat.Opacity}
		color = mgl32.Vec4{color[0] * n.Color[0], color[1] * n.Color[1], color[2] * n.Color[2], color[3] * n.Color[3]}
		base := uint32(len(verts))
		for i, p := range mesh.Positions {
			v := model.GPUVertex{
				Position: [3]float32(n.Transform.Mul4x1(p.Vec4(1)).Vec3()),
				Color:    [4]float32(color),
			}
			if i < len(mesh.Normals) {
				v.Normal = [3]float32(unit(normalMat.Mul3x1(mesh.Normals[i])))
			}
			if i < len(mesh.UVs) {
				v.TexCoord = [2]float32(mesh.UVs[i])
			}
			verts = append(verts, v)
		}
		for _, idx := range mesh.Indices {
			indices = append(indices, base+idx)
		}
	}
	return verts, indices
}

// localMesh is unit geometry before the node transform.
type localMesh struct {
	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	uvs       []mgl32.Vec2
	indices   []uint32
}

func transformed(m localMesh, transform mgl32.Mat4, color mgl32.Vec4) ([]model.GPUVertex, []uint32) {
	normalMat := normalMatrix(transform)
	verts := make([]model.GPUVertex, len(m.positions))
	for i, p := range m.positions {
		verts[i] = model.GPUVertex{
			Position: [3]float32(transform.Mul4x1(p.Vec4(1)).Vec3()),
			Normal:   [3]float32(unit(normalMat.Mul3x1(m.normals[i]))),
			TexCoord: [2]float32(m.uvs[i]),
			Color:    [4]float32(color),
		}
	}
	return verts, append([]uint32(nil), m.indices...)
}

// quad is a unit square in XY facing +Z.
func quad() localMesh {
	n := mgl32.Vec3{0, 0, 1}
	return localMesh{
		positions: []mgl32.Vec3{{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0.5, 0.5, 0}, {-0.5, 0.5, 0}},
		normals:   []mgl32.Vec3{n, n, n, n},
		uvs:       []mgl32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}},
		indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

// sphere is a UV sphere centered on the origin.
func sphere(radius float32) localMesh {
	var m localMesh
	for ring := 0; ring <= sphereRings; ring++ {
		v := float32(ring) / sphereRings
		theta := float64(v) * math.Pi
		for seg := 0; seg <= sphereSegments; seg++ {
			u := float32(seg) / sphereSegments
			phi := float64(u) * 2 * math.Pi
			n := mgl32.Vec3{
				float32(math.Sin(theta) * math.Cos(phi)),
				float32(math.Cos(theta)),
				float32(math.Sin(theta) * math.Sin(phi)),
			}
			m.positions = append(m.positions, n.Mul(radius))
			m.normals = append(m.normals, n)
			m.uvs = append(m.uvs, mgl32.Vec2{u, v})
		}
	}
	stride := uint32(sphereSegments + 1)
	for ring := uint32(0); ring < sphereRings; ring++ {
		for seg := uint32(0); seg < sphereSegments; seg++ {
			a := ring*stride + seg
			b := a + stride
			m.indices = append(m.indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return m
}

// cube is an axis-aligned box of the given edge length with per-face normals.
func cube(size float32) localMesh {
	h := size / 2
	faces := []struct {
		n, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	var m localMesh
	for _, f := range faces {
		base := uint32(len(m.positions))
		c := f.n.Mul(h)
		for _, corner := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := c.Add(f.u.Mul(corner[0] * h)).Add(f.v.Mul(corner[1] * h))
			m.positions = append(m.positions, p)
			m.normals = append(m.normals, f.n)
			m.uvs = append(m.uvs, mgl32.Vec2{(corner[0] + 1) / 2, (1 - corner[1]) / 2})
		}
		m.indices = append(m.indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// normalMatrix is the inverse transpose of the upper 3x3.
func normalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	m3 := m.Mat3()
	if m3.Det() == 0 {
		return mgl32.Ident3()
	}
	return m3.Inv().Transpose()
}

func unit(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

// marshalBatch packs baked geometry into GPU byte buffers.
func marshalBatch(b *batch, verts []model.GPUVertex, indices []uint32) {
	var v model.GPUVertex
	stride := v.Size()
	b.vertices = make([]byte, len(verts)*stride)
	for i := range verts {
		verts[i].MarshalTo(b.vertices[i*stride:])
	}
	b.indices = make([]byte, len(indices)*4)
	for i, idx := range indices {
		putUint32(b.indices[i*4:], idx)
	}
	b.indexCount = len(indices)
}
