package model

import (
	"encoding/binary"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

type model struct {
	name      string
	source    string
	meshes    []Mesh
	materials map[string]Material
	bounds    Bounds
}

// Model is a loaded, immutable 3D asset: meshes plus the materials they reference.
type Model interface {
	// Name returns the model identifier.
	Name() string

	// Source returns the URL the model was loaded from.
	Source() string

	// Meshes returns the meshes in file order.
	Meshes() []Mesh

	// Material looks up a material by name, falling back to DefaultMaterial.
	//
	// Parameters:
	//   - name: the material name from usemtl
	//
	// Returns:
	//   - Material: the material
	Material(name string) Material

	// MaterialNames returns the sorted material names.
	MaterialNames() []string

	// Bounds returns the bounding box of all positions.
	Bounds() Bounds

	// VertexCount returns the total vertex count across meshes.
	VertexCount() int

	// IndexCount returns the total index count across meshes.
	IndexCount() int

	// VertexData interleaves every mesh into GPUVertex records.
	VertexData() []byte

	// IndexData concatenates the mesh indices, offset so they address VertexData.
	IndexData() []byte
}

var _ Model = &model{}

// NewModel creates a Model.
//
// Parameters:
//   - options: functional options to set name, meshes and materials
//
// Returns:
//   - Model: the model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		materials: make(map[string]Material),
	}
	for _, option := range options {
		option(m)
	}
	for _, mesh := range m.meshes {
		for _, p := range mesh.Positions {
			m.bounds.Extend(p)
		}
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Source() string {
	return m.source
}

func (m *model) Meshes() []Mesh {
	return m.meshes
}

func (m *model) Material(name string) Material {
	if mat, ok := m.materials[name]; ok {
		return mat
	}
	return DefaultMaterial()
}

func (m *model) MaterialNames() []string {
	names := make([]string, 0, len(m.materials))
	for name := range m.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *model) Bounds() Bounds {
	return m.bounds
}

func (m *model) VertexCount() int {
	n := 0
	for i := range m.meshes {
		n += m.meshes[i].VertexCount()
	}
	return n
}

func (m *model) IndexCount() int {
	n := 0
	for i := range m.meshes {
		n += len(m.meshes[i].Indices)
	}
	return n
}

func (m *model) VertexData() []byte {
	var v GPUVertex
	stride := v.Size()
	buf := make([]byte, m.VertexCount()*stride)
	off := 0
	for i := range m.meshes {
		mesh := &m.meshes[i]
		mat := m.Material(mesh.Material)
		for j, p := range mesh.Positions {
			v = GPUVertex{
				Position: [3]float32(p),
				Color:    [4]float32{mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2], mat.Opacity},
			}
			if j < len(mesh.Normals) {
				v.Normal = [3]float32(mesh.Normals[j])
			}
			if j < len(mesh.UVs) {
				v.TexCoord = [2]float32(mesh.UVs[j])
			}
			v.MarshalTo(buf[off:])
			off += stride
		}
	}
	return buf
}

func (m *model) IndexData() []byte {
	buf := make([]byte, m.IndexCount()*4)
	off := 0
	base := uint32(0)
	for i := range m.meshes {
		for _, idx := range m.meshes[i].Indices {
			binary.LittleEndian.PutUint32(buf[off:], idx+base)
			off += 4
		}
		base += uint32(m.meshes[i].VertexCount())
	}
	return buf
}

// unitNormal normalizes n, returning +Y for degenerate input.
func unitNormal(n mgl32.Vec3) mgl32.Vec3 {
	if n.Len() < 1e-12 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

// FlatNormals fills missing normals with per-face normals.
//
// Parameters:
//   - mesh: the mesh to update in place
func FlatNormals(mesh *Mesh) {
	if len(mesh.Normals) == len(mesh.Positions) {
		return
	}
	normals := make([]mgl32.Vec3, len(mesh.Positions))
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		n := mesh.Positions[b].Sub(mesh.Positions[a]).Cross(mesh.Positions[c].Sub(mesh.Positions[a]))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i := range normals {
		normals[i] = unitNormal(normals[i])
	}
	mesh.Normals = normals
}
