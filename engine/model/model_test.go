package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle(name, material string) Mesh {
	return Mesh{
		Name:      name,
		Material:  material,
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
}

func TestModelCountsAndBounds(t *testing.T) {
	m := NewModel(WithName("tri"), WithMeshes([]Mesh{triangle("a", ""), triangle("b", "red")}))
	assert.Equal(t, 6, m.VertexCount())
	assert.Equal(t, 6, m.IndexCount())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, m.Bounds().Min)
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, m.Bounds().Max)
	assert.False(t, m.Bounds().Empty())
}

func TestIndexDataOffsetsPerMesh(t *testing.T) {
	m := NewModel(WithMeshes([]Mesh{triangle("a", ""), triangle("b", "")}))
	data := m.IndexData()
	require.Len(t, data, 24)
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(data[12:]))
	assert.Equal(t, uint32(5), binary.LittleEndian.Uint32(data[20:]))
}

func TestVertexDataUsesMaterialColor(t *testing.T) {
	red := Material{Name: "red", Diffuse: mgl32.Vec3{1, 0, 0}, Opacity: 0.5}
	m := NewModel(WithMeshes([]Mesh{triangle("a", "red")}), WithMaterials([]Material{red}))
	data := m.VertexData()
	require.Len(t, data, 3*48)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(data[32:])))
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(data[44:])))
	assert.Equal(t, []string{"red"}, m.MaterialNames())
}

func TestMissingMaterialFallsBack(t *testing.T) {
	m := NewModel()
	assert.Equal(t, "default", m.Material("nope").Name)
	assert.True(t, m.Bounds().Empty())
}

func TestFlatNormals(t *testing.T) {
	mesh := triangle("a", "")
	FlatNormals(&mesh)
	require.Len(t, mesh.Normals, 3)
	for _, n := range mesh.Normals {
		assert.InDelta(t, 1, n.Z(), 1e-6)
	}
}
