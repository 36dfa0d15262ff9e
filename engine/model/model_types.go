package model

import "github.com/go-gl/mathgl/mgl32"

// Material is a surface description parsed from an MTL library.
type Material struct {
	Name string

	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3

	// Shininess is the specular exponent (Ns).
	Shininess float32

	// Opacity is 1 for fully opaque (d, or 1 - Tr).
	Opacity float32

	// DiffuseMap is the texture path from map_Kd, relative to the MTL file.
	DiffuseMap string
}

// DefaultMaterial is used by meshes without a usemtl statement.
func DefaultMaterial() Material {
	return Material{
		Name:     "default",
		Ambient:  mgl32.Vec3{0.2, 0.2, 0.2},
		Diffuse:  mgl32.Vec3{0.8, 0.8, 0.8},
		Specular: mgl32.Vec3{0, 0, 0},
		Opacity:  1,
	}
}

// Mesh is an indexed triangle list sharing one material.
type Mesh struct {
	Name     string
	Material string

	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3

	valid bool
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p mgl32.Vec3) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	for i := range 3 {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return !b.valid
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns half the diagonal length.
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Len() * 0.5
}
