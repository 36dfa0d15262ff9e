package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	floorColor = mgl32.Vec4{0xaa / 255.0, 0xaa / 255.0, 0xaa / 255.0, 1}
	wallColor  = mgl32.Vec4{0xcc / 255.0, 0xcc / 255.0, 0xcc / 255.0, 1}
)

// RoomPlanes builds the floor and four walls of a room centered on the origin.
//
// Parameters:
//   - width: extent along X
//   - depth: extent along Z
//   - height: wall height
//
// Returns:
//   - []Plane: floor, left, right, back and front walls
func RoomPlanes(width, depth, height float32) []Plane {
	const half = float32(math.Pi / 2)
	return []Plane{
		{Name: "floor", Rotation: mgl32.Vec3{-half, 0, 0}, Size: mgl32.Vec2{width, depth}, Color: floorColor},
		{Name: "wall_left", Position: mgl32.Vec3{-width / 2, height / 2, 0}, Rotation: mgl32.Vec3{0, half, 0}, Size: mgl32.Vec2{depth, height}, Color: wallColor},
		{Name: "wall_right", Position: mgl32.Vec3{width / 2, height / 2, 0}, Rotation: mgl32.Vec3{0, -half, 0}, Size: mgl32.Vec2{depth, height}, Color: wallColor},
		{Name: "wall_back", Position: mgl32.Vec3{0, height / 2, -depth / 2}, Size: mgl32.Vec2{width, height}, Color: wallColor},
		{Name: "wall_front", Position: mgl32.Vec3{0, height / 2, depth / 2}, Rotation: mgl32.Vec3{0, math.Pi, 0}, Size: mgl32.Vec2{width, height}, Color: wallColor},
	}
}
