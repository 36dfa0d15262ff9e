package common

import "github.com/go-gl/mathgl/mgl32"

// Room dimensions in world units. The room is centered on the origin with the floor at y = 0.
const (
	RoomWidth  float32 = 5
	RoomDepth  float32 = 20
	RoomHeight float32 = 3
)

const (
	// PlayerHeight is the fixed eye height of the free-roam camera.
	PlayerHeight float32 = 1.6

	// CameraAnimationSpeed is the transition progress gained per second.
	CameraAnimationSpeed float32 = 2.5

	// PoiHitboxRadius is the radius of the sphere used to target a POI.
	PoiHitboxRadius float32 = 0.3

	// WalkSpeed is the walking acceleration in units per second.
	WalkSpeed float32 = 40

	// WalkDamping scales delta into the per-frame velocity decay factor.
	WalkDamping float32 = 10

	// RoomBoundsMargin keeps the player this far from the walls when bounds clamping is on.
	RoomBoundsMargin float32 = 0.5
)

// Initial free-roam pose, also the first return target before any POI is visited.
var (
	InitialRoomPosition = mgl32.Vec3{0, PlayerHeight, 9}
	InitialRoomTarget   = mgl32.Vec3{0, PlayerHeight, 0}
)
