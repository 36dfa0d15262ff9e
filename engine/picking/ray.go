package picking

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line from Origin along the normalized Direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay creates a Ray, normalizing direction.
//
// Parameters:
//   - origin: ray start
//   - direction: ray direction, any non-zero length
//
// Returns:
//   - Ray: the ray
func NewRay(origin, direction mgl32.Vec3) Ray {
	if direction.Len() > 0 {
		direction = direction.Normalize()
	}
	return Ray{Origin: origin, Direction: direction}
}

// Hitbox is a sphere volume that targets the POI with id PoiID.
type Hitbox struct {
	PoiID  string
	Center mgl32.Vec3
	Radius float32
}

// Hit is a single ray/hitbox intersection.
type Hit struct {
	PoiID    string
	Distance float32
}

// Intersect returns the distance along the ray to the nearest point of the sphere.
// A ray starting inside the sphere hits at the exit point.
//
// Parameters:
//   - ray: the ray to test
//
// Returns:
//   - float32: hit distance
//   - bool: false if the ray misses or the sphere lies behind it
func (h Hitbox) Intersect(ray Ray) (float32, bool) {
	oc := ray.Origin.Sub(h.Center)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - h.Radius*h.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Cast intersects the ray with every hitbox and returns the hits nearest first.
// Equal distances are ordered by POI id so results are stable.
//
// Parameters:
//   - ray: the ray to cast
//   - hitboxes: candidate volumes
//
// Returns:
//   - []Hit: hits sorted by distance, empty if nothing was struck
func Cast(ray Ray, hitboxes []Hitbox) []Hit {
	var hits []Hit
	for _, h := range hitboxes {
		if d, ok := h.Intersect(ray); ok {
			hits = append(hits, Hit{PoiID: h.PoiID, Distance: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].PoiID < hits[j].PoiID
	})
	return hits
}
