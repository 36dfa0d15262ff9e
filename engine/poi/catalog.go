package poi

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-room/common"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrEmptyID is returned when a POI has no id.
	ErrEmptyID = errors.New("poi: empty id")

	// ErrDuplicateID is returned when two POIs share an id.
	ErrDuplicateID = errors.New("poi: duplicate id")
)

// Catalog is the immutable set of POIs fixed at startup.
type Catalog struct {
	order []string
	byID  map[string]Poi
}

// NewCatalog validates and indexes the given POIs. Order is preserved for All.
//
// Parameters:
//   - pois: the POIs, ids must be non-empty and unique
//
// Returns:
//   - *Catalog: the catalog
//   - error: ErrEmptyID or ErrDuplicateID wrapped with the offending entry
func NewCatalog(pois ...Poi) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(pois)),
		byID:  make(map[string]Poi, len(pois)),
	}
	for i, p := range pois {
		if p.ID == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyID)
		}
		if _, ok := c.byID[p.ID]; ok {
			return nil, fmt.Errorf("entry %d %q: %w", i, p.ID, ErrDuplicateID)
		}
		c.byID[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// Get looks up a POI by id.
//
// Parameters:
//   - id: the POI id
//
// Returns:
//   - Poi: the POI, zero value if missing
//   - bool: true if the id is in the catalog
func (c *Catalog) Get(id string) (Poi, bool) {
	if c == nil {
		return Poi{}, false
	}
	p, ok := c.byID[id]
	return p, ok
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// All returns a copy of the POIs in declaration order.
func (c *Catalog) All() []Poi {
	if c == nil {
		return nil
	}
	out := make([]Poi, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of POIs.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// DefaultPois returns the built-in room POIs.
func DefaultPois() []Poi {
	return []Poi{
		{
			ID:                   "detail_2",
			Name:                 "Shield",
			Position:             mgl32.Vec3{0, 0, 0},
			ObjURL:               "/details/Shield/shield3.obj",
			MtlURL:               "/details/Shield/shield3.mtl",
			CameraTarget:         mgl32.Vec3{-0.1, common.RoomHeight * 1.22, 1.69},
			CameraPositionOffset: mgl32.Vec3{0, -3, 5},
			Scale:                mgl32.Vec3{1, 1, 1},
			Rotation:             mgl32.Vec3{0, 0, 0},
		},
	}
}

// DefaultCatalog returns the catalog built from DefaultPois.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultPois()...)
	if err != nil {
		panic(err)
	}
	return c
}
