package targeting

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-room/engine/picking"
	"github.com/Carmen-Shannon/oxy-room/engine/poi"
)

// Flags are the mode flags targeting depends on.
type Flags struct {
	Exploring     bool
	Locked        bool
	Transitioning bool
}

// Active reports whether targeting runs for these flags.
func (f Flags) Active() bool {
	return f.Exploring && f.Locked && !f.Transitioning
}

// Targeter resolves which POI the viewport center is aimed at.
type Targeter interface {
	// Update casts the ray against the registered hitboxes and returns the targeted POI id,
	// or "" when nothing is targeted. Inactive flags clear the target immediately.
	//
	// Parameters:
	//   - ray: ray through the viewport center
	//   - flags: the current mode flags
	//
	// Returns:
	//   - string: the targeted POI id or ""
	Update(ray picking.Ray, flags Flags) string

	// Current returns the last resolved id.
	Current() string

	// OnChange registers a callback fired only when the resolved id changes.
	//
	// Parameters:
	//   - fn: called with the new id ("" when cleared)
	//
	// Returns:
	//   - func(): removes the callback
	OnChange(fn func(id string)) (release func())
}

type targeterImpl struct {
	registry picking.Registry
	catalog  *poi.Catalog
	logger   *slog.Logger

	primed      bool
	lastFlags   Flags
	lastVersion uint64
	hitboxes    []picking.Hitbox

	current   string
	listeners map[int]func(string)
	nextID    int
}

var _ Targeter = &targeterImpl{}

// NewTargeter creates a Targeter reading hitboxes from registry and resolving ids against catalog.
//
// Parameters:
//   - registry: source of hitboxes
//   - catalog: ids that may be targeted
//   - options: functional options
//
// Returns:
//   - Targeter: the targeter
func NewTargeter(registry picking.Registry, catalog *poi.Catalog, options ...TargeterBuilderOption) Targeter {
	t := &targeterImpl{
		registry:  registry,
		catalog:   catalog,
		logger:    slog.Default(),
		listeners: make(map[int]func(string)),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *targeterImpl) Update(ray picking.Ray, flags Flags) string {
	t.refresh(flags)

	if !flags.Active() || len(t.hitboxes) == 0 {
		t.set("")
		return t.current
	}

	id := ""
	if hits := picking.Cast(ray, t.hitboxes); len(hits) > 0 {
		if t.catalog.Contains(hits[0].PoiID) {
			id = hits[0].PoiID
		} else {
			t.logger.Debug("hitbox without catalog entry", "poi", hits[0].PoiID)
		}
	}
	t.set(id)
	return t.current
}

func (t *targeterImpl) Current() string {
	return t.current
}

func (t *targeterImpl) OnChange(fn func(id string)) (release func()) {
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	return func() { delete(t.listeners, id) }
}

// refresh re-reads the hitbox set when the mode flags or the registry changed.
func (t *targeterImpl) refresh(flags Flags) {
	version := t.registry.Version()
	if t.primed && flags == t.lastFlags && version == t.lastVersion {
		return
	}
	t.primed = true
	t.lastFlags = flags
	t.lastVersion = version
	if flags.Exploring && !flags.Transitioning {
		t.hitboxes = t.registry.Snapshot()
	} else {
		t.hitboxes = nil
	}
}

func (t *targeterImpl) set(id string) {
	if id == t.current {
		return
	}
	t.current = id
	for i := 0; i < t.nextID; i++ {
		if fn, ok := t.listeners[i]; ok {
			fn(id)
		}
	}
}
