package picking

import (
	"sort"
	"sync"
)

// Registry maps POI ids to their hitboxes. Whatever component creates a hitbox
// registers it here and removes it when the hitbox goes away; targeting reads
// snapshots instead of searching the scene.
type Registry interface {
	// Register adds or replaces the hitbox for h.PoiID.
	Register(h Hitbox)

	// Unregister removes the hitbox for id. Unknown ids are ignored.
	Unregister(id string)

	// Clear removes all hitboxes.
	Clear()

	// Snapshot returns a copy of the registered hitboxes ordered by id.
	Snapshot() []Hitbox

	// Version increments on every change and lets readers skip unchanged snapshots.
	Version() uint64

	// Len returns the number of registered hitboxes.
	Len() int
}

type registryImpl struct {
	mu       *sync.RWMutex
	hitboxes map[string]Hitbox
	version  uint64
}

var _ Registry = &registryImpl{}

// NewRegistry creates an empty Registry.
//
// Returns:
//   - Registry: the registry
func NewRegistry() Registry {
	return &registryImpl{
		mu:       &sync.RWMutex{},
		hitboxes: make(map[string]Hitbox),
	}
}

func (r *registryImpl) Register(h Hitbox) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.hitboxes[h.PoiID]; ok && old == h {
		return
	}
	r.hitboxes[h.PoiID] = h
	r.version++
}

func (r *registryImpl) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hitboxes[id]; !ok {
		return
	}
	delete(r.hitboxes, id)
	r.version++
}

func (r *registryImpl) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.hitboxes) == 0 {
		return
	}
	r.hitboxes = make(map[string]Hitbox)
	r.version++
}

func (r *registryImpl) Snapshot() []Hitbox {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Hitbox, 0, len(r.hitboxes))
	for _, h := range r.hitboxes {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PoiID < out[j].PoiID })
	return out
}

func (r *registryImpl) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

func (r *registryImpl) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hitboxes)
}
