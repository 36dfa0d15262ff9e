package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-room/common"
	"github.com/Carmen-Shannon/oxy-room/engine/movement"
)

// Origin identifies the element a click landed on.
type Origin int

const (
	// OriginCanvas is the 3D viewport itself.
	OriginCanvas Origin = iota
	// OriginLockOverlay is the "click to look around" prompt drawn over the viewport.
	OriginLockOverlay
	// OriginControl is any other UI control, such as the back button or a POI label.
	OriginControl
)

func (o Origin) String() string {
	switch o {
	case OriginCanvas:
		return "canvas"
	case OriginLockOverlay:
		return "lock_overlay"
	case OriginControl:
		return "control"
	default:
		return "unknown"
	}
}

// Click is a mouse button press.
type Click struct {
	Button int
	X, Y   float64
	Origin Origin
}

// Primary reports whether the click used the primary (left) button.
func (c Click) Primary() bool {
	return c.Button == common.MouseButtonLeft
}

// ReachesViewport reports whether the click landed on the viewport or its lock overlay,
// as opposed to a UI control drawn on top of it.
func (c Click) ReachesViewport() bool {
	return c.Origin == OriginCanvas || c.Origin == OriginLockOverlay
}

// KeyState tracks which keys are held.
type KeyState interface {
	// Press marks a key as held.
	Press(key int)

	// Release marks a key as released.
	Release(key int)

	// Held reports whether a key is held.
	Held(key int) bool

	// Clear releases every key, used when focus or pointer lock is lost.
	Clear()

	// MovementKeys maps WASD and the arrow keys to movement directions.
	MovementKeys() movement.Keys
}

type keyStateImpl struct {
	mu   *sync.Mutex
	held map[int]bool
}

var _ KeyState = &keyStateImpl{}

// NewKeyState creates an empty KeyState.
//
// Returns:
//   - KeyState: the key state
func NewKeyState() KeyState {
	return &keyStateImpl{
		mu:   &sync.Mutex{},
		held: make(map[int]bool),
	}
}

func (k *keyStateImpl) Press(key int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held[key] = true
}

func (k *keyStateImpl) Release(key int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.held, key)
}

func (k *keyStateImpl) Held(key int) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held[key]
}

func (k *keyStateImpl) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.held = make(map[int]bool)
}

func (k *keyStateImpl) MovementKeys() movement.Keys {
	k.mu.Lock()
	defer k.mu.Unlock()
	return movement.Keys{
		Forward: k.held[common.KeyW] || k.held[common.KeyUp],
		Back:    k.held[common.KeyS] || k.held[common.KeyDown],
		Left:    k.held[common.KeyA] || k.held[common.KeyLeft],
		Right:   k.held[common.KeyD] || k.held[common.KeyRight],
	}
}
