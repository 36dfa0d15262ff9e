package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type lockListener struct {
	id int
	fn func(locked bool)
}

// freeRoamControllerImpl is the pointer-lock style FreeRoamRig.
// Walking moves along the camera's yaw projected onto the XZ plane, so looking
// up or down never changes the walking height.
type freeRoamControllerImpl struct {
	mu *sync.Mutex

	camera      Camera
	pointerLock PointerLock

	locked          bool
	lookSensitivity float32
	listeners       []lockListener
	nextListenerID  int
}

var _ FreeRoamRig = &freeRoamControllerImpl{}

// NewFreeRoamController creates a free-roam rig driving the given camera.
// Without a PointerLock the rig locks and unlocks purely in software, which is
// what headless sessions and tests use.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the rig
//
// Returns:
//   - FreeRoamRig: the newly created rig
func NewFreeRoamController(cam Camera, options ...FreeRoamControllerOption) FreeRoamRig {
	fr := &freeRoamControllerImpl{
		mu:              &sync.Mutex{},
		camera:          cam,
		lookSensitivity: 0.002,
	}
	for _, option := range options {
		option(fr)
	}
	return fr
}

func (fr *freeRoamControllerImpl) Kind() RigKind {
	return RigFreeRoam
}

func (fr *freeRoamControllerImpl) Lock() {
	fr.mu.Lock()
	pl := fr.pointerLock
	fr.mu.Unlock()
	if pl != nil {
		pl.SetPointerLock(true)
	}
	fr.setLocked(true)
}

func (fr *freeRoamControllerImpl) Unlock() {
	fr.mu.Lock()
	pl := fr.pointerLock
	fr.mu.Unlock()
	if pl != nil {
		pl.SetPointerLock(false)
	}
	fr.setLocked(false)
}

func (fr *freeRoamControllerImpl) IsLocked() bool {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return fr.locked
}

func (fr *freeRoamControllerImpl) HandlePointerLockChange(locked bool) {
	fr.setLocked(locked)
}

func (fr *freeRoamControllerImpl) MoveForward(amount float32) {
	yaw := float64(fr.camera.Yaw())
	dir := mgl32.Vec3{float32(-math.Sin(yaw)), 0, float32(-math.Cos(yaw))}
	fr.camera.SetPosition(fr.camera.Position().Add(dir.Mul(amount)))
}

func (fr *freeRoamControllerImpl) MoveRight(amount float32) {
	yaw := float64(fr.camera.Yaw())
	dir := mgl32.Vec3{float32(math.Cos(yaw)), 0, float32(-math.Sin(yaw))}
	fr.camera.SetPosition(fr.camera.Position().Add(dir.Mul(amount)))
}

func (fr *freeRoamControllerImpl) Look(dx, dy float64) {
	fr.mu.Lock()
	locked := fr.locked
	sens := fr.lookSensitivity
	fr.mu.Unlock()
	if !locked {
		return
	}
	fr.camera.Rotate(-float32(dx)*sens, -float32(dy)*sens)
}

func (fr *freeRoamControllerImpl) OnLockChange(fn func(locked bool)) (release func()) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	id := fr.nextListenerID
	fr.nextListenerID++
	fr.listeners = append(fr.listeners, lockListener{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			fr.mu.Lock()
			defer fr.mu.Unlock()
			for i, l := range fr.listeners {
				if l.id == id {
					fr.listeners = append(fr.listeners[:i], fr.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// setLocked stores the lock state and notifies listeners when it changed.
// Listeners run without the mutex held so they may call back into the rig.
func (fr *freeRoamControllerImpl) setLocked(locked bool) {
	fr.mu.Lock()
	if fr.locked == locked {
		fr.mu.Unlock()
		return
	}
	fr.locked = locked
	listeners := make([]lockListener, len(fr.listeners))
	copy(listeners, fr.listeners)
	fr.mu.Unlock()

	for _, l := range listeners {
		l.fn(locked)
	}
}
