package view_state

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-room/common"
	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/Carmen-Shannon/oxy-room/engine/input"
	"github.com/Carmen-Shannon/oxy-room/engine/movement"
	"github.com/Carmen-Shannon/oxy-room/engine/picking"
	"github.com/Carmen-Shannon/oxy-room/engine/poi"
	"github.com/Carmen-Shannon/oxy-room/engine/targeting"
	"github.com/Carmen-Shannon/oxy-room/engine/transition"
	"github.com/go-gl/mathgl/mgl32"
)

// localForward is the camera-space facing direction.
var localForward = mgl32.Vec3{0, 0, -1}

// Machine owns the view mode, the active POI and the transition endpoints.
// All methods run on the frame goroutine; mutual exclusion between movement,
// the animator and the orbit rig comes from the mode, not from locks.
type Machine interface {
	// Frame runs one tick: targeting, then movement, then transition stepping.
	//
	// Parameters:
	//   - delta: elapsed seconds since the last frame
	//   - keys: held movement directions
	Frame(delta float32, keys movement.Keys)

	// HandleClick interprets a mouse click. While exploring and unlocked a primary click
	// on the viewport requests pointer lock; while locked it clicks the targeted POI.
	//
	// Parameters:
	//   - click: the click event
	//
	// Returns:
	//   - bool: true if the click changed state
	HandleClick(click input.Click) bool

	// ClickPoi starts a transition into p. Ignored unless exploring and not transitioning.
	//
	// Parameters:
	//   - p: the POI to inspect
	//
	// Returns:
	//   - bool: true if a transition started
	ClickPoi(p poi.Poi) bool

	// SelectPoi is ClickPoi by id, used by POI label clicks.
	//
	// Parameters:
	//   - id: POI id to resolve against the catalog
	//
	// Returns:
	//   - bool: true if a transition started
	SelectPoi(id string) bool

	// Back starts the transition back to the last room pose.
	// Ignored while transitioning or with no active POI.
	//
	// Returns:
	//   - bool: true if a transition started
	Back() bool

	// RequestLock engages the free-roam rig when exploring, unlocked and not transitioning.
	//
	// Returns:
	//   - bool: true if the rig was asked to lock
	RequestLock() bool

	// PointerMotion routes pointer movement to the active rig.
	//
	// Parameters:
	//   - dx, dy: motion in pixels since the last event
	//   - dragging: whether the orbit drag button is held
	PointerMotion(dx, dy float64, dragging bool)

	// Scroll zooms the orbit rig while inspecting.
	//
	// Parameters:
	//   - dy: scroll amount, positive zooms in
	Scroll(dy float64)

	// ActiveRig returns the rig driving the camera in the current mode, nil while transitioning.
	ActiveRig() camera.Rig

	// Mode returns the current mode.
	Mode() Mode

	// Snapshot returns a copy of the session state.
	Snapshot() Session

	// Subscribe registers an observer called after every state change.
	//
	// Parameters:
	//   - fn: receives a copy of the new state
	//
	// Returns:
	//   - func(): removes the observer
	Subscribe(fn func(Session)) (release func())

	// Close releases rig subscriptions.
	Close()
}

type machineImpl struct {
	logger *slog.Logger

	camera   camera.Camera
	freeRoam camera.FreeRoamRig
	orbit    camera.OrbitRig
	catalog  *poi.Catalog

	targeter targeting.Targeter
	movement movement.Movement
	animator transition.Animator

	unlockResetsLock bool

	session Session

	releaseLockListener func()
	releaseTargetFeed   func()

	observers      map[int]func(Session)
	nextObserverID int
}

var _ Machine = &machineImpl{}

// NewMachine creates a Machine in ModeExploring with the free-roam rig acquired.
//
// Parameters:
//   - cam: the scene camera
//   - freeRoam: the free-roam rig, may be nil for inspection-only setups
//   - orbit: the orbit rig, may be nil
//   - catalog: the POI catalog
//   - registry: the hitbox registry read by targeting
//   - options: functional options
//
// Returns:
//   - Machine: the state machine
func NewMachine(cam camera.Camera, freeRoam camera.FreeRoamRig, orbit camera.OrbitRig, catalog *poi.Catalog, registry picking.Registry, options ...MachineBuilderOption) Machine {
	m := &machineImpl{
		logger:           slog.Default(),
		camera:           cam,
		freeRoam:         freeRoam,
		orbit:            orbit,
		catalog:          catalog,
		unlockResetsLock: true,
		session: Session{
			Mode:                ModeExploring,
			LastRoomCameraState: camera.NewCameraState(common.InitialRoomPosition, common.InitialRoomTarget),
		},
		observers: make(map[int]func(Session)),
	}
	for _, option := range options {
		option(m)
	}
	if registry == nil {
		registry = picking.NewRegistry()
	}
	if m.targeter == nil {
		m.targeter = targeting.NewTargeter(registry, catalog, targeting.WithLogger(m.logger))
	}
	if m.movement == nil {
		m.movement = movement.NewMovement()
	}
	if m.animator == nil {
		m.animator = transition.NewAnimator(transition.WithLogger(m.logger))
	}
	m.animator.OnComplete(m.complete)
	m.releaseTargetFeed = m.targeter.OnChange(m.handleTargetChange)

	if m.orbit != nil {
		m.orbit.SetEnabled(false)
	}
	m.acquireFreeRoam()
	return m
}

func (m *machineImpl) Frame(delta float32, keys movement.Keys) {
	origin, dir := m.camera.CenterRay()
	m.targeter.Update(picking.NewRay(origin, dir), targeting.Flags{
		Exploring:     m.session.Mode == ModeExploring,
		Locked:        m.session.Locked,
		Transitioning: m.session.Mode == ModeTransitioning,
	})

	m.movement.Update(delta, keys, m.ActiveRig(), m.camera)

	// Stepping runs last so an active transition owns the final camera write.
	m.animator.Update(delta, m.camera, m.ActiveRig())
}

func (m *machineImpl) HandleClick(click input.Click) bool {
	if !click.Primary() || !click.ReachesViewport() {
		return false
	}
	if m.session.Mode != ModeExploring {
		return false
	}
	if !m.session.Locked || (m.freeRoam != nil && !m.freeRoam.IsLocked()) {
		return m.RequestLock()
	}

	id := m.session.TargetedPoiID
	if id == "" {
		return false
	}
	p, ok := m.catalog.Get(id)
	if !ok {
		m.logger.Debug("targeted poi missing from catalog", "poi", id)
		return false
	}
	return m.ClickPoi(p)
}

func (m *machineImpl) ClickPoi(p poi.Poi) bool {
	if m.session.Mode != ModeExploring {
		m.logger.Debug("poi click ignored", "poi", p.ID, "mode", m.session.Mode.String())
		return false
	}

	pos := m.camera.Position()
	ahead := pos.Add(m.camera.Orientation().Rotate(localForward))
	start := camera.NewCameraState(pos, ahead)
	target := p.InspectState()

	active := p
	m.session.LastRoomCameraState = start
	m.session.TransitionStart = &start
	m.session.TransitionTarget = &target
	m.session.ActivePoi = &active
	m.session.Mode = ModeTransitioning
	m.session.Direction = DirectionToPoi

	if m.freeRoam != nil && m.freeRoam.IsLocked() {
		m.freeRoam.Unlock()
	}
	m.releaseFreeRoam()

	m.animator.Activate(start, target, m.camera, m.ActiveRig())
	m.logger.Info("view mode changed", "mode", m.session.Mode.String(), "direction", m.session.Direction.String(), "poi", p.ID)
	m.notify()
	return true
}

func (m *machineImpl) SelectPoi(id string) bool {
	p, ok := m.catalog.Get(id)
	if !ok {
		m.logger.Debug("poi selection ignored", "poi", id)
		return false
	}
	return m.ClickPoi(p)
}

func (m *machineImpl) Back() bool {
	if m.session.Mode == ModeTransitioning || m.session.ActivePoi == nil {
		m.logger.Debug("back ignored", "mode", m.session.Mode.String())
		return false
	}

	lookAt := m.session.ActivePoi.CameraTarget
	if m.orbit != nil {
		m.orbit.SetEnabled(false)
		lookAt = m.orbit.Target()
	}
	start := camera.NewCameraState(m.camera.Position(), lookAt)
	target := m.session.LastRoomCameraState

	leaving := m.session.ActivePoi.ID
	m.session.TransitionStart = &start
	m.session.TransitionTarget = &target
	m.session.ActivePoi = nil
	m.session.Mode = ModeTransitioning
	m.session.Direction = DirectionToRoom

	m.animator.Activate(start, target, m.camera, m.ActiveRig())
	m.logger.Info("view mode changed", "mode", m.session.Mode.String(), "direction", m.session.Direction.String(), "poi", leaving)
	m.notify()
	return true
}

func (m *machineImpl) RequestLock() bool {
	if m.session.Mode != ModeExploring || m.freeRoam == nil || m.freeRoam.IsLocked() {
		return false
	}
	m.freeRoam.Lock()
	return true
}

func (m *machineImpl) PointerMotion(dx, dy float64, dragging bool) {
	switch m.session.Mode {
	case ModeExploring:
		if m.freeRoam != nil {
			m.freeRoam.Look(dx, dy)
		}
	case ModeInspecting:
		if m.orbit != nil && dragging {
			m.orbit.Rotate(dx, dy)
		}
	}
}

func (m *machineImpl) Scroll(dy float64) {
	if m.session.Mode == ModeInspecting && m.orbit != nil {
		m.orbit.Zoom(float32(dy))
	}
}

func (m *machineImpl) ActiveRig() camera.Rig {
	switch m.session.Mode {
	case ModeExploring:
		if m.freeRoam != nil {
			return m.freeRoam
		}
	case ModeInspecting:
		if m.orbit != nil {
			return m.orbit
		}
	}
	return nil
}

func (m *machineImpl) Mode() Mode {
	return m.session.Mode
}

func (m *machineImpl) Snapshot() Session {
	return m.session.clone()
}

func (m *machineImpl) Subscribe(fn func(Session)) (release func()) {
	id := m.nextObserverID
	m.nextObserverID++
	m.observers[id] = fn
	return func() { delete(m.observers, id) }
}

func (m *machineImpl) Close() {
	m.releaseFreeRoam()
	if m.releaseTargetFeed != nil {
		m.releaseTargetFeed()
		m.releaseTargetFeed = nil
	}
}

// complete is the animator's completion callback.
func (m *machineImpl) complete() {
	if m.session.ActivePoi == nil {
		m.session.Mode = ModeExploring
		m.session.Direction = DirectionNone
		m.movement.Reset()
		m.acquireFreeRoam()
	} else {
		m.session.Mode = ModeInspecting
		m.session.Direction = DirectionNone
		if m.orbit != nil && m.session.TransitionTarget != nil {
			m.orbit.SetEnabled(true)
			m.orbit.SetTarget(m.session.TransitionTarget.Target())
			m.orbit.Update()
		}
	}
	attrs := []any{"mode", m.session.Mode.String()}
	if m.session.ActivePoi != nil {
		attrs = append(attrs, "poi", m.session.ActivePoi.ID)
	}
	m.logger.Info("view mode changed", attrs...)
	m.notify()
}

// acquireFreeRoam subscribes to lock changes for as long as the machine is exploring.
func (m *machineImpl) acquireFreeRoam() {
	if m.freeRoam == nil || m.releaseLockListener != nil {
		return
	}
	m.releaseLockListener = m.freeRoam.OnLockChange(m.handleLockChange)
	if m.freeRoam.IsLocked() {
		m.handleLockChange(true)
	}
}

func (m *machineImpl) releaseFreeRoam() {
	if m.releaseLockListener == nil {
		return
	}
	m.releaseLockListener()
	m.releaseLockListener = nil
}

func (m *machineImpl) handleLockChange(locked bool) {
	if !locked && !m.unlockResetsLock {
		return
	}
	if m.session.Locked == locked {
		return
	}
	m.session.Locked = locked
	m.logger.Debug("pointer lock changed", "locked", locked)
	m.notify()
}

func (m *machineImpl) handleTargetChange(id string) {
	m.session.TargetedPoiID = id
	m.notify()
}

func (m *machineImpl) notify() {
	if len(m.observers) == 0 {
		return
	}
	snap := m.session.clone()
	for i := 0; i < m.nextObserverID; i++ {
		if fn, ok := m.observers[i]; ok {
			fn(snap)
		}
	}
}
