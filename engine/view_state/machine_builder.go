package view_state

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/Carmen-Shannon/oxy-room/engine/movement"
	"github.com/Carmen-Shannon/oxy-room/engine/targeting"
	"github.com/Carmen-Shannon/oxy-room/engine/transition"
)

// MachineBuilderOption is a functional option for configuring a Machine.
type MachineBuilderOption func(*machineImpl)

// WithLogger sets the logger for mode changes and rejected requests.
//
// Parameters:
//   - logger: the logger, nil keeps the default
//
// Returns:
//   - MachineBuilderOption: functional option to set the logger
func WithLogger(logger *slog.Logger) MachineBuilderOption {
	return func(m *machineImpl) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithInitialRoomState sets the room pose returned to before any POI has been visited.
//
// Parameters:
//   - state: the initial room pose
//
// Returns:
//   - MachineBuilderOption: functional option to set the initial room state
func WithInitialRoomState(state camera.CameraState) MachineBuilderOption {
	return func(m *machineImpl) {
		m.session.LastRoomCameraState = state
	}
}

// WithUnlockResetsLock chooses whether a free-roam unlock event clears the session lock flag.
// When false, the flag stays set after the first lock.
//
// Parameters:
//   - reset: true to clear the flag on unlock
//
// Returns:
//   - MachineBuilderOption: functional option to set unlock behaviour
func WithUnlockResetsLock(reset bool) MachineBuilderOption {
	return func(m *machineImpl) {
		m.unlockResetsLock = reset
	}
}

// WithTargeter replaces the default Targeter.
func WithTargeter(t targeting.Targeter) MachineBuilderOption {
	return func(m *machineImpl) {
		m.targeter = t
	}
}

// WithMovement replaces the default Movement.
func WithMovement(mv movement.Movement) MachineBuilderOption {
	return func(m *machineImpl) {
		m.movement = mv
	}
}

// WithAnimator replaces the default Animator. Its completion callback is taken over by the machine.
func WithAnimator(a transition.Animator) MachineBuilderOption {
	return func(m *machineImpl) {
		m.animator = a
	}
}
