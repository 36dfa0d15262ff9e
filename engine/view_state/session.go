package view_state

import (
	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/Carmen-Shannon/oxy-room/engine/poi"
)

// Mode is the top-level view mode. Exactly one holds at any time.
type Mode int

const (
	// ModeExploring is free-roam walking with POI targeting.
	ModeExploring Mode = iota
	// ModeInspecting orbits the camera around the active POI.
	ModeInspecting
	// ModeTransitioning hands the camera to the transition animator.
	ModeTransitioning
)

func (m Mode) String() string {
	switch m {
	case ModeExploring:
		return "exploring"
	case ModeInspecting:
		return "inspecting"
	case ModeTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// Direction says where a transition is heading.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionToPoi
	DirectionToRoom
)

func (d Direction) String() string {
	switch d {
	case DirectionToPoi:
		return "to_poi"
	case DirectionToRoom:
		return "to_room"
	default:
		return "none"
	}
}

// Session is a copy of the machine's state handed to observers and the HUD.
type Session struct {
	Mode      Mode
	Direction Direction

	// ActivePoi is set while inspecting and while transitioning toward a POI.
	ActivePoi *poi.Poi

	// TargetedPoiID is the POI under the viewport center, "" when none.
	TargetedPoiID string

	Locked bool

	TransitionStart  *camera.CameraState
	TransitionTarget *camera.CameraState

	LastRoomCameraState camera.CameraState
}

// IsExploring reports Mode == ModeExploring.
func (s Session) IsExploring() bool {
	return s.Mode == ModeExploring
}

// IsInspecting reports Mode == ModeInspecting.
func (s Session) IsInspecting() bool {
	return s.Mode == ModeInspecting
}

// IsTransitioning reports Mode == ModeTransitioning.
func (s Session) IsTransitioning() bool {
	return s.Mode == ModeTransitioning
}

// clone deep-copies the pointer fields so observers cannot alias machine state.
func (s Session) clone() Session {
	out := s
	if s.ActivePoi != nil {
		p := *s.ActivePoi
		out.ActivePoi = &p
	}
	if s.TransitionStart != nil {
		st := *s.TransitionStart
		out.TransitionStart = &st
	}
	if s.TransitionTarget != nil {
		tg := *s.TransitionTarget
		out.TransitionTarget = &tg
	}
	return out
}
