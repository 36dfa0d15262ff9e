package hud

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-room/engine/poi"
	"github.com/Carmen-Shannon/oxy-room/engine/view_state"
)

// Overlay messages.
const (
	LockPrompt    = "Click to look around (WASD to move)"
	LoadingRoom   = "Loading Room..."
	LoadingAssets = "Loading Assets..."
	BackLabel     = "Back to Room"
)

// Scene is the part of the room scene the HUD reads.
type Scene interface {
	Loading() (string, bool)
	LoadError() error
}

// Progress is the part of the asset loader the HUD reads.
type Progress interface {
	Progress() float32
	Active() bool
}

// Snapshot is everything the UI layer needs to draw overlays for one frame.
type Snapshot struct {
	Mode view_state.Mode

	// ShowLockPrompt is true while exploring, unlocked and with no active POI.
	ShowLockPrompt bool

	TargetedID   string
	TargetedName string

	// Progress is the asset loading percentage, 0-100.
	Progress float32

	// LoadingMessage is empty when nothing is loading.
	LoadingMessage string

	ShowBack bool

	ActivePoiName string

	LoadError error
}

// Build assembles a Snapshot.
//
// Parameters:
//   - session: the view state
//   - catalog: resolves the targeted POI name
//   - sc: the scene, may be nil
//   - progress: the asset loader, may be nil
//
// Returns:
//   - Snapshot: the overlay state
func Build(session view_state.Session, catalog *poi.Catalog, sc Scene, progress Progress) Snapshot {
	snap := Snapshot{
		Mode:           session.Mode,
		ShowLockPrompt: session.IsExploring() && !session.Locked && session.ActivePoi == nil,
		TargetedID:     session.TargetedPoiID,
		Progress:       100,
		ShowBack:       session.IsInspecting() && session.ActivePoi != nil,
	}
	if p, ok := catalog.Get(session.TargetedPoiID); ok {
		snap.TargetedName = p.Name
	}
	if session.ActivePoi != nil {
		snap.ActivePoiName = session.ActivePoi.Name
	}

	if progress != nil {
		snap.Progress = progress.Progress()
	}
	if sc != nil {
		snap.LoadError = sc.LoadError()
		if msg, ok := sc.Loading(); ok {
			snap.LoadingMessage = msg
		}
	}
	if snap.LoadingMessage == "" && progress != nil && progress.Active() {
		snap.LoadingMessage = LoadingAssets
	}
	return snap
}

// Title renders the snapshot as one line for the window title.
//
// Parameters:
//   - app: the application name prefix
//
// Returns:
//   - string: the status line
func (s Snapshot) Title(app string) string {
	switch {
	case s.LoadError != nil:
		return fmt.Sprintf("%s - %v", app, s.LoadError)
	case s.LoadingMessage != "":
		return fmt.Sprintf("%s - %s %d%%", app, s.LoadingMessage, int(math.Round(float64(s.Progress))))
	case s.ShowLockPrompt:
		return fmt.Sprintf("%s - %s", app, LockPrompt)
	case s.ShowBack:
		return fmt.Sprintf("%s - %s [Backspace: %s]", app, s.ActivePoiName, BackLabel)
	case s.TargetedName != "":
		return fmt.Sprintf("%s - %s (click to inspect)", app, s.TargetedName)
	default:
		return fmt.Sprintf("%s - %s", app, s.Mode)
	}
}
