package app

import (
	"fmt"
	"io"
	"time"

	"github.com/Carmen-Shannon/oxy-room/common"
	"github.com/Carmen-Shannon/oxy-room/engine/input"
	"github.com/Carmen-Shannon/oxy-room/engine/view_state"
)

// Script is a scripted headless session: lock, inspect one POI, go back.
type Script struct {
	PoiID string
	Wait  time.Duration
	FPS   int
}

// Simulate runs the script and writes one line per mode change.
//
// Parameters:
//   - w: output for the transcript
//   - s: the script; an empty PoiID picks the first catalog entry
//
// Returns:
//   - error: error if the POI is unknown or a step is rejected
func (a *App) Simulate(w io.Writer, s Script) error {
	if s.FPS <= 0 {
		s.FPS = 60
	}
	if s.PoiID == "" {
		all := a.catalog.All()
		if len(all) == 0 {
			return fmt.Errorf("simulate: catalog is empty")
		}
		s.PoiID = all[0].ID
	}
	if !a.catalog.Contains(s.PoiID) {
		return fmt.Errorf("simulate: unknown poi %q", s.PoiID)
	}

	dt := float32(1) / float32(s.FPS)
	frames := int(s.Wait.Seconds() * float64(s.FPS))
	var elapsed float32
	last := a.machine.Snapshot()
	release := a.machine.Subscribe(func(sess view_state.Session) {
		if sess.Mode == last.Mode && sess.Direction == last.Direction {
			last = sess
			return
		}
		last = sess
		fmt.Fprintf(w, "%7.3fs  %-13s %s\n", elapsed, sess.Mode, describe(sess))
	})
	defer release()

	run := func(n int) {
		for range n {
			a.Step(dt)
			elapsed += dt
		}
	}

	fmt.Fprintf(w, "%7.3fs  %-13s %s\n", elapsed, last.Mode, a.HUD().Title(a.title))
	a.MouseDown(common.MouseButtonLeft, 0, 0, input.OriginCanvas)
	run(1)
	if !a.machine.SelectPoi(s.PoiID) {
		return fmt.Errorf("simulate: select %q rejected in %s", s.PoiID, a.machine.Mode())
	}
	run(frames)
	if a.machine.Mode() != view_state.ModeInspecting {
		return fmt.Errorf("simulate: still %s after %s", a.machine.Mode(), s.Wait)
	}
	if !a.machine.Back() {
		return fmt.Errorf("simulate: back rejected")
	}
	run(frames)

	stats := a.renderer.Stats()
	fmt.Fprintf(w, "%7.3fs  done          frames=%d bakes=%d\n", elapsed, stats.Frames, stats.Bakes)
	return nil
}

func describe(s view_state.Session) string {
	switch {
	case s.Mode == view_state.ModeTransitioning:
		return s.Direction.String()
	case s.ActivePoi != nil:
		return s.ActivePoi.Name
	default:
		return ""
	}
}
