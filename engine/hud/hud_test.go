package hud

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-room/engine/poi"
	"github.com/Carmen-Shannon/oxy-room/engine/view_state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScene struct {
	msg     string
	loading bool
	err     error
}

func (f fakeScene) Loading() (string, bool) { return f.msg, f.loading }
func (f fakeScene) LoadError() error        { return f.err }

type fakeProgress struct {
	pct    float32
	active bool
}

func (f fakeProgress) Progress() float32 { return f.pct }
func (f fakeProgress) Active() bool      { return f.active }

func shield(t *testing.T) *poi.Poi {
	t.Helper()
	p, ok := poi.DefaultCatalog().Get("detail_2")
	require.True(t, ok)
	return &p
}

func TestLockPromptOnlyBeforeLock(t *testing.T) {
	catalog := poi.DefaultCatalog()

	snap := Build(view_state.Session{Mode: view_state.ModeExploring}, catalog, nil, nil)
	assert.True(t, snap.ShowLockPrompt)
	assert.Equal(t, "oxy-room - "+LockPrompt, snap.Title("oxy-room"))

	snap = Build(view_state.Session{Mode: view_state.ModeExploring, Locked: true}, catalog, nil, nil)
	assert.False(t, snap.ShowLockPrompt)

	snap = Build(view_state.Session{Mode: view_state.ModeInspecting, ActivePoi: shield(t)}, catalog, nil, nil)
	assert.False(t, snap.ShowLockPrompt)
	assert.True(t, snap.ShowBack)
	assert.Equal(t, "Shield", snap.ActivePoiName)
	assert.Contains(t, snap.Title("oxy-room"), BackLabel)
}

func TestTargetedName(t *testing.T) {
	snap := Build(view_state.Session{Mode: view_state.ModeExploring, Locked: true, TargetedPoiID: "detail_2"}, poi.DefaultCatalog(), nil, nil)
	assert.Equal(t, "Shield", snap.TargetedName)
	assert.Equal(t, "oxy-room - Shield (click to inspect)", snap.Title("oxy-room"))

	snap = Build(view_state.Session{Mode: view_state.ModeExploring, Locked: true, TargetedPoiID: "gone"}, poi.DefaultCatalog(), nil, nil)
	assert.Empty(t, snap.TargetedName)
}

func TestLoadingMessages(t *testing.T) {
	session := view_state.Session{Mode: view_state.ModeTransitioning, Direction: view_state.DirectionToPoi, ActivePoi: shield(t)}

	snap := Build(session, poi.DefaultCatalog(), fakeScene{msg: "Loading Shield...", loading: true}, fakeProgress{pct: 49.6, active: true})
	assert.Equal(t, "Loading Shield...", snap.LoadingMessage)
	assert.Equal(t, "oxy-room - Loading Shield... 50%", snap.Title("oxy-room"))

	snap = Build(session, poi.DefaultCatalog(), fakeScene{}, fakeProgress{pct: 10, active: true})
	assert.Equal(t, LoadingAssets, snap.LoadingMessage)

	snap = Build(session, poi.DefaultCatalog(), fakeScene{}, fakeProgress{pct: 100})
	assert.Empty(t, snap.LoadingMessage)
	assert.Equal(t, float32(100), snap.Progress)
}

func TestLoadErrorWins(t *testing.T) {
	session := view_state.Session{Mode: view_state.ModeInspecting, ActivePoi: shield(t)}
	snap := Build(session, poi.DefaultCatalog(), fakeScene{err: errors.New("load Shield: missing")}, nil)
	assert.Equal(t, "oxy-room - load Shield: missing", snap.Title("oxy-room"))
}
