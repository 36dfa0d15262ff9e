package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEngineWindow_Defaults(t *testing.T) {
	w := newEngineWindow()
	assert.Equal(t, "oxy-room", w.title)
	assert.Equal(t, 1280, w.Width())
	assert.Equal(t, 720, w.Height())
	assert.False(t, w.IsRunning())
}

func TestNewEngineWindow_ClampsToLimits(t *testing.T) {
	w := newEngineWindow(WithSize(100, 5000), WithMinSize(320, 240), WithMaxSize(1920, 1080))
	assert.Equal(t, 320, w.Width())
	assert.Equal(t, 1080, w.Height())

	w = newEngineWindow(WithSize(9000, 9000), WithMaxSize(0, 0))
	assert.Equal(t, 9000, w.Width())
}

func TestCursorTracker(t *testing.T) {
	var c cursorTracker
	_, _, ok := c.move(10, 10)
	assert.False(t, ok)

	dx, dy, ok := c.move(15, 7)
	assert.True(t, ok)
	assert.Equal(t, 5.0, dx)
	assert.Equal(t, -3.0, dy)

	_, _, ok = c.move(15, 7)
	assert.False(t, ok)

	c.reset()
	_, _, ok = c.move(100, 100)
	assert.False(t, ok)
}

func TestSetPointerLock_NotifiesOnChange(t *testing.T) {
	w := newEngineWindow()
	var changes []bool
	w.SetPointerLockCallback(func(locked bool) { changes = append(changes, locked) })

	w.SetPointerLock(true)
	w.SetPointerLock(true)
	assert.True(t, w.PointerLocked())
	w.SetPointerLock(false)

	assert.Equal(t, []bool{true, false}, changes)
}

func TestSetPointerLock_ResetsCursorDelta(t *testing.T) {
	w := newEngineWindow()
	var moves [][2]float64
	w.SetMouseMoveCallback(func(dx, dy float64) { moves = append(moves, [2]float64{dx, dy}) })

	w.handleCursor(0, 0)
	w.handleCursor(4, 2)
	w.SetPointerLock(true)
	w.handleCursor(500, 500)
	w.handleCursor(501, 500)

	assert.Equal(t, [][2]float64{{4, 2}, {1, 0}}, moves)
}

func TestHandleEscape(t *testing.T) {
	w := newEngineWindow()
	w.SetPointerLock(true)
	assert.False(t, w.handleEscape())
	assert.False(t, w.PointerLocked())
	assert.True(t, w.handleEscape())
}

func TestHandleResize_IgnoresMinimize(t *testing.T) {
	w := newEngineWindow()
	calls := 0
	w.SetResizeCallback(func(width, height int) { calls++ })

	w.handleResize(0, 0)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1280, w.Width())

	w.handleResize(800, 600)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 800, w.Width())
}

func TestSetTitle_WithoutPlatformWindow(t *testing.T) {
	w := newEngineWindow()
	w.SetTitle("Room")
	assert.Equal(t, "Room", w.title)
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}
