package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing, pointer capture and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	camera.PointerLock

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the vertical scroll offset (positive = up)
	SetScrollCallback(callback func(dy float64))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	// Escape is consumed by the window and never forwarded.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(key int))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(key int))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button and cursor position
	SetMouseDownCallback(callback func(button int, x, y float64))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button and cursor position
	SetMouseUpCallback(callback func(button int, x, y float64))

	// SetMouseMoveCallback sets the callback for cursor movement.
	// Deltas are reported in pixels since the previous event; the first event after a
	// lock change reports zero so the camera does not jump.
	//
	// Parameters:
	//   - callback: function receiving the cursor delta
	SetMouseMoveCallback(callback func(dx, dy float64))

	// SetPointerLockCallback sets the callback fired whenever pointer capture changes,
	// including releases made by the window itself on Escape.
	//
	// Parameters:
	//   - callback: function receiving the new lock state
	SetPointerLockCallback(callback func(locked bool))

	// PointerLocked reports whether the cursor is captured.
	//
	// Returns:
	//   - bool: true while the cursor is disabled and captured
	PointerLocked() bool

	// SetTitle replaces the title bar text.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	cursor cursorTracker
	locked bool

	onUpdate      func()
	onResize      func(width, height int)
	onScroll      func(dy float64)
	onKeyDown     func(key int)
	onKeyUp       func(key int)
	onMouseDown   func(button int, x, y float64)
	onMouseUp     func(button int, x, y float64)
	onMouseMove   func(dx, dy float64)
	onPointerLock func(locked bool)
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "oxy-room",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  640,
		minHeight: 360,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	w.width = clampInt(w.width, w.minWidth, w.maxWidth)
	w.height = clampInt(w.height, w.minHeight, w.maxHeight)
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(dy float64)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(key int)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(key int)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button int, x, y float64)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button int, x, y float64)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(dx, dy float64)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SetPointerLockCallback(callback func(locked bool)) {
	w.onPointerLock = callback
}

func (w *engineWindow) SetPointerLock(locked bool) {
	if w.locked == locked {
		return
	}
	w.locked = locked
	w.cursor.reset()
	platformSetCursorCaptured(w, locked)
	if w.onPointerLock != nil {
		w.onPointerLock(locked)
	}
}

func (w *engineWindow) PointerLocked() bool {
	return w.locked
}

func (w *engineWindow) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	platformSetTitle(w, title)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// handleEscape releases pointer capture when held, otherwise asks the window to close.
//
// Returns:
//   - bool: true if the window should close
func (w *engineWindow) handleEscape() bool {
	if w.locked {
		w.SetPointerLock(false)
		return false
	}
	return true
}

// handleCursor converts an absolute cursor position into a delta for the move callback.
func (w *engineWindow) handleCursor(x, y float64) {
	dx, dy, ok := w.cursor.move(x, y)
	if ok && w.onMouseMove != nil {
		w.onMouseMove(dx, dy)
	}
}

// handleResize records a framebuffer size. Zero sizes (minimized) are not forwarded.
func (w *engineWindow) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// cursorTracker turns absolute cursor positions into deltas.
type cursorTracker struct {
	lastX, lastY float64
	primed       bool
}

// move returns the delta from the previous position. The first call after a reset
// only primes the tracker.
func (c *cursorTracker) move(x, y float64) (dx, dy float64, ok bool) {
	if !c.primed {
		c.lastX, c.lastY, c.primed = x, y, true
		return 0, 0, false
	}
	dx, dy = x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	return dx, dy, dx != 0 || dy != 0
}

func (c *cursorTracker) reset() {
	c.primed = false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}
