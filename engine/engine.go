package engine

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-room/engine/profiler"
	"github.com/Carmen-Shannon/oxy-room/engine/window"
)

// MaxFrameDelta caps the delta handed to callbacks so a stalled frame (window drag,
// debugger pause) does not teleport the player or finish a transition in one step.
const MaxFrameDelta float32 = 0.1

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine: no window")

// engine implements the Engine interface.
// Tick and render run on the window's thread; GPU work must stay on the OS thread
// the surface was created on.
type engine struct {
	logger *slog.Logger
	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)
	resizeHooks    []func(width, height int)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	frames           uint64
	quit             atomic.Bool
}

// Engine drives the per-frame loop.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called first each frame.
	// Use this for input, view state, movement and loader polling.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after the tick each frame.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// OnResize registers a hook called when the window framebuffer is resized.
	//
	// Parameters:
	//   - hook: function receiving the new size in pixels
	OnResize(hook func(width, height int))

	// Step runs one frame: tick, render, then the profiler.
	// The delta is clamped to [0, MaxFrameDelta].
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	Step(deltaTime float32)

	// Frames returns the number of completed steps.
	Frames() uint64

	// Run drives Step from the window message loop, blocking until the window closes
	// or Quit is called.
	//
	// Returns:
	//   - error: ErrNoWindow for a headless engine
	Run() error

	// Quit asks a running loop to stop after the current frame.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(e)
	}
	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			for _, hook := range e.resizeHooks {
				hook(width, height)
			}
		})
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) OnResize(hook func(width, height int)) {
	if hook != nil {
		e.resizeHooks = append(e.resizeHooks, hook)
	}
}

func (e *engine) Step(deltaTime float32) {
	dt := clampDelta(deltaTime)
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	if e.renderCallback != nil {
		e.renderCallback(dt)
	}
	if e.profilingEnabled {
		e.profiler.Tick()
	}
	e.frames++
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	last := time.Now()
	e.window.SetUpdateCallback(func() {
		if e.quit.Load() {
			if err := e.window.Close(); err != nil {
				e.logger.Debug("window close", "error", err)
			}
			return
		}
		frameStart := time.Now()
		e.Step(float32(frameStart.Sub(last).Seconds()))
		last = frameStart

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})
	e.logger.Info("engine loop started", "frame_limit", e.renderFrameLimit)
	e.window.ProcessMessages()
	e.logger.Info("engine loop stopped", "frames", e.frames)
	return nil
}

func (e *engine) Quit() {
	e.quit.Store(true)
}

func clampDelta(dt float32) float32 {
	if dt < 0 {
		return 0
	}
	if dt > MaxFrameDelta {
		return MaxFrameDelta
	}
	return dt
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
