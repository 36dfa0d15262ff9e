// Package app wires the viewer components into a runnable session.
package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-room/common"
	"github.com/Carmen-Shannon/oxy-room/config"
	"github.com/Carmen-Shannon/oxy-room/engine"
	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/Carmen-Shannon/oxy-room/engine/hud"
	"github.com/Carmen-Shannon/oxy-room/engine/input"
	"github.com/Carmen-Shannon/oxy-room/engine/loader"
	"github.com/Carmen-Shannon/oxy-room/engine/movement"
	"github.com/Carmen-Shannon/oxy-room/engine/picking"
	"github.com/Carmen-Shannon/oxy-room/engine/poi"
	"github.com/Carmen-Shannon/oxy-room/engine/renderer"
	"github.com/Carmen-Shannon/oxy-room/engine/scene"
	"github.com/Carmen-Shannon/oxy-room/engine/transition"
	"github.com/Carmen-Shannon/oxy-room/engine/view_state"
	"github.com/Carmen-Shannon/oxy-room/engine/window"
)

// ClearColor is the background behind the room, #202020.
var ClearColor = [4]float64{0x20 / 255.0, 0x20 / 255.0, 0x20 / 255.0, 1}

// App owns one viewer session.
type App struct {
	cfg    config.Config
	logger *slog.Logger
	title  string

	catalog  *poi.Catalog
	registry picking.Registry
	loader   loader.Loader
	watcher  *loader.Watcher

	camera   camera.Camera
	freeRoam camera.FreeRoamRig
	orbit    camera.OrbitRig
	machine  view_state.Machine
	scene    scene.Scene
	keys     input.KeyState
	renderer renderer.Renderer
	engine   engine.Engine
	window   window.Window

	releaseSync func()
	dragging    bool
	lastTitle   string
	renderErrs  int
}

// NewHeadless builds a session that renders through the headless backend and is
// driven by Step. The free-roam rig locks in software.
//
// Parameters:
//   - cfg: the validated configuration
//   - logger: the session logger
//
// Returns:
//   - *App: the session
//   - error: catalog or renderer error
func NewHeadless(cfg config.Config, logger *slog.Logger) (*App, error) {
	return build(cfg, logger, nil)
}

// NewWindowed opens the GLFW window and builds a session rendering through WebGPU.
//
// Parameters:
//   - cfg: the validated configuration
//   - logger: the session logger
//
// Returns:
//   - *App: the session
//   - error: window, catalog or renderer error
func NewWindowed(cfg config.Config, logger *slog.Logger) (*App, error) {
	win, err := window.NewWindow(
		window.WithTitle(sessionTitle(cfg)),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return nil, err
	}
	a, err := build(cfg, logger, win)
	if err != nil {
		_ = win.Close()
		return nil, err
	}
	return a, nil
}

func sessionTitle(cfg config.Config) string {
	if cfg.Window.Title == "" {
		return "oxy-room"
	}
	return cfg.Window.Title
}

func build(cfg config.Config, logger *slog.Logger, win window.Window) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	a := &App{
		cfg:      cfg,
		logger:   logger,
		title:    sessionTitle(cfg),
		catalog:  catalog,
		registry: picking.NewRegistry(),
		keys:     input.NewKeyState(),
		window:   win,
	}

	width, height := cfg.Window.Width, cfg.Window.Height
	if win != nil {
		width, height = win.Width(), win.Height()
	}

	a.loader = loader.NewLoader(
		loader.WithAssetRoot(cfg.Assets.Root),
		loader.WithWorkers(cfg.Assets.Workers),
		loader.WithLogger(logger),
	)

	a.camera = camera.NewCamera(
		camera.WithPosition(common.InitialRoomPosition),
		camera.WithLookAt(common.InitialRoomTarget),
		camera.WithFov(cfg.Camera.FovRadians()),
		camera.WithAspect(float32(width)/float32(height)),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
	)
	freeRoamOpts := []camera.FreeRoamControllerOption{
		camera.WithLookSensitivity(cfg.Player.LookSensitivity),
	}
	if win != nil {
		freeRoamOpts = append(freeRoamOpts, camera.WithPointerLock(win))
	}
	a.freeRoam = camera.NewFreeRoamController(a.camera, freeRoamOpts...)
	a.orbit = camera.NewOrbitController(a.camera)

	a.machine = view_state.NewMachine(a.camera, a.freeRoam, a.orbit, catalog, a.registry,
		view_state.WithLogger(logger),
		view_state.WithUnlockResetsLock(cfg.Player.UnlockResetsLock),
		view_state.WithMovement(newMovement(cfg)),
		view_state.WithAnimator(newAnimator(cfg, logger)),
	)

	a.scene = scene.NewScene("room", a.camera, catalog, a.registry, a.loader,
		scene.WithRoomSize(cfg.Room.Width, cfg.Room.Depth, cfg.Room.Height),
		scene.WithHitboxRadius(cfg.Room.HitboxRadius),
		scene.WithLogger(logger),
	)
	a.releaseSync = a.machine.Subscribe(a.scene.Sync)
	a.scene.Sync(a.machine.Snapshot())

	a.renderer, err = newRenderer(cfg, logger, win, width, height)
	if err != nil {
		a.machine.Close()
		return nil, err
	}

	if cfg.Assets.Watch && cfg.Assets.Root != "" {
		debounce := time.Duration(cfg.Assets.DebounceMS) * time.Millisecond
		a.watcher, err = loader.NewWatcher(cfg.Assets.Root, debounce, func(url string) {
			a.loader.Invalidate(url)
		}, logger)
		if err != nil {
			logger.Warn("asset watcher disabled", "root", cfg.Assets.Root, "error", err)
		} else {
			a.watcher.Start()
		}
	}

	engineOpts := []engine.EngineBuilderOption{
		engine.WithLogger(logger),
		engine.WithProfiling(cfg.Window.Profiler),
		engine.WithRenderFrameLimit(cfg.Window.FrameLimit),
	}
	if win != nil {
		engineOpts = append(engineOpts, engine.WithWindow(win))
	}
	a.engine = engine.NewEngine(engineOpts...)
	a.engine.SetTickCallback(a.tick)
	a.engine.SetRenderCallback(a.render)
	a.engine.OnResize(a.resize)

	if win != nil {
		a.bindWindow(win)
	}
	logger.Info("session ready", "pois", catalog.Len(), "windowed", win != nil)
	return a, nil
}

func newMovement(cfg config.Config) movement.Movement {
	opts := []movement.MovementBuilderOption{
		movement.WithSpeed(cfg.Player.WalkSpeed),
		movement.WithDamping(cfg.Player.Damping),
		movement.WithEyeHeight(cfg.Player.EyeHeight),
	}
	if cfg.Player.ClampToRoomBounds {
		opts = append(opts, movement.WithRoomBounds(cfg.Room.Width, cfg.Room.Depth, cfg.Player.BoundsMargin))
	}
	return movement.NewMovement(opts...)
}

func newAnimator(cfg config.Config, logger *slog.Logger) transition.Animator {
	easing := transition.SmoothStep
	if strings.EqualFold(cfg.Camera.Easing, "linear") {
		easing = transition.Linear
	}
	return transition.NewAnimator(
		transition.WithSpeed(cfg.Camera.AnimationSpeed),
		transition.WithEasing(easing),
		transition.WithLogger(logger),
	)
}

func newRenderer(cfg config.Config, logger *slog.Logger, win window.Window, width, height int) (renderer.Renderer, error) {
	if win == nil {
		return renderer.NewRenderer(renderer.BackendTypeHeadless, renderer.WithSize(width, height), renderer.WithLogger(logger))
	}
	mode := renderer.PresentModeUncapped
	if cfg.Window.VSync {
		mode = renderer.PresentModeVSync
	}
	msaa := renderer.MSAAOff
	if cfg.Window.MSAA {
		msaa = renderer.MSAA4x
	}
	return renderer.NewRenderer(renderer.BackendTypeWGPU,
		renderer.WithSurfaceDescriptor(win.SurfaceDescriptor()),
		renderer.WithSize(width, height),
		renderer.WithPresentMode(mode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(cfg.Window.Software),
		renderer.WithLogger(logger),
	)
}

// bindWindow routes window input into the state machine.
func (a *App) bindWindow(win window.Window) {
	win.SetPointerLockCallback(a.freeRoam.HandlePointerLockChange)
	win.SetKeyDownCallback(a.KeyDown)
	win.SetKeyUpCallback(a.keys.Release)
	win.SetMouseDownCallback(func(button int, x, y float64) {
		a.MouseDown(button, x, y, input.OriginCanvas)
	})
	win.SetMouseUpCallback(a.MouseUp)
	win.SetMouseMoveCallback(a.MouseMove)
	win.SetScrollCallback(a.machine.Scroll)
}

// KeyDown records a held key. Backspace and B return to the room.
func (a *App) KeyDown(key int) {
	switch key {
	case common.KeyBackspace, common.KeyB:
		a.machine.Back()
		return
	}
	a.keys.Press(key)
}

// MouseDown forwards a press to the machine and starts an orbit drag.
// A press while the lock prompt is showing lands on the prompt overlay.
//
// Parameters:
//   - button: the mouse button
//   - x, y: cursor position in pixels
//   - origin: the element under the cursor
//
// Returns:
//   - bool: true if the machine accepted the click
func (a *App) MouseDown(button int, x, y float64, origin input.Origin) bool {
	if button == common.MouseButtonLeft && a.machine.Mode() == view_state.ModeInspecting {
		a.dragging = true
	}
	if origin == input.OriginCanvas && a.HUD().ShowLockPrompt {
		origin = input.OriginLockOverlay
	}
	return a.machine.HandleClick(input.Click{Button: button, X: x, Y: y, Origin: origin})
}

// MouseUp ends an orbit drag.
func (a *App) MouseUp(button int, x, y float64) {
	if button == common.MouseButtonLeft {
		a.dragging = false
	}
}

// MouseMove forwards a cursor delta as look or orbit drag.
func (a *App) MouseMove(dx, dy float64) {
	a.machine.PointerMotion(dx, dy, a.dragging)
}

func (a *App) tick(dt float32) {
	a.scene.Update()
	a.machine.Frame(dt, a.keys.MovementKeys())
	if a.window != nil {
		if title := a.HUD().Title(a.title); title != a.lastTitle {
			a.window.SetTitle(title)
			a.lastTitle = title
		}
	}
}

func (a *App) render(float32) {
	if !a.scene.Active() {
		return
	}
	if err := a.renderer.RenderFrame(renderer.FrameFromScene(a.scene, ClearColor)); err != nil {
		a.renderErrs++
		// Lost or outdated surfaces recover on the next configure; log once per burst.
		if a.renderErrs == 1 {
			a.logger.Warn("render frame failed", "error", err)
		}
		return
	}
	a.renderErrs = 0
}

func (a *App) resize(width, height int) {
	a.renderer.Resize(width, height)
	if height > 0 {
		a.camera.SetAspect(float32(width) / float32(height))
	}
}

// Run drives the window loop until it closes.
func (a *App) Run() error {
	return a.engine.Run()
}

// Step advances the session by one frame.
func (a *App) Step(dt float32) {
	a.engine.Step(dt)
}

// HUD returns the current overlay state.
func (a *App) HUD() hud.Snapshot {
	return hud.Build(a.machine.Snapshot(), a.catalog, a.scene, a.loader)
}

// Machine returns the view state machine.
func (a *App) Machine() view_state.Machine {
	return a.machine
}

// Scene returns the room scene.
func (a *App) Scene() scene.Scene {
	return a.scene
}

// Catalog returns the POI catalog.
func (a *App) Catalog() *poi.Catalog {
	return a.catalog
}

// Renderer returns the frame renderer.
func (a *App) Renderer() renderer.Renderer {
	return a.renderer
}

// Close releases the session. Safe to call once.
func (a *App) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Debug("watcher close", "error", err)
		}
	}
	if a.releaseSync != nil {
		a.releaseSync()
	}
	a.machine.Close()
	a.renderer.Close()
	a.loader.Close()
	if a.window != nil && a.window.IsRunning() {
		_ = a.window.Close()
	}
}
