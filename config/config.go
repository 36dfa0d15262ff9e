// Package config loads the viewer configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-room/common"
	"github.com/Carmen-Shannon/oxy-room/engine/poi"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidVector is returned when a vector field does not have exactly 3 components.
var ErrInvalidVector = errors.New("config: vector must have 3 components")

// Config is the full viewer configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Window WindowConfig `toml:"window"`
	Assets AssetsConfig `toml:"assets"`
	Room   RoomConfig   `toml:"room"`
	Camera CameraConfig `toml:"camera"`
	Player PlayerConfig `toml:"player"`
	Pois   []PoiConfig  `toml:"poi"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// WindowConfig describes the GLFW window and surface.
type WindowConfig struct {
	Title      string  `toml:"title"`
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	VSync      bool    `toml:"vsync"`
	MSAA       bool    `toml:"msaa"`
	FrameLimit float64 `toml:"frame_limit"`
	Software   bool    `toml:"software"`
	Profiler   bool    `toml:"profiler"`
}

// AssetsConfig locates model files and configures the loader.
type AssetsConfig struct {
	Root       string `toml:"root"`
	Workers    int    `toml:"workers"`
	Watch      bool   `toml:"watch"`
	DebounceMS int    `toml:"debounce_ms"`
}

// RoomConfig sizes the room shell.
type RoomConfig struct {
	Width        float32 `toml:"width"`
	Depth        float32 `toml:"depth"`
	Height       float32 `toml:"height"`
	HitboxRadius float32 `toml:"hitbox_radius"`
}

// CameraConfig holds projection and transition settings. Fov is the vertical
// field of view in degrees.
type CameraConfig struct {
	Fov            float32 `toml:"fov"`
	Near           float32 `toml:"near"`
	Far            float32 `toml:"far"`
	AnimationSpeed float32 `toml:"animation_speed"`
	Easing         string  `toml:"easing"`
}

// FovRadians returns the vertical field of view in radians.
func (c CameraConfig) FovRadians() float32 {
	return mgl32.DegToRad(c.Fov)
}

// PlayerConfig holds free-roam movement settings.
type PlayerConfig struct {
	EyeHeight         float32 `toml:"eye_height"`
	WalkSpeed         float32 `toml:"walk_speed"`
	Damping           float32 `toml:"damping"`
	BoundsMargin      float32 `toml:"bounds_margin"`
	LookSensitivity   float32 `toml:"look_sensitivity"`
	ClampToRoomBounds bool    `toml:"clamp_to_room_bounds"`
	UnlockResetsLock  bool    `toml:"unlock_resets_lock"`
}

// PoiConfig is one [[poi]] table. Vectors are 3-element arrays.
type PoiConfig struct {
	ID           string    `toml:"id"`
	Name         string    `toml:"name"`
	Position     []float32 `toml:"position"`
	Obj          string    `toml:"obj"`
	Mtl          string    `toml:"mtl"`
	CameraTarget []float32 `toml:"camera_target"`
	CameraOffset []float32 `toml:"camera_offset"`
	Scale        []float32 `toml:"scale,omitempty"`
	Rotation     []float32 `toml:"rotation,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	pois := poi.DefaultPois()
	pc := make([]PoiConfig, len(pois))
	for i, p := range pois {
		pc[i] = fromPoi(p)
	}
	return Config{
		Log: LogConfig{Level: "info"},
		Window: WindowConfig{
			Title:  "oxy-room",
			Width:  1280,
			Height: 720,
			VSync:  true,
			MSAA:   true,
		},
		Assets: AssetsConfig{
			Root:       "assets",
			Workers:    2,
			DebounceMS: 250,
		},
		Room: RoomConfig{
			Width:        common.RoomWidth,
			Depth:        common.RoomDepth,
			Height:       common.RoomHeight,
			HitboxRadius: common.PoiHitboxRadius,
		},
		Camera: CameraConfig{
			Fov:            75,
			Near:           0.1,
			Far:            100,
			AnimationSpeed: common.CameraAnimationSpeed,
			Easing:         "smoothstep",
		},
		Player: PlayerConfig{
			EyeHeight:        common.PlayerHeight,
			WalkSpeed:        common.WalkSpeed,
			Damping:          common.WalkDamping,
			BoundsMargin:     common.RoomBoundsMargin,
			LookSensitivity:  0.002,
			UnlockResetsLock: true,
		},
		Pois: pc,
	}
}

// Load overlays the TOML file at path onto Default and validates the result.
// An empty path returns the defaults. Unknown keys are rejected.
//
// Parameters:
//   - path: the config file path, may be empty
//
// Returns:
//   - Config: the merged configuration
//   - error: read, decode or validation error
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	defaults := cfg.Pois
	cfg.Pois = nil
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("decode %s: %s", path, strict.String())
		}
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(cfg.Pois) == 0 {
		cfg.Pois = defaults
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field, joined.
//
// Returns:
//   - error: nil when the configuration is usable
func (c Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Assets.Workers < 0 {
		errs = append(errs, fmt.Errorf("assets: workers must not be negative"))
	}
	positive := map[string]float32{
		"room.width":         c.Room.Width,
		"room.depth":         c.Room.Depth,
		"room.height":        c.Room.Height,
		"room.hitbox_radius": c.Room.HitboxRadius,
		"camera.fov":         c.Camera.Fov,
		"camera.near":        c.Camera.Near,
		"camera.far":         c.Camera.Far,
		"camera.speed":       c.Camera.AnimationSpeed,
		"player.eye_height":  c.Player.EyeHeight,
		"player.walk_speed":  c.Player.WalkSpeed,
		"player.damping":     c.Player.Damping,
	}
	for _, name := range sortedKeys(positive) {
		if positive[name] <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, positive[name]))
		}
	}
	if c.Camera.Fov >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov must be below 180 degrees, got %v", c.Camera.Fov))
	}
	if c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("camera: near %v must be less than far %v", c.Camera.Near, c.Camera.Far))
	}
	switch strings.ToLower(c.Camera.Easing) {
	case "", "smoothstep", "linear":
	default:
		errs = append(errs, fmt.Errorf("camera: unknown easing %q", c.Camera.Easing))
	}
	if _, err := c.Catalog(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Catalog converts the [[poi]] tables into a validated catalog.
//
// Returns:
//   - *poi.Catalog: the catalog
//   - error: ErrInvalidVector, poi.ErrEmptyID or poi.ErrDuplicateID wrapped with the entry
func (c Config) Catalog() (*poi.Catalog, error) {
	pois := make([]poi.Poi, 0, len(c.Pois))
	for i, pc := range c.Pois {
		p, err := pc.toPoi()
		if err != nil {
			return nil, fmt.Errorf("poi %d %q: %w", i, pc.ID, err)
		}
		pois = append(pois, p)
	}
	return poi.NewCatalog(pois...)
}

// SlogLevel returns the configured level, falling back to Info.
func (c Config) SlogLevel() slog.Level {
	lvl, err := ParseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ParseLevel parses debug, info, warn or error (case-insensitive).
//
// Parameters:
//   - s: the level name
//
// Returns:
//   - slog.Level: the parsed level
//   - error: error if the name is unknown
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log: unknown level %q", s)
	}
	return lvl, nil
}

func (pc PoiConfig) toPoi() (poi.Poi, error) {
	position, err := vec3("position", pc.Position, nil)
	if err != nil {
		return poi.Poi{}, err
	}
	target, err := vec3("camera_target", pc.CameraTarget, nil)
	if err != nil {
		return poi.Poi{}, err
	}
	offset, err := vec3("camera_offset", pc.CameraOffset, nil)
	if err != nil {
		return poi.Poi{}, err
	}
	scale, err := vec3("scale", pc.Scale, &mgl32.Vec3{1, 1, 1})
	if err != nil {
		return poi.Poi{}, err
	}
	rotation, err := vec3("rotation", pc.Rotation, &mgl32.Vec3{})
	if err != nil {
		return poi.Poi{}, err
	}
	return poi.Poi{
		ID:                   pc.ID,
		Name:                 pc.Name,
		Position:             position,
		ObjURL:               pc.Obj,
		MtlURL:               pc.Mtl,
		CameraTarget:         target,
		CameraPositionOffset: offset,
		Scale:                scale,
		Rotation:             rotation,
	}, nil
}

// vec3 converts a 3-element slice. An empty slice yields fallback when one is given.
func vec3(field string, v []float32, fallback *mgl32.Vec3) (mgl32.Vec3, error) {
	if len(v) == 0 && fallback != nil {
		return *fallback, nil
	}
	if len(v) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%s has %d components: %w", field, len(v), ErrInvalidVector)
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}

func fromPoi(p poi.Poi) PoiConfig {
	return PoiConfig{
		ID:           p.ID,
		Name:         p.Name,
		Position:     p.Position[:],
		Obj:          p.ObjURL,
		Mtl:          p.MtlURL,
		CameraTarget: p.CameraTarget[:],
		CameraOffset: p.CameraPositionOffset[:],
		Scale:        p.Scale[:],
		Rotation:     p.Rotation[:],
	}
}

func sortedKeys(m map[string]float32) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
