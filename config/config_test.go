package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-room/engine/poi"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oxy-room.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cat, err := cfg.Catalog()
	require.NoError(t, err)
	shield, ok := cat.Get("detail_2")
	require.True(t, ok)
	assert.Equal(t, "Shield", shield.Name)
	assert.True(t, cfg.Player.UnlockResetsLock)
	assert.False(t, cfg.Player.ClampToRoomBounds)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[player]
clamp_to_room_bounds = true
walk_speed = 20.0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.True(t, cfg.Player.ClampToRoomBounds)
	assert.Equal(t, float32(20), cfg.Player.WalkSpeed)
	assert.Equal(t, float32(10), cfg.Player.Damping)
	assert.Len(t, cfg.Pois, 1)
}

func TestLoad_PoisReplaceCatalog(t *testing.T) {
	path := writeConfig(t, `
[[poi]]
id = "lamp"
name = "Lamp"
position = [1.0, 0.5, -2.0]
obj = "/details/lamp.obj"
mtl = "/details/lamp.mtl"
camera_target = [1.0, 1.0, -2.0]
camera_offset = [0.0, 0.0, 3.0]

[[poi]]
id = "vase"
name = "Vase"
position = [0.0, 0.0, 0.0]
camera_target = [0.0, 1.0, 0.0]
camera_offset = [0.0, 0.0, 2.0]
scale = [2.0, 2.0, 2.0]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	cat, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	assert.False(t, cat.Contains("detail_2"))

	lamp, _ := cat.Get("lamp")
	assert.Equal(t, mgl32.Vec3{1, 0.5, -2}, lamp.Position)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, lamp.Scale)
	vase, _ := cat.Get("vase")
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, vase.Scale)
}

func TestLoad_InvalidVector(t *testing.T) {
	path := writeConfig(t, `
[[poi]]
id = "lamp"
position = [1.0, 0.5]
camera_target = [1.0, 1.0, -2.0]
camera_offset = [0.0, 0.0, 3.0]
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidVector)
}

func TestLoad_DuplicateID(t *testing.T) {
	entry := `
[[poi]]
id = "lamp"
position = [0.0, 0.0, 0.0]
camera_target = [0.0, 0.0, 0.0]
camera_offset = [0.0, 0.0, 1.0]
`
	_, err := Load(writeConfig(t, entry+entry))
	assert.ErrorIs(t, err, poi.ErrDuplicateID)
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(writeConfig(t, "[player]\nteleport = true\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Room.HitboxRadius = 0
	cfg.Camera.Easing = "bounce"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
	assert.Contains(t, err.Error(), "room.hitbox_radius")
	assert.Contains(t, err.Error(), "bounce")
}

func TestValidate_FovDegrees(t *testing.T) {
	cfg := Default()
	assert.InDelta(t, 1.3089969, cfg.Camera.FovRadians(), 1e-6)

	cfg.Camera.Fov = 180
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera.fov")

	cfg.Camera.Fov = 0
	assert.ErrorContains(t, cfg.Validate(), "camera.fov must be positive")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "oxy-room.example.toml"))
	require.NoError(t, err)
	assert.True(t, cfg.Assets.Watch)

	cat, err := cfg.Catalog()
	require.NoError(t, err)
	assert.True(t, cat.Contains("detail_2"))
}
