package scene

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-room/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithRoomSize overrides the room dimensions used for the shell and lights.
//
// Parameters:
//   - width: extent along X
//   - depth: extent along Z
//   - height: wall height
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRoomSize(width, depth, height float32) SceneBuilderOption {
	return func(s *scene) {
		s.width, s.depth, s.height = width, depth, height
	}
}

// WithHitboxRadius sets the radius of POI hitboxes.
//
// Parameters:
//   - radius: sphere radius
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithHitboxRadius(radius float32) SceneBuilderOption {
	return func(s *scene) {
		if radius > 0 {
			s.hitboxRadius = radius
		}
	}
}

// WithLights replaces the default room lights.
//
// Parameters:
//   - lights: the lights
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append([]light.Light{}, lights...)
	}
}

// WithProps adds static models drawn with the room shell. Their loads start at construction.
//
// Parameters:
//   - props: the props
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithProps(props ...Prop) SceneBuilderOption {
	return func(s *scene) {
		s.propDefs = append(s.propDefs, props...)
	}
}

// WithLogger sets the scene logger.
//
// Parameters:
//   - logger: the logger, nil keeps the default
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}
