package transition

import "log/slog"

// AnimatorBuilderOption is a functional option for configuring an Animator.
type AnimatorBuilderOption func(*animatorImpl)

// WithSpeed sets the progress gained per second. Non-positive values keep the default.
//
// Parameters:
//   - speed: progress per second, 1/speed is the linear duration
//
// Returns:
//   - AnimatorBuilderOption: functional option to set speed
func WithSpeed(speed float32) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.speed = speed
	}
}

// WithEasing sets the easing curve.
//
// Parameters:
//   - easing: easing function, nil keeps smooth-step
//
// Returns:
//   - AnimatorBuilderOption: functional option to set easing
func WithEasing(easing Easing) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		if easing != nil {
			a.easing = easing
		}
	}
}

// WithOnComplete sets the completion callback.
//
// Parameters:
//   - fn: called once per finished transition
//
// Returns:
//   - AnimatorBuilderOption: functional option to set the callback
func WithOnComplete(fn func()) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.onComplete = fn
	}
}

// WithLogger sets the logger used for diagnostics.
//
// Parameters:
//   - logger: the logger, nil keeps the default
//
// Returns:
//   - AnimatorBuilderOption: functional option to set the logger
func WithLogger(logger *slog.Logger) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		if logger != nil {
			a.logger = logger
		}
	}
}
