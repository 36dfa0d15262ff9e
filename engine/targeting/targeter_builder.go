package targeting

import "log/slog"

// TargeterBuilderOption is a functional option for configuring a Targeter.
type TargeterBuilderOption func(*targeterImpl)

// WithLogger sets the logger used for diagnostics.
//
// Parameters:
//   - logger: the logger, nil keeps the default
//
// Returns:
//   - TargeterBuilderOption: functional option to set the logger
func WithLogger(logger *slog.Logger) TargeterBuilderOption {
	return func(t *targeterImpl) {
		if logger != nil {
			t.logger = logger
		}
	}
}
