package orbit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is matched by every ConfigError
	ErrInvalidConfig = errors.New("invalid orbital body configuration")

	// ErrNonFinite reports a computed position containing NaN or ±Inf
	ErrNonFinite = errors.New("non-finite orbital position")
)

// ConfigError describes one rejected field of a body configuration
// Values are never clamped; authoring mistakes surface here
type ConfigError struct {
	ID     string
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("body %q: %s=%v: %s", e.ID, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
