package parameter

// Orbiting Body Defaults
const (
	// DefaultSpinStep is the self-rotation increment per tick in radians
	// Cosmetic only; independent of orbital progress
	DefaultSpinStep = 0.01

	// DefaultRingSegments is the reference ring resolution when a body does not set one
	DefaultRingSegments = 128

	// DefaultCurvature yields uniform angular speed
	DefaultCurvature = 1.0
)
