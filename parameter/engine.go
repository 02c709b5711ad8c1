package parameter

import "time"

// Frame Loop & Simulation Timing
const (
	// FrameUpdateInterval is the default host frame interval (~30 FPS)
	FrameUpdateInterval = 33 * time.Millisecond

	// MinFPS and MaxFPS bound the host -fps flag
	MinFPS = 1
	MaxFPS = 120

	// DefaultGlobalSpeed converts elapsed wall-clock seconds into orbital progress units
	DefaultGlobalSpeed = 1.0

	// DefaultPlaneY is the height of the orbital reference plane (central body's vertical position)
	DefaultPlaneY = 0.0
)
