package parameter

// Orbit camera for the terminal host
// Start view: camera at z=100, y=20 looking at the sun
const (
	// CameraDistance is the initial distance from the look-at target
	CameraDistance = 102.0

	// CameraMinDistance and CameraMaxDistance bound zoom
	CameraMinDistance = 10.0
	CameraMaxDistance = 600.0

	// CameraElevation is the initial pitch above the orbital plane (radians, ~11.3°)
	CameraElevation = 0.197

	// CameraMaxElevation keeps the camera off the poles to avoid a degenerate up vector
	CameraMaxElevation = 1.5

	// CameraRotateStep is the azimuth/elevation change per key press (radians)
	CameraRotateStep = 0.05

	// CameraZoomFactor is the distance multiplier per zoom key press
	CameraZoomFactor = 1.1

	// CameraFOV is the vertical field of view in radians (75°)
	CameraFOV = 1.309

	// CameraNear clips points closer than this to the eye
	CameraNear = 0.1

	// CellAspect is terminal cell height:width
	CellAspect = 2.0
)
