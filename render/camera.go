package render

import (
	"math"

	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// Camera orbits a target on a sphere
// Azimuth 0 places the eye on +Z looking toward -Z
type Camera struct {
	Target    vmath.Vec3F
	Azimuth   float64
	Elevation float64
	Distance  float64
}

// NewCamera returns the start view looking at target
func NewCamera(target vmath.Vec3F) *Camera {
	return &Camera{
		Target:    target,
		Elevation: parameter.CameraElevation,
		Distance:  parameter.CameraDistance,
	}
}

// Rotate changes azimuth and elevation; elevation stays off the poles
func (c *Camera) Rotate(dAzimuth, dElevation float64) {
	c.Azimuth = math.Mod(c.Azimuth+dAzimuth, vmath.TwoPi)
	c.Elevation = max(-parameter.CameraMaxElevation, min(parameter.CameraMaxElevation, c.Elevation+dElevation))
}

// Zoom multiplies the distance by factor within the zoom bounds
func (c *Camera) Zoom(factor float64) {
	c.Distance = max(parameter.CameraMinDistance, min(parameter.CameraMaxDistance, c.Distance*factor))
}

// Eye returns the camera position; this is the viewpoint the star field reacts to
func (c *Camera) Eye() vmath.Vec3F {
	sinEl, cosEl := math.Sincos(c.Elevation)
	sinAz, cosAz := math.Sincos(c.Azimuth)
	return vmath.V3FAdd(c.Target, vmath.Vec3F{
		X: c.Distance * cosEl * sinAz,
		Y: c.Distance * sinEl,
		Z: c.Distance * cosEl * cosAz,
	})
}
