package orbit

import (
	"fmt"

	"github.com/lixenwraith/orrery/vmath"
)

// RingPolyline samples the geometric ellipse of a body at uniform angles
// Returns segments+1 points; the last is a copy of the first so the loop closes exactly
// Points are in the body frame: offsets applied, plane height 0, no parent translation
// Easing is not applied; the ring shows the path, not the time-warped traversal
// Any non-finite point fails the whole ring with ErrNonFinite
func RingPolyline(cfg Config, segments int) ([]vmath.Vec3F, error) {
	if segments < 1 {
		return nil, &ConfigError{ID: cfg.ID, Field: "segments", Value: segments, Reason: "must be >= 1"}
	}

	step := vmath.TwoPi / float64(segments)
	points := make([]vmath.Vec3F, segments+1)
	for i := 0; i < segments; i++ {
		points[i] = localPoint(cfg, float64(i)*step)
		if !vmath.V3FIsFinite(points[i]) {
			return nil, fmt.Errorf("%w: body %q ring point %d: %v", ErrNonFinite, cfg.ID, i, points[i])
		}
	}
	points[segments] = points[0]

	return points, nil
}

// localPoint places angle theta on the body's ellipse relative to its centre frame
func localPoint(cfg Config, theta float64) vmath.Vec3F {
	return vmath.EllipsePoint(theta, cfg.RadiusFromSun, cfg.WidthScale, cfg.HeightScale, cfg.XOffset, cfg.YOffset, 0)
}
