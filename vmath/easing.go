package vmath

import "math"

// TwoPi is one full revolution in radians
const TwoPi = 2 * math.Pi

// Anomaly maps normalized orbital progress p in [0,1) to an angle in [0, 2π)
// E(p) = 2π * p^c / (p^c + (1-p)^c)
// c = 1 is uniform angular speed; larger c slows the body near p=0 and p=1 and speeds it up near p=0.5
// c must be > 0; callers validate at construction
func Anomaly(p, curvature float64) float64 {
	if curvature == 1 {
		return TwoPi * p
	}
	pc := math.Pow(p, curvature)
	qc := math.Pow(1-p, curvature)
	return TwoPi * pc / (pc + qc)
}
