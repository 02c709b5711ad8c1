package vmath

import "math"

// Ellipse utilities for orbital path geometry
// Paths lie in the XZ plane at a fixed height; the semi-axes scale with sqrt(radius), not radius

// EllipseSemiAxes returns the X and Z semi-axis lengths for a radius and per-axis scale
// sqrt compresses outer orbits so the whole system fits on screen
func EllipseSemiAxes(radius, widthScale, heightScale float64) (ax, az float64) {
	r := math.Sqrt(radius)
	return widthScale * r, heightScale * r
}

// EllipsePoint returns the point at angle theta on an ellipse
// x = widthScale * sqrt(radius) * cos(theta) + xOffset
// z = heightScale * sqrt(radius) * sin(theta) + zOffset
// y is the reference plane height and is passed through unchanged
func EllipsePoint(theta, radius, widthScale, heightScale, xOffset, zOffset, y float64) Vec3F {
	ax, az := EllipseSemiAxes(radius, widthScale, heightScale)
	sin, cos := math.Sincos(theta)
	return Vec3F{
		X: ax*cos + xOffset,
		Y: y,
		Z: az*sin + zOffset,
	}
}
