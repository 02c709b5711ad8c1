package orbit

import (
	"errors"

	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// Config is the static description of one orbiting body
type Config struct {
	ID string

	// RadiusFromSun scales the ellipse by its square root, not linearly
	RadiusFromSun float64

	// WidthScale and HeightScale are the X and Z semi-axis multipliers
	WidthScale  float64
	HeightScale float64

	// XOffset and YOffset translate the ellipse centre along X and Z
	// For satellites the offsets are relative to the parent's position
	XOffset float64
	YOffset float64

	// Period is the progress span of one orbit
	Period float64

	// Curvature controls angular-speed non-uniformity; 1 is uniform
	Curvature float64

	// SpinStep is the self-rotation per tick; 0 selects parameter.DefaultSpinStep
	SpinStep float64

	// Parent names the body this one orbits; empty orbits the plane origin
	Parent string

	// Segments is the reference ring resolution; 0 selects parameter.DefaultRingSegments
	Segments int
}

// Validate reports every invalid field as a joined set of *ConfigError
func (c Config) Validate() error {
	var errs []error
	reject := func(field string, value any, reason string) {
		errs = append(errs, &ConfigError{ID: c.ID, Field: field, Value: value, Reason: reason})
	}

	if c.ID == "" {
		reject("id", c.ID, "must not be empty")
	}

	finite := []struct {
		field string
		value float64
	}{
		{"radius_from_sun", c.RadiusFromSun},
		{"width_scale", c.WidthScale},
		{"height_scale", c.HeightScale},
		{"x_offset", c.XOffset},
		{"y_offset", c.YOffset},
		{"period", c.Period},
		{"curvature", c.Curvature},
		{"spin_step", c.SpinStep},
	}
	for _, f := range finite {
		if !vmath.IsFinite(f.value) {
			reject(f.field, f.value, "must be finite")
		}
	}

	if c.Period <= 0 {
		reject("period", c.Period, "must be > 0")
	}
	if c.Curvature <= 0 {
		reject("curvature", c.Curvature, "must be > 0")
	}
	if c.RadiusFromSun < 0 {
		reject("radius_from_sun", c.RadiusFromSun, "must be >= 0")
	}
	if c.WidthScale <= 0 {
		reject("width_scale", c.WidthScale, "must be > 0")
	}
	if c.HeightScale <= 0 {
		reject("height_scale", c.HeightScale, "must be > 0")
	}
	if c.Segments < 0 {
		reject("segments", c.Segments, "must be >= 0")
	}
	if c.Parent != "" && c.Parent == c.ID {
		reject("parent", c.Parent, "body cannot orbit itself")
	}

	return errors.Join(errs...)
}

// withDefaults resolves zero-valued optional fields
func (c Config) withDefaults() Config {
	if c.SpinStep == 0 {
		c.SpinStep = parameter.DefaultSpinStep
	}
	if c.Segments == 0 {
		c.Segments = parameter.DefaultRingSegments
	}
	return c
}
