package starfield

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// ErrInvalidConfig is wrapped by every star field validation failure
var ErrInvalidConfig = errors.New("invalid star field configuration")

// Config defines the particle population and the recycling volume
type Config struct {
	Count              int
	HalfExtent         float64
	ProximityThreshold float64
	FallRate           float64
	LowerBound         float64
	UpperBound         float64
	Seed               uint64
}

// DefaultConfig returns the parameter package defaults
func DefaultConfig() Config {
	return Config{
		Count:              parameter.StarCount,
		HalfExtent:         parameter.StarHalfExtent,
		ProximityThreshold: parameter.StarProximityThreshold,
		FallRate:           parameter.StarFallRate,
		LowerBound:         parameter.StarLowerBound,
		UpperBound:         parameter.StarUpperBound,
		Seed:               parameter.StarSeed,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Count < 0:
		return fmt.Errorf("%w: count=%d must be >= 0", ErrInvalidConfig, c.Count)
	case !vmath.IsFinite(c.HalfExtent) || c.HalfExtent <= 0:
		return fmt.Errorf("%w: half_extent=%v must be finite and > 0", ErrInvalidConfig, c.HalfExtent)
	case !vmath.IsFinite(c.ProximityThreshold) || c.ProximityThreshold < 0:
		return fmt.Errorf("%w: proximity_threshold=%v must be finite and >= 0", ErrInvalidConfig, c.ProximityThreshold)
	case !vmath.IsFinite(c.FallRate) || c.FallRate < 0:
		return fmt.Errorf("%w: fall_rate=%v must be finite and >= 0", ErrInvalidConfig, c.FallRate)
	case !vmath.IsFinite(c.LowerBound) || !vmath.IsFinite(c.UpperBound) || c.LowerBound >= c.UpperBound:
		return fmt.Errorf("%w: lower_bound=%v must be below upper_bound=%v", ErrInvalidConfig, c.LowerBound, c.UpperBound)
	}
	return nil
}

// Field is a fixed-size star population recycled along the vertical axis
// Particles are never created or destroyed after New
type Field struct {
	cfg         Config
	thresholdSq float64
	stars       []vmath.Vec3F
}

// StepStats reports the work done by one Step
type StepStats struct {
	Touched  int // stars within the proximity threshold that fell
	Recycled int // of those, stars wrapped to the upper bound
}

// New places Count stars uniformly in the cube [-HalfExtent, HalfExtent]^3
// Layout depends only on Seed
func New(cfg Config) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := vmath.NewFastRand(cfg.Seed)
	stars := make([]vmath.Vec3F, cfg.Count)
	for i := range stars {
		stars[i] = vmath.Vec3F{
			X: rng.Range(-cfg.HalfExtent, cfg.HalfExtent),
			Y: rng.Range(-cfg.HalfExtent, cfg.HalfExtent),
			Z: rng.Range(-cfg.HalfExtent, cfg.HalfExtent),
		}
	}

	return &Field{
		cfg:         cfg,
		thresholdSq: cfg.ProximityThreshold * cfg.ProximityThreshold,
		stars:       stars,
	}, nil
}

// NewWithStars builds a field from explicit positions, for replay and tests
// The slice is copied; cfg.Count is overwritten with len(stars)
func NewWithStars(cfg Config, stars []vmath.Vec3F) (*Field, error) {
	cfg.Count = len(stars)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	own := make([]vmath.Vec3F, len(stars))
	copy(own, stars)
	return &Field{
		cfg:         cfg,
		thresholdSq: cfg.ProximityThreshold * cfg.ProximityThreshold,
		stars:       own,
	}, nil
}

// Step lowers every star strictly closer than ProximityThreshold to the viewpoint by FallRate
// A star whose height drops below LowerBound is moved to UpperBound
// Stars beyond the threshold are not touched
func (f *Field) Step(viewpoint vmath.Vec3F) StepStats {
	var stats StepStats
	for i := range f.stars {
		s := &f.stars[i]
		if vmath.V3FDistSq(*s, viewpoint) >= f.thresholdSq {
			continue
		}
		stats.Touched++
		s.Y -= f.cfg.FallRate
		if s.Y < f.cfg.LowerBound {
			s.Y = f.cfg.UpperBound
			stats.Recycled++
		}
	}
	return stats
}

// Positions returns a copy of all star positions
func (f *Field) Positions() []vmath.Vec3F {
	out := make([]vmath.Vec3F, len(f.stars))
	copy(out, f.stars)
	return out
}

func (f *Field) Len() int       { return len(f.stars) }
func (f *Field) Config() Config { return f.cfg }
