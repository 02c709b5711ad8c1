package orbit

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/orrery/vmath"
)

// Body is the mutable orbital state of one configured body
// Owned by a single writer; accessors return copies
type Body struct {
	cfg Config

	progress   float64   // [0, Period)
	lastSample time.Time // clock reading of the previous tick
	spin       float64   // monotonic self-rotation accumulator

	local    vmath.Vec3F // position relative to the orbit centre
	position vmath.Vec3F // local + centre, as of the last tick

	ring []vmath.Vec3F // body-frame reference ring, immutable; nil when not finite
}

// Step is the outcome of one Advance
type Step struct {
	Position vmath.Vec3F
	Spin     float64
	// Reset is set when progress reached Period and was zeroed this tick
	Reset bool
}

// NewBody validates cfg and creates a body at progress 0
// now seeds the body's sample clock; center is the initial orbit centre
// Returns nil and a ConfigError on invalid configuration
// A ring with non-finite points is dropped; the body still moves and HasRing reports false
func NewBody(cfg Config, now time.Time, center vmath.Vec3F) (*Body, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	ring, err := RingPolyline(cfg, cfg.Segments)
	if err != nil && !errors.Is(err, ErrNonFinite) {
		return nil, err
	}

	b := &Body{
		cfg:        cfg,
		lastSample: now,
		ring:       ring,
	}

	b.local = localPoint(cfg, vmath.Anomaly(0, cfg.Curvature))
	b.position = vmath.V3FAdd(b.local, center)
	if !vmath.V3FIsFinite(b.position) {
		return nil, &ConfigError{ID: cfg.ID, Field: "geometry", Value: b.position, Reason: "initial position is not finite"}
	}

	return b, nil
}

// Advance moves the body by the time elapsed since its previous sample
// Progress resets to exactly 0 once progress/period reaches 1; the remainder is discarded
// and the position keeps its previous body-frame value for that tick
// A non-finite result returns ErrNonFinite and leaves the previous position in place
func (b *Body) Advance(now time.Time, speed float64, center vmath.Vec3F) (Step, error) {
	delta := now.Sub(b.lastSample).Seconds()
	b.lastSample = now
	if delta < 0 {
		// Non-monotonic clock reading; progress must not run backwards
		delta = 0
	}

	b.spin += b.cfg.SpinStep
	b.progress += delta * speed

	p := b.progress / b.cfg.Period
	if p >= 1 {
		b.progress = 0
		b.position = vmath.V3FAdd(b.local, center)
		return Step{Position: b.position, Spin: b.spin, Reset: true}, nil
	}

	theta := vmath.Anomaly(p, b.cfg.Curvature)
	local := localPoint(b.cfg, theta)
	position := vmath.V3FAdd(local, center)
	if !vmath.V3FIsFinite(position) {
		return Step{Position: b.position, Spin: b.spin}, fmt.Errorf("%w: body %q at theta=%v: %v", ErrNonFinite, b.cfg.ID, theta, position)
	}

	b.local = local
	b.position = position
	return Step{Position: position, Spin: b.spin}, nil
}

func (b *Body) ID() string            { return b.cfg.ID }
func (b *Body) Parent() string        { return b.cfg.Parent }
func (b *Body) Config() Config        { return b.cfg }
func (b *Body) Progress() float64     { return b.progress }
func (b *Body) LastSample() time.Time { return b.lastSample }
func (b *Body) Spin() float64         { return b.spin }
func (b *Body) Position() vmath.Vec3F { return b.position }
func (b *Body) Local() vmath.Vec3F    { return b.local }

// HasRing reports whether the reference ring was finite at construction
func (b *Body) HasRing() bool { return b.ring != nil }

// Ring returns a copy of the body-frame reference ring, nil when HasRing is false
func (b *Body) Ring() []vmath.Vec3F {
	if b.ring == nil {
		return nil
	}
	out := make([]vmath.Vec3F, len(b.ring))
	copy(out, b.ring)
	return out
}
