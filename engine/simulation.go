package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/orrery/orbit"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/starfield"
	"github.com/lixenwraith/orrery/status"
	"github.com/lixenwraith/orrery/vmath"
)

// Telemetry keys written by Simulation
const (
	StatTicks         = "sim.ticks"
	StatResets        = "sim.resets"
	StatFaults        = "sim.faults"
	StatBodies        = "sim.bodies"
	StatStarsTouched  = "stars.touched"
	StatStarsRecycled = "stars.recycled"
)

// Config holds simulation-wide constants
type Config struct {
	// Speed converts elapsed seconds into progress units
	Speed float64
	// PlaneY is the height of the orbital plane for top-level bodies
	PlaneY float64
	Stars  starfield.Config
}

// DefaultConfig returns the parameter package defaults
func DefaultConfig() Config {
	return Config{
		Speed:  parameter.DefaultGlobalSpeed,
		PlaneY: parameter.DefaultPlaneY,
		Stars:  starfield.DefaultConfig(),
	}
}

// Simulation owns every body and star and advances them one tick at a time
// Single writer: Advance, AdvanceTo and AddBody must not be called concurrently
// Published snapshots are never mutated after publication
type Simulation struct {
	cfg   Config
	clock Clock
	log   *zap.Logger

	bodies  []*orbit.Body // parents precede their satellites
	index   map[string]int
	faulted map[string]bool
	stars   *starfield.Field

	tick     uint64
	snapshot *Snapshot

	statusReg    *status.Registry
	statTicks    *atomic.Int64
	statResets   *atomic.Int64
	statFaults   *atomic.Int64
	statTouched  *atomic.Int64
	statRecycled *atomic.Int64
	statBodies   *status.AtomicFloat
}

// New creates an empty simulation with its star field
// nil log disables logging
func New(cfg Config, clock Clock, log *zap.Logger) (*Simulation, error) {
	if clock == nil {
		return nil, errors.New("simulation requires a clock")
	}
	if !vmath.IsFinite(cfg.Speed) || cfg.Speed < 0 {
		return nil, fmt.Errorf("speed=%v must be finite and >= 0", cfg.Speed)
	}
	if !vmath.IsFinite(cfg.PlaneY) {
		return nil, fmt.Errorf("plane_y=%v must be finite", cfg.PlaneY)
	}
	stars, err := starfield.New(cfg.Stars)
	if err != nil {
		return nil, fmt.Errorf("star field: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	reg := status.NewRegistry()
	s := &Simulation{
		cfg:          cfg,
		clock:        clock,
		log:          log,
		index:        make(map[string]int),
		faulted:      make(map[string]bool),
		stars:        stars,
		statusReg:    reg,
		statTicks:    reg.Counters.Get(StatTicks),
		statResets:   reg.Counters.Get(StatResets),
		statFaults:   reg.Counters.Get(StatFaults),
		statTouched:  reg.Counters.Get(StatStarsTouched),
		statRecycled: reg.Counters.Get(StatStarsRecycled),
		statBodies:   reg.Gauges.Get(StatBodies),
	}
	s.publish(clock.Now(), vmath.Vec3F{}, nil)

	log.Debug("simulation created",
		zap.Float64("speed", cfg.Speed),
		zap.Float64("plane_y", cfg.PlaneY),
		zap.Int("stars", stars.Len()),
	)
	return s, nil
}

// AddBody validates cfg and adds the body at progress 0
// A parent must be added before its satellites; on error no body is added
func (s *Simulation) AddBody(cfg orbit.Config) error {
	if _, dup := s.index[cfg.ID]; dup && cfg.ID != "" {
		return &orbit.ConfigError{ID: cfg.ID, Field: "id", Value: cfg.ID, Reason: "duplicate body id"}
	}

	center := s.planeOrigin()
	if cfg.Parent != "" && cfg.Parent != cfg.ID {
		i, ok := s.index[cfg.Parent]
		if !ok {
			return &orbit.ConfigError{ID: cfg.ID, Field: "parent", Value: cfg.Parent, Reason: "parent must be added first"}
		}
		center = s.bodies[i].Position()
	}

	body, err := orbit.NewBody(cfg, s.clock.Now(), center)
	if err != nil {
		return err
	}

	s.index[cfg.ID] = len(s.bodies)
	s.bodies = append(s.bodies, body)
	s.statBodies.Store(float64(len(s.bodies)))

	// Republish so queries see the new body before the next tick
	prev := s.snapshot
	s.publish(prev.Time, prev.Viewpoint, nil)

	if !body.HasRing() {
		s.log.Warn("body ring not finite, omitted", zap.String("id", cfg.ID))
	}
	s.log.Debug("body added",
		zap.String("id", cfg.ID),
		zap.String("parent", cfg.Parent),
		zap.Float64("period", cfg.Period),
		zap.Float64("curvature", cfg.Curvature),
	)
	return nil
}

// Advance runs one tick at the clock's current reading
func (s *Simulation) Advance(viewpoint vmath.Vec3F) error {
	return s.AdvanceTo(s.clock.Now(), viewpoint)
}

// AdvanceTo runs one tick at an explicit time
// Every body and the star field see the same now; the snapshot is published once, at the end
// Returns the joined DomainErrors of bodies that produced non-finite positions; they keep their last position
func (s *Simulation) AdvanceTo(now time.Time, viewpoint vmath.Vec3F) error {
	s.tick++
	s.statTicks.Add(1)

	states := make([]BodyState, len(s.bodies))
	var errs []error

	for i, b := range s.bodies {
		center := s.centerOf(b)
		step, err := b.Advance(now, s.cfg.Speed, center)
		if step.Reset {
			s.statResets.Add(1)
		}

		id := b.ID()
		if err != nil {
			s.statFaults.Add(1)
			errs = append(errs, &DomainError{ID: id, Tick: s.tick, Position: step.Position, Err: err})
			if !s.faulted[id] {
				s.faulted[id] = true
				s.log.Warn("body position not finite",
					zap.String("id", id),
					zap.Uint64("tick", s.tick),
					zap.Error(err),
				)
			}
		} else if s.faulted[id] {
			delete(s.faulted, id)
			s.log.Info("body recovered", zap.String("id", id), zap.Uint64("tick", s.tick))
		}

		states[i] = BodyState{
			ID:       id,
			Parent:   b.Parent(),
			Position: step.Position,
			Spin:     step.Spin,
			Progress: b.Progress(),
			Center:   center,
			Reset:    step.Reset,
			Faulted:  err != nil,
		}
	}

	stats := s.stars.Step(viewpoint)
	s.statTouched.Add(int64(stats.Touched))
	s.statRecycled.Add(int64(stats.Recycled))

	s.publish(now, viewpoint, states)
	return errors.Join(errs...)
}

// publish builds a new snapshot; nil states are rebuilt from body state without advancing
func (s *Simulation) publish(now time.Time, viewpoint vmath.Vec3F, states []BodyState) {
	if states == nil {
		states = make([]BodyState, len(s.bodies))
		for i, b := range s.bodies {
			states[i] = BodyState{
				ID:       b.ID(),
				Parent:   b.Parent(),
				Position: b.Position(),
				Spin:     b.Spin(),
				Progress: b.Progress(),
				Center:   s.centerOf(b),
				Faulted:  s.faulted[b.ID()],
			}
		}
	}
	s.snapshot = &Snapshot{
		Tick:      s.tick,
		Time:      now,
		Viewpoint: viewpoint,
		Bodies:    states,
		Stars:     s.stars.Positions(),
	}
}

func (s *Simulation) planeOrigin() vmath.Vec3F {
	return vmath.Vec3F{Y: s.cfg.PlaneY}
}

// centerOf returns the parent's current position, or the plane origin
// Parents are earlier in s.bodies, so within a tick they are already advanced
func (s *Simulation) centerOf(b *orbit.Body) vmath.Vec3F {
	if p := b.Parent(); p != "" {
		return s.bodies[s.index[p]].Position()
	}
	return s.planeOrigin()
}

// Snapshot returns the latest published snapshot
func (s *Simulation) Snapshot() *Snapshot {
	return s.snapshot
}

// PositionOf returns the latest position of id
func (s *Simulation) PositionOf(id string) (vmath.Vec3F, error) {
	st, ok := s.snapshot.Body(id)
	if !ok {
		return vmath.Vec3F{}, fmt.Errorf("%w: %q", ErrUnknownBody, id)
	}
	return st.Position, nil
}

// SpinAngleOf returns the latest self-rotation angle of id
func (s *Simulation) SpinAngleOf(id string) (float64, error) {
	st, ok := s.snapshot.Body(id)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownBody, id)
	}
	return st.Spin, nil
}

// RingPolylineOf returns a copy of the static reference ring of id
// Top-level rings are in scene coordinates on the orbital plane
// Satellite rings are relative to the parent; add BodyState.Center to place them
// A body whose ring was not finite returns an empty ring and no error
func (s *Simulation) RingPolylineOf(id string) ([]vmath.Vec3F, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBody, id)
	}
	b := s.bodies[i]
	ring := b.Ring()
	if b.Parent() == "" {
		origin := s.planeOrigin()
		for j := range ring {
			ring[j] = vmath.V3FAdd(ring[j], origin)
		}
	}
	return ring, nil
}

// StarPositions returns a copy of the latest star positions
func (s *Simulation) StarPositions() []vmath.Vec3F {
	out := make([]vmath.Vec3F, len(s.snapshot.Stars))
	copy(out, s.snapshot.Stars)
	return out
}

// BodyIDs returns body ids in tick order
func (s *Simulation) BodyIDs() []string {
	ids := make([]string, len(s.bodies))
	for i, b := range s.bodies {
		ids[i] = b.ID()
	}
	return ids
}

// Tick returns the number of completed ticks
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// Status returns the telemetry registry
func (s *Simulation) Status() *status.Registry {
	return s.statusReg
}

// Config returns the simulation constants
func (s *Simulation) Config() Config {
	return s.cfg
}
