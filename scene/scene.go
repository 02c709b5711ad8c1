package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/orbit"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/starfield"
)

// ErrInvalidScene wraps structural scene problems: duplicates, unknown parents, cycles
var ErrInvalidScene = errors.New("invalid scene")

// File is the YAML scene document
type File struct {
	Speed        float64   `yaml:"speed"`
	PlaneY       float64   `yaml:"plane_y"`
	RingSegments int       `yaml:"ring_segments"`
	Sun          Sun       `yaml:"sun"`
	StarField    StarField `yaml:"star_field"`
	Bodies       []Body    `yaml:"bodies"`
}

// Sun is the static central body drawn at the plane origin
type Sun struct {
	Size  float64 `yaml:"size"`
	Color string  `yaml:"color"`
}

// StarField mirrors starfield.Config
type StarField struct {
	Count              int     `yaml:"count"`
	HalfExtent         float64 `yaml:"half_extent"`
	ProximityThreshold float64 `yaml:"proximity_threshold"`
	FallRate           float64 `yaml:"fall_rate"`
	LowerBound         float64 `yaml:"lower_bound"`
	UpperBound         float64 `yaml:"upper_bound"`
	Seed               uint64  `yaml:"seed"`
}

// Body is one orbiting body plus its appearance
// Size and Color are read by renderers only
type Body struct {
	ID            string   `yaml:"id"`
	Parent        string   `yaml:"parent,omitempty"`
	RadiusFromSun float64  `yaml:"radius_from_sun"`
	WidthScale    float64  `yaml:"width_scale"`
	HeightScale   float64  `yaml:"height_scale"`
	XOffset       float64  `yaml:"x_offset,omitempty"`
	YOffset       float64  `yaml:"y_offset,omitempty"`
	Period        float64  `yaml:"period"`
	Curvature     *float64 `yaml:"curvature,omitempty"` // nil means parameter.DefaultCurvature
	SpinStep      float64  `yaml:"spin_step,omitempty"`
	Segments      int      `yaml:"segments,omitempty"`
	Size          float64  `yaml:"size,omitempty"`
	Color         string   `yaml:"color,omitempty"`
	Band          *Band    `yaml:"band,omitempty"`
}

// Band is a flat ring drawn around a body on its orbital plane
type Band struct {
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color,omitempty"`
}

// defaults returns a File with every scalar at its parameter default
// Decoding onto it leaves absent keys at these values
func defaults() File {
	sf := starfield.DefaultConfig()
	return File{
		Speed:        parameter.DefaultGlobalSpeed,
		PlaneY:       parameter.DefaultPlaneY,
		RingSegments: parameter.DefaultRingSegments,
		Sun:          Sun{Size: 10, Color: "#ffff00"},
		StarField: StarField{
			Count:              sf.Count,
			HalfExtent:         sf.HalfExtent,
			ProximityThreshold: sf.ProximityThreshold,
			FallRate:           sf.FallRate,
			LowerBound:         sf.LowerBound,
			UpperBound:         sf.UpperBound,
			Seed:               sf.Seed,
		},
	}
}

// Load decodes a scene from r; unknown keys are rejected
func Load(r io.Reader) (*File, error) {
	f := defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &f, nil
}

// LoadFile decodes the scene at path
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// Default decodes the built-in scene
func Default() (*File, error) {
	return Load(strings.NewReader(DefaultSceneYAML))
}

// EngineConfig returns the simulation-wide constants of the scene
func (f *File) EngineConfig() engine.Config {
	return engine.Config{
		Speed:  f.Speed,
		PlaneY: f.PlaneY,
		Stars: starfield.Config{
			Count:              f.StarField.Count,
			HalfExtent:         f.StarField.HalfExtent,
			ProximityThreshold: f.StarField.ProximityThreshold,
			FallRate:           f.StarField.FallRate,
			LowerBound:         f.StarField.LowerBound,
			UpperBound:         f.StarField.UpperBound,
			Seed:               f.StarField.Seed,
		},
	}
}

// Lookup returns the body entry with id
func (f *File) Lookup(id string) (Body, bool) {
	for _, b := range f.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return Body{}, false
}

// orbitConfig maps a scene body onto the engine record, applying the scene ring resolution
func (f *File) orbitConfig(b Body) orbit.Config {
	segments := b.Segments
	if segments == 0 {
		segments = f.RingSegments
	}
	// An explicit curvature, zero included, is passed through for validation
	curvature := parameter.DefaultCurvature
	if b.Curvature != nil {
		curvature = *b.Curvature
	}
	return orbit.Config{
		ID:            b.ID,
		RadiusFromSun: b.RadiusFromSun,
		WidthScale:    b.WidthScale,
		HeightScale:   b.HeightScale,
		XOffset:       b.XOffset,
		YOffset:       b.YOffset,
		Period:        b.Period,
		Curvature:     curvature,
		SpinStep:      b.SpinStep,
		Parent:        b.Parent,
		Segments:      segments,
	}
}

// BodyConfigs returns the body records ordered so every parent precedes its satellites
// File order is kept otherwise
func (f *File) BodyConfigs() ([]orbit.Config, error) {
	byID := make(map[string]Body, len(f.Bodies))
	for _, b := range f.Bodies {
		if _, dup := byID[b.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate body id %q", ErrInvalidScene, b.ID)
		}
		byID[b.ID] = b
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(f.Bodies))
	ordered := make([]orbit.Config, 0, len(f.Bodies))

	var visit func(b Body, chain []string) error
	visit = func(b Body, chain []string) error {
		switch state[b.ID] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: parent cycle %s", ErrInvalidScene, strings.Join(append(chain, b.ID), " -> "))
		}
		state[b.ID] = visiting
		if b.Parent != "" && b.Parent != b.ID {
			parent, ok := byID[b.Parent]
			if !ok {
				return fmt.Errorf("%w: body %q has unknown parent %q", ErrInvalidScene, b.ID, b.Parent)
			}
			if err := visit(parent, append(chain, b.ID)); err != nil {
				return err
			}
		}
		state[b.ID] = done
		ordered = append(ordered, f.orbitConfig(b))
		return nil
	}

	for _, b := range f.Bodies {
		if err := visit(b, nil); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

// Build creates a simulation populated with every body of the scene
func Build(f *File, clock engine.Clock, log *zap.Logger) (*engine.Simulation, error) {
	configs, err := f.BodyConfigs()
	if err != nil {
		return nil, err
	}

	sim, err := engine.New(f.EngineConfig(), clock, log)
	if err != nil {
		return nil, fmt.Errorf("create simulation: %w", err)
	}

	for _, cfg := range configs {
		if err := sim.AddBody(cfg); err != nil {
			return nil, fmt.Errorf("add body: %w", err)
		}
	}
	return sim, nil
}
