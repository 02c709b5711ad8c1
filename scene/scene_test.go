package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/orbit"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

func TestDefaultSceneBuilds(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)
	require.Len(t, f.Bodies, 9)

	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	sim, err := Build(f, clock, nil)
	require.NoError(t, err)

	ids := sim.BodyIDs()
	assert.Len(t, ids, 9)
	assert.Equal(t, 5000, len(sim.StarPositions()))

	moon, ok := f.Lookup("moon")
	require.True(t, ok)
	assert.Equal(t, "earth", moon.Parent)
	assert.Equal(t, "#888888", moon.Color)

	saturn, ok := f.Lookup("saturn")
	require.True(t, ok)
	require.NotNil(t, saturn.Band)
	assert.Equal(t, 7.0, saturn.Band.Radius)

	for i := 0; i < 100; i++ {
		clock.Advance(parameter.FrameUpdateInterval)
		require.NoError(t, sim.Advance(vmath.Vec3F{Z: parameter.CameraDistance}))
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	f, err := Load(strings.NewReader(`
bodies:
  - id: a
    radius_from_sun: 4
    width_scale: 1
    height_scale: 1
    period: 2
    curvature: 1
`))
	require.NoError(t, err)

	assert.Equal(t, parameter.DefaultGlobalSpeed, f.Speed)
	assert.Equal(t, parameter.DefaultRingSegments, f.RingSegments)
	assert.Equal(t, parameter.StarCount, f.StarField.Count)

	configs, err := f.BodyConfigs()
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, parameter.DefaultRingSegments, configs[0].Segments)
	assert.Equal(t, 1.0, configs[0].Curvature)
}

func TestCurvatureDefault(t *testing.T) {
	f, err := Load(strings.NewReader(`
bodies:
  - id: uniform
    radius_from_sun: 4
    width_scale: 1
    height_scale: 1
    period: 2
  - id: eased
    radius_from_sun: 9
    width_scale: 1
    height_scale: 1
    period: 2
    curvature: 3
`))
	require.NoError(t, err)
	configs, err := f.BodyConfigs()
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, parameter.DefaultCurvature, configs[0].Curvature)
	assert.Equal(t, 3.0, configs[1].Curvature)

	// Zero is an authoring mistake, not an omission
	f, err = Load(strings.NewReader("bodies:\n  - {id: flat, radius_from_sun: 4, width_scale: 1, height_scale: 1, period: 2, curvature: 0}\n"))
	require.NoError(t, err)
	_, err = Build(f, engine.NewMockTimeProvider(time.Unix(0, 0)), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, orbit.ErrInvalidConfig))
}

func TestLoadEmptyDocument(t *testing.T) {
	f, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Bodies)
	assert.Equal(t, parameter.DefaultGlobalSpeed, f.Speed)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(strings.NewReader("speed: 1\ngravity: 9.8\n"))
	require.Error(t, err)

	_, err = Load(strings.NewReader("bodies:\n  - id: a\n    mass: 3\n"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("speed: 2.5\nplane_y: -4\n"), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2.5, f.Speed)
	assert.Equal(t, -4.0, f.EngineConfig().PlaneY)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBodyConfigsOrdersParentsFirst(t *testing.T) {
	f := &File{
		RingSegments: 16,
		Bodies: []Body{
			{ID: "moonlet", Parent: "moon"},
			{ID: "moon", Parent: "planet", Segments: 8},
			{ID: "planet"},
			{ID: "other"},
		},
	}
	configs, err := f.BodyConfigs()
	require.NoError(t, err)

	var order []string
	for _, c := range configs {
		order = append(order, c.ID)
	}
	assert.Equal(t, []string{"planet", "moon", "moonlet", "other"}, order)
	assert.Equal(t, 8, configs[1].Segments)
	assert.Equal(t, 16, configs[0].Segments)
}

func TestBodyConfigsRejectsStructuralErrors(t *testing.T) {
	tests := []struct {
		name   string
		bodies []Body
		want   string
	}{
		{"duplicate", []Body{{ID: "a"}, {ID: "a"}}, "duplicate"},
		{"unknown parent", []Body{{ID: "a", Parent: "ghost"}}, "unknown parent"},
		{"cycle", []Body{{ID: "a", Parent: "b"}, {ID: "b", Parent: "a"}}, "cycle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &File{Bodies: tt.bodies}
			_, err := f.BodyConfigs()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScene))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuildSurfacesBodyValidation(t *testing.T) {
	f, err := Load(strings.NewReader(`
bodies:
  - id: broken
    radius_from_sun: -1
    width_scale: 1
    height_scale: 1
    period: 0
    curvature: 1
`))
	require.NoError(t, err)

	_, err = Build(f, engine.NewMockTimeProvider(time.Unix(0, 0)), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, orbit.ErrInvalidConfig))
}

func TestBuildRejectsBadStarField(t *testing.T) {
	f, err := Load(strings.NewReader("star_field:\n  lower_bound: 10\n  upper_bound: -10\n"))
	require.NoError(t, err)

	_, err = Build(f, engine.NewMockTimeProvider(time.Unix(0, 0)), nil)
	assert.Error(t, err)
}
