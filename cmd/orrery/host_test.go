package main

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/telemetry"
	"github.com/lixenwraith/orrery/vmath"
)

type nullOutput struct{}

func (nullOutput) Init(beep.SampleRate, int) error { return nil }
func (nullOutput) Play(beep.Streamer)              {}
func (nullOutput) Lock()                           {}
func (nullOutput) Unlock()                         {}
func (nullOutput) Close()                          {}

func newTestHost(t *testing.T) (*host, *engine.MockTimeProvider) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	sc, err := scene.Default()
	require.NoError(t, err)

	mock := engine.NewMockTimeProvider(time.Unix(1000, 0))
	clock := engine.NewPausableClock(mock)
	sim, err := scene.Build(sc, clock, nil)
	require.NoError(t, err)
	rings, err := collectRings(sim)
	require.NoError(t, err)
	require.Len(t, rings, len(sc.Bodies))

	return &host{
		screen:    screen,
		sim:       sim,
		clock:     clock,
		cam:       render.NewCamera(vmath.Vec3F{}),
		renderer:  render.NewRenderer(screen, sc, rings),
		log:       zap.NewNop(),
		metrics:   telemetry.New(sim.Status()),
		fps:       30,
		showRings: true,
	}, mock
}

func TestKeysMoveCamera(t *testing.T) {
	h, _ := newTestHost(t)

	assert.False(t, h.applyKey(tcell.KeyRight, 0))
	assert.InDelta(t, parameter.CameraRotateStep, h.cam.Azimuth, 1e-12)

	el := h.cam.Elevation
	h.applyKey(tcell.KeyDown, 0)
	assert.InDelta(t, el-parameter.CameraRotateStep, h.cam.Elevation, 1e-12)

	d := h.cam.Distance
	h.applyKey(tcell.KeyRune, '-')
	assert.InDelta(t, d*parameter.CameraZoomFactor, h.cam.Distance, 1e-9)
	h.applyKey(tcell.KeyRune, '+')
	assert.InDelta(t, d, h.cam.Distance, 1e-9)

	h.applyKey(tcell.KeyRune, 'r')
	assert.False(t, h.showRings)
}

func TestQuitKeys(t *testing.T) {
	h, _ := newTestHost(t)
	assert.True(t, h.applyKey(tcell.KeyRune, 'q'))
	assert.True(t, h.applyKey(tcell.KeyEscape, 0))
	assert.True(t, h.applyKey(tcell.KeyCtrlC, 0))
	assert.False(t, h.applyKey(tcell.KeyRune, 'x'))
}

func TestFrameAdvancesUnlessPaused(t *testing.T) {
	h, mock := newTestHost(t)

	mock.Advance(parameter.FrameUpdateInterval)
	h.frame()
	assert.Equal(t, uint64(1), h.sim.Tick())
	before, err := h.sim.PositionOf("earth")
	require.NoError(t, err)

	h.applyKey(tcell.KeyRune, ' ')
	require.True(t, h.clock.IsPaused())
	mock.Advance(time.Second)
	h.frame()
	assert.Equal(t, uint64(1), h.sim.Tick())

	// Resuming does not replay the paused second
	h.applyKey(tcell.KeyRune, ' ')
	mock.Advance(parameter.FrameUpdateInterval)
	h.frame()
	assert.Equal(t, uint64(2), h.sim.Tick())
	after, err := h.sim.PositionOf("earth")
	require.NoError(t, err)
	assert.Less(t, vmath.V3FMag(vmath.V3FSub(before, after)), 1.0)
}

func TestVolumeKeysWithDrone(t *testing.T) {
	h, _ := newTestHost(t)

	// Without a drone the keys are inert
	assert.False(t, h.applyKey(tcell.KeyRune, ']'))

	h.drone = audio.NewDrone(nullOutput{})
	v := h.drone.Volume()
	h.applyKey(tcell.KeyRune, ']')
	assert.InDelta(t, v+parameter.AudioVolumeStep, h.drone.Volume(), 1e-12)
	h.applyKey(tcell.KeyRune, '[')
	assert.InDelta(t, v, h.drone.Volume(), 1e-12)
}

func TestPausedFramesDoNotRepeatChimes(t *testing.T) {
	h, mock := newTestHost(t)
	h.drone = audio.NewDrone(nullOutput{})
	require.NoError(t, h.drone.Start())
	chord := h.drone.Voices()

	// The moon's period is 3s, so this tick resets it
	mock.Advance(3 * time.Second)
	h.frame()
	moon, ok := h.sim.Snapshot().Body("moon")
	require.True(t, ok)
	require.True(t, moon.Reset)
	voices := h.drone.Voices()
	assert.Greater(t, voices, chord)

	h.applyKey(tcell.KeyRune, ' ')
	for i := 0; i < 30; i++ {
		mock.Advance(parameter.FrameUpdateInterval)
		h.frame()
	}
	assert.Equal(t, voices, h.drone.Voices())
}

func TestLoopStopsOnClosedEvents(t *testing.T) {
	h, _ := newTestHost(t)
	events := make(chan tcell.Event)
	close(events)

	done := make(chan struct{})
	go func() {
		h.loop(context.Background(), events, time.Hour)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.Equal(t, uint64(1), h.sim.Tick())
}

func TestLoopStopsOnCancel(t *testing.T) {
	h, _ := newTestHost(t)
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan tcell.Event)

	done := make(chan struct{})
	go func() {
		h.loop(ctx, events, time.Millisecond)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.Positive(t, h.sim.Tick())
}

func TestLoadSceneDefault(t *testing.T) {
	sc, err := loadScene("")
	require.NoError(t, err)
	assert.NotEmpty(t, sc.Bodies)

	_, err = loadScene("/nonexistent/scene.yaml")
	assert.Error(t, err)
}
