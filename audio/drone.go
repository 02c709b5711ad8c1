package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/orrery/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// ErrNotStarted is returned by operations that need an initialised output
var ErrNotStarted = errors.New("audio not started")

// Drone plays a low ambient chord under the scene with a master volume
// Orbit completions can be marked with a short chime
type Drone struct {
	mu      sync.Mutex
	out     Output
	mixer   *beep.Mixer
	master  *effects.Volume
	pause   *beep.Ctrl
	level   float64
	started bool
}

// NewDrone creates a drone that will play into out; nil uses the system speaker
func NewDrone(out Output) *Drone {
	if out == nil {
		out = Speaker{}
	}
	d := &Drone{
		out:   out,
		mixer: &beep.Mixer{},
		level: parameter.AudioDefaultVolume,
	}
	d.pause = &beep.Ctrl{Streamer: d.mixer}
	d.master = &effects.Volume{Streamer: d.pause, Base: parameter.AudioVolumeBase}
	d.applyLevel()
	return d
}

// Start opens the output and begins the chord; calling it again is a no-op
func (d *Drone) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started {
		return nil
	}

	root, err := generators.SineTone(sampleRate, parameter.AudioDroneBaseFreq)
	if err != nil {
		return fmt.Errorf("root tone: %w", err)
	}
	fifth, err := generators.SineTone(sampleRate, parameter.AudioDroneFifthFreq)
	if err != nil {
		return fmt.Errorf("fifth tone: %w", err)
	}

	if err := d.out.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	d.mixer.Add(
		&effects.Gain{Streamer: root, Gain: -0.6},
		&effects.Gain{Streamer: fifth, Gain: -0.8},
	)
	d.out.Play(d.master)
	d.started = true
	return nil
}

// Chime layers a short high tone over the drone
func (d *Drone) Chime(freq float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return ErrNotStarted
	}
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return fmt.Errorf("chime tone: %w", err)
	}

	d.out.Lock()
	d.mixer.Add(beep.Take(sampleRate.N(80*time.Millisecond), &effects.Gain{Streamer: tone, Gain: -0.85}))
	d.out.Unlock()
	return nil
}

// Voices returns the number of streamers in the mix, chord tones included
func (d *Drone) Voices() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.out.Lock()
	defer d.out.Unlock()
	return d.mixer.Len()
}

// SetVolume sets the master level clamped to [0,1] and returns it
func (d *Drone) SetVolume(v float64) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.level = max(0, min(1, v))
	d.out.Lock()
	d.applyLevel()
	d.out.Unlock()
	return d.level
}

// AdjustVolume adds delta to the master level
func (d *Drone) AdjustVolume(delta float64) float64 {
	return d.SetVolume(d.Volume() + delta)
}

// Volume returns the master level in [0,1]
func (d *Drone) Volume() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.level
}

// SetPaused mutes everything without losing oscillator phase
func (d *Drone) SetPaused(paused bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.out.Lock()
	d.pause.Paused = paused
	d.out.Unlock()
}

// Close stops playback and releases the output
func (d *Drone) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		return
	}
	d.out.Lock()
	d.mixer.Clear()
	d.out.Unlock()
	d.out.Close()
	d.started = false
}

// applyLevel maps level 1 to unity gain and 0 to silence; caller holds the output lock
func (d *Drone) applyLevel() {
	d.master.Silent = d.level <= 0
	d.master.Volume = parameter.AudioSilenceFloor * (1 - d.level)
}
