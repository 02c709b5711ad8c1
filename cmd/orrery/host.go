package main

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/stream"
	"github.com/lixenwraith/orrery/telemetry"
)

// chimeBaseFreq is the pitch of the first body's orbit-completion chime; later bodies step up
const chimeBaseFreq = 440.0

// host owns the frame loop; only it calls Advance
type host struct {
	screen   tcell.Screen
	sim      *engine.Simulation
	clock    *engine.PausableClock
	cam      *render.Camera
	renderer *render.Renderer
	log      *zap.Logger

	// Optional collaborators; nil when disabled
	drone   *audio.Drone
	hub     *stream.Hub
	metrics *telemetry.Exporter

	fps       int
	showRings bool
	faulted   int
	lastTick  uint64 // tick of the previous frame's snapshot
}

// handleKey applies one key press and reports whether the host should quit
func (h *host) handleKey(ev *tcell.EventKey) bool {
	return h.applyKey(ev.Key(), ev.Rune())
}

func (h *host) applyKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		h.cam.Rotate(-parameter.CameraRotateStep, 0)
	case tcell.KeyRight:
		h.cam.Rotate(parameter.CameraRotateStep, 0)
	case tcell.KeyUp:
		h.cam.Rotate(0, parameter.CameraRotateStep)
	case tcell.KeyDown:
		h.cam.Rotate(0, -parameter.CameraRotateStep)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return true
		case '+', '=':
			h.cam.Zoom(1 / parameter.CameraZoomFactor)
		case '-', '_':
			h.cam.Zoom(parameter.CameraZoomFactor)
		case ' ':
			paused := h.clock.Toggle()
			if h.drone != nil {
				h.drone.SetPaused(paused)
			}
			h.log.Info("pause toggled", zap.Bool("paused", paused))
		case '[':
			if h.drone != nil {
				h.drone.AdjustVolume(-parameter.AudioVolumeStep)
			}
		case ']':
			if h.drone != nil {
				h.drone.AdjustVolume(parameter.AudioVolumeStep)
			}
		case 'r':
			h.showRings = !h.showRings
		}
	}
	return false
}

// frame advances one tick unless paused, fans the snapshot out and draws it
func (h *host) frame() {
	start := time.Now()

	if !h.clock.IsPaused() {
		// Faulted bodies are logged by the simulation; anything else is unexpected
		err := h.sim.Advance(h.cam.Eye())
		var de *engine.DomainError
		if err != nil && !errors.As(err, &de) {
			h.log.Error("advance failed", zap.Error(err))
		}
	}

	snap := h.sim.Snapshot()
	// A paused frame redraws the previous snapshot; its resets already chimed
	fresh := snap.Tick != h.lastTick
	h.lastTick = snap.Tick

	h.faulted = 0
	for i, b := range snap.Bodies {
		if b.Faulted {
			h.faulted++
		}
		if fresh && b.Reset && h.drone != nil {
			_ = h.drone.Chime(chimeBaseFreq * (1 + float64(i)/8))
		}
	}
	if h.hub != nil {
		h.hub.Publish(snap)
	}

	hud := render.HUD{
		Paused:   h.clock.IsPaused(),
		Rings:    h.showRings,
		FPS:      h.fps,
		Faulted:  h.faulted,
		Distance: h.cam.Distance,
	}
	if h.drone != nil {
		hud.Audio = true
		hud.Volume = h.drone.Volume()
	}
	if h.hub != nil {
		hud.Clients = h.hub.Clients()
	}
	h.renderer.Draw(snap, h.cam, hud)

	if h.metrics != nil {
		h.metrics.ObserveFrame(time.Since(start))
	}
}

// loop runs frames at interval and applies input until quit or ctx is done
func (h *host) loop(ctx context.Context, events <-chan tcell.Event, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.frame()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if h.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				h.screen.Sync()
			}
		case <-ticker.C:
			h.frame()
		}
	}
}

// pollEvents forwards screen events until the screen is finalised
func pollEvents(ctx context.Context, screen tcell.Screen, events chan<- tcell.Event) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}
