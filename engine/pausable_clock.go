package engine

import (
	"sync"
	"time"
)

// PausableClock derives simulation time from a base clock minus time spent paused
// While paused, Now is frozen, so orbital progress stops without touching the simulation
type PausableClock struct {
	mu sync.Mutex

	base  Clock
	epoch time.Time // base reading at creation

	paused      bool
	pausedAt    time.Time     // base reading when the current pause began
	pausedTotal time.Duration // cumulative completed pauses
}

// NewPausableClock wraps base; nil base uses the system clock
func NewPausableClock(base Clock) *PausableClock {
	if base == nil {
		base = NewTimeProvider()
	}
	return &PausableClock{
		base:  base,
		epoch: base.Now(),
	}
}

// Now returns base time shifted back by all pause durations
func (pc *PausableClock) Now() time.Time {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	ref := pc.base.Now()
	if pc.paused {
		ref = pc.pausedAt
	}
	return pc.epoch.Add(ref.Sub(pc.epoch) - pc.pausedTotal)
}

// Pause freezes Now; no-op when already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pausedAt = pc.base.Now()
}

// Resume continues time advancement; no-op when running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.pausedTotal += pc.base.Now().Sub(pc.pausedAt)
	pc.paused = false
	pc.pausedAt = time.Time{}
}

// Toggle flips pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including an ongoing pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	total := pc.pausedTotal
	if pc.paused {
		total += pc.base.Now().Sub(pc.pausedAt)
	}
	return total
}
