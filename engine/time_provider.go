package engine

import "time"

// Clock is the monotonic time source sampled once per tick
// Readings must be non-decreasing
type Clock interface {
	Now() time.Time
}

// TimeProvider reads the system clock with its monotonic component
type TimeProvider struct{}

// NewTimeProvider creates a real-time clock
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}
