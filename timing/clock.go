package timing

import (
	"time"
)

// MinDelta is the smallest step length handed to the control loop. Shorter
// or negative elapsed times from clock jitter are raised to it.
const MinDelta = time.Millisecond

// A Clock tells the current time.
type Clock interface {
	Now() time.Time
}

// WallClock reads the system's monotonic clock.
type WallClock struct{}

// Now implements Clock.
func (WallClock) Now() time.Time {
	return time.Now()
}

// A DeltaTracker measures the actual time between consecutive steps, so that
// timer jitter is absorbed instead of accumulated.
type DeltaTracker struct {
	clock Clock
	start time.Time
	prev  time.Time
}

// NewDeltaTracker starts measuring from the clock's current time.
func NewDeltaTracker(clock Clock) *DeltaTracker {
	now := clock.Now()

	return &DeltaTracker{
		clock: clock,
		start: now,
		prev:  now,
	}
}

// Start returns the time the tracker was created.
func (d *DeltaTracker) Start() time.Time {
	return d.start
}

// Next returns the time elapsed since the start and the step length since the
// previous call, floored at MinDelta.
func (d *DeltaTracker) Next() (elapsed, delta time.Duration) {
	now := d.clock.Now()

	elapsed = now.Sub(d.start)
	delta = max(now.Sub(d.prev), MinDelta)
	d.prev = now

	return elapsed, delta
}
