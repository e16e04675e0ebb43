package timing

import (
	"context"
	"errors"
	"time"
)

// DefaultPeriod is the nominal tick period.
const DefaultPeriod = 20 * time.Millisecond

// ErrZeroPeriod is returned when a timer is created with a non-positive
// period.
var ErrZeroPeriod = errors.New("timing: tick period must be positive")

// A RunFlag tells the timer whether to keep producing ticks. *atomic.Bool
// satisfies it.
type RunFlag interface {
	Load() bool
}

// A Timer periodically produces ticks into a TickSignal.
type Timer struct {
	period time.Duration
	signal *TickSignal
}

// NewTimer creates a timer that signals every period.
func NewTimer(period time.Duration, signal *TickSignal) (*Timer, error) {
	if period <= 0 {
		return nil, ErrZeroPeriod
	}

	return &Timer{period: period, signal: signal}, nil
}

// Period returns the nominal tick period.
func (t *Timer) Period() time.Duration {
	return t.period
}

// Run signals a tick and sleeps for one period, repeatedly, while running
// reports true. It returns when running turns false or ctx is done; a pending
// sleep is cut short by ctx.
func (t *Timer) Run(ctx context.Context, running RunFlag) error {
	sleep := time.NewTimer(t.period)
	defer sleep.Stop()

	for running.Load() {
		t.signal.Signal()

		sleep.Reset(t.period)
		select {
		case <-ctx.Done():
			return nil
		case <-sleep.C:
		}
	}

	return nil
}
