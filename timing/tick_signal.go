// Package timing drives the simulation in wall-clock time. A Timer produces
// ticks into a TickSignal and the control loop consumes them.
package timing

import (
	"sync"
)

// TickState describes the slot of a TickSignal.
type TickState int

// The states a TickSignal moves through.
const (
	// Idle means no tick has been produced since the signal was created.
	Idle TickState = iota
	// TickPending means a tick waits to be consumed.
	TickPending
	// Consumed means the latest tick has been taken by the consumer.
	Consumed
	// Stopped means the signal has shut down. It is terminal.
	Stopped
)

func (s TickState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case TickPending:
		return "TickPending"
	case Consumed:
		return "Consumed"
	case Stopped:
		return "Stopped"
	}

	return "Unknown"
}

// SignalStats counts what happened on a TickSignal.
type SignalStats struct {
	Produced  uint64
	Consumed  uint64
	Coalesced uint64
}

// A TickSignal is a single-slot mailbox between one producer and one
// consumer. The slot is a flag, not a counter: a tick produced while another
// is still pending is coalesced into it and counted as dropped.
type TickSignal struct {
	lock sync.Mutex
	cond *sync.Cond

	pending  bool
	stopped  bool
	consumed bool
	stats    SignalStats
}

// NewTickSignal creates an idle TickSignal.
func NewTickSignal() *TickSignal {
	s := &TickSignal{}
	s.cond = sync.NewCond(&s.lock)

	return s
}

// Signal marks a tick as pending and wakes the consumer. It returns false if
// the tick was coalesced into an already pending one or the signal has
// stopped.
func (s *TickSignal) Signal() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		return false
	}

	s.stats.Produced++

	if s.pending {
		s.stats.Coalesced++
		return false
	}

	s.pending = true
	s.cond.Signal()

	return true
}

// Wait blocks until a tick is pending or the signal stops, and clears the
// pending tick. It reports whether the signal has stopped. The wake caused by
// Stop also counts as a tick, so the consumer gets one last step.
func (s *TickSignal) Wait() (stopped bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for !s.pending && !s.stopped {
		s.cond.Wait()
	}

	if s.pending {
		s.pending = false
		s.consumed = true
		s.stats.Consumed++
	}

	return s.stopped
}

// Stop shuts the signal down and force-wakes the consumer. Calling Stop more
// than once has no further effect.
func (s *TickSignal) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		return
	}

	s.stopped = true
	s.pending = true
	s.cond.Broadcast()
}

// State returns the current state of the slot.
func (s *TickSignal) State() TickState {
	s.lock.Lock()
	defer s.lock.Unlock()

	switch {
	case s.stopped:
		return Stopped
	case s.pending:
		return TickPending
	case s.consumed:
		return Consumed
	}

	return Idle
}

// Stats returns the tick counters.
func (s *TickSignal) Stats() SignalStats {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.stats
}
