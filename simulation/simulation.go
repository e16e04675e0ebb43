// Package simulation runs a set of PID-controlled thermal zones on a
// wall-clock tick.
//
// Two goroutines cooperate during Run. A timer produces ticks into a
// single-slot signal and the control loop consumes them. The control loop is
// the only goroutine that touches zone state, and it invokes the tick hooks.
package simulation

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/sarchlab/zonesim/coupling"
	"github.com/sarchlab/zonesim/instrumentation/hooking"
	"github.com/sarchlab/zonesim/timing"
	"github.com/sarchlab/zonesim/zone"
	"golang.org/x/sync/errgroup"
)

// Hook positions raised by a Simulation.
var (
	// HookPosStart fires before the first tick. The item is a Config.
	HookPosStart = &hooking.HookPos{Name: "SimulationStart"}

	// HookPosTick fires after every step. The item is a Snapshot.
	HookPosTick = &hooking.HookPos{Name: "Tick"}

	// HookPosStop fires after both goroutines have exited. The item is a
	// Result.
	HookPosStop = &hooking.HookPos{Name: "SimulationStop"}
)

// ErrAlreadyRunning is returned when Run is called on a running simulation.
var ErrAlreadyRunning = errors.New("simulation: already running")

// A Simulation owns the zones and drives them tick by tick.
type Simulation struct {
	*hooking.HookableBase

	config   Config
	zones    []*zone.Zone
	coupling coupling.Model
	clock    timing.Clock
	logger   *slog.Logger

	running atomic.Bool
	ticks   atomic.Uint64
	start   time.Time
	last    Snapshot
}

// ID returns the run ID.
func (s *Simulation) ID() string {
	return s.config.RunID
}

// Config returns the resolved configuration.
func (s *Simulation) Config() Config {
	return s.config
}

// NumZones returns the number of zones.
func (s *Simulation) NumZones() int {
	return len(s.zones)
}

// Zone returns the zone at index i. Zones must not be inspected while Run is
// in progress.
func (s *Simulation) Zone(i int) *zone.Zone {
	return s.zones[i]
}

// Running reports whether Run is in progress.
func (s *Simulation) Running() bool {
	return s.running.Load()
}

// Ticks returns the number of steps computed so far. It is safe to call while
// Run is in progress.
func (s *Simulation) Ticks() uint64 {
	return s.ticks.Load()
}

// Step advances every zone by one tick of length delta and invokes the tick
// hooks. elapsed is the time since the start of the run.
//
// Every zone senses and computes its control output first. Coupling is then
// computed from the temperatures before any zone is heated, so the update
// does not depend on zone order.
func (s *Simulation) Step(elapsed, delta time.Duration) Snapshot {
	dt := delta.Seconds()

	for _, z := range s.zones {
		z.ReadSensor(s.config.Alpha)
		z.ComputeControl(s.config.Setpoint, dt)
	}

	terms := s.coupling.Terms(s.temperatures())
	for i, z := range s.zones {
		z.ApplyHeat(s.config.Ambient, terms[i])
	}

	snap := s.snapshot(s.ticks.Add(1), elapsed, delta)
	s.last = snap

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosTick,
		Item:   snap,
	})

	return snap
}

func (s *Simulation) temperatures() []float64 {
	temps := make([]float64, len(s.zones))
	for i, z := range s.zones {
		temps[i] = z.Temperature()
	}

	return temps
}

func (s *Simulation) snapshot(tick uint64, elapsed, delta time.Duration) Snapshot {
	snap := Snapshot{
		RunID:          s.config.RunID,
		Tick:           tick,
		Setpoint:       s.config.Setpoint,
		ElapsedSeconds: elapsed.Seconds(),
		DeltaSeconds:   delta.Seconds(),
		Zones:          make([]ZoneReading, len(s.zones)),
	}

	for i, z := range s.zones {
		snap.Zones[i] = ZoneReading{
			Index:             z.Index(),
			TrueTemperature:   z.Temperature(),
			SensedTemperature: z.SensedTemperature(),
			CommandedOutput:   z.CommandedOutput(),
			HeatFraction:      z.HeatFraction(),
			ElapsedSeconds:    snap.ElapsedSeconds,
		}
	}

	return snap
}

// Run drives the simulation for the configured duration, or until ctx is
// cancelled, and returns after the timer and the control loop have both
// exited.
func (s *Simulation) Run(ctx context.Context) (Result, error) {
	if !s.running.CompareAndSwap(false, true) {
		return Result{}, ErrAlreadyRunning
	}
	defer s.running.Store(false)

	signal := timing.NewTickSignal()
	timer, err := timing.NewTimer(s.config.Period, signal)
	if err != nil {
		return Result{}, err
	}

	tracker := timing.NewDeltaTracker(s.clock)
	s.start = tracker.Start()

	s.logger.Info("simulation started",
		"zones", len(s.zones),
		"setpoint", s.config.Setpoint,
		"period", s.config.Period,
		"duration", s.config.Duration,
		"seed", s.config.Seed,
	)
	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosStart,
		Item:   s.config,
	})

	runCtx, cancel := context.WithTimeout(ctx, s.config.Duration)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return timer.Run(gctx, &s.running)
	})
	g.Go(func() error {
		return s.controlLoop(signal, tracker)
	})

	<-runCtx.Done()
	s.running.Store(false)
	signal.Stop()

	err = g.Wait()

	stats := signal.Stats()
	result := Result{
		RunID:       s.config.RunID,
		Ticks:       s.ticks.Load(),
		Produced:    stats.Produced,
		Consumed:    stats.Consumed,
		Coalesced:   stats.Coalesced,
		Elapsed:     s.clock.Now().Sub(s.start),
		Interrupted: ctx.Err() != nil,
		Final:       s.last,
	}

	s.logger.Info("simulation finished",
		"ticks", result.Ticks,
		"coalesced", result.Coalesced,
		"elapsed", result.Elapsed,
		"interrupted", result.Interrupted,
	)
	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosStop,
		Item:   result,
	})

	return result, err
}

// controlLoop consumes ticks until the signal stops. The wake that reports
// the stop still computes one step, so the last snapshot lands at the end of
// the run.
func (s *Simulation) controlLoop(
	signal *timing.TickSignal,
	tracker *timing.DeltaTracker,
) error {
	for {
		stopped := signal.Wait()

		elapsed, delta := tracker.Next()
		s.Step(elapsed, delta)

		if stopped {
			return nil
		}
	}
}
