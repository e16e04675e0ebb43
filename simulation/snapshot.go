package simulation

import (
	"time"

	"github.com/sarchlab/zonesim/pid"
)

// ZoneReading is the state of one zone at the end of a tick.
type ZoneReading struct {
	Index             int
	TrueTemperature   float64
	SensedTemperature float64
	CommandedOutput   float64
	HeatFraction      float64
	ElapsedSeconds    float64
}

// A Snapshot is the read-only record of one tick. Its Zones slice is
// allocated per tick and never touched by the simulation afterwards, so sinks
// may keep it.
type Snapshot struct {
	RunID          string
	Tick           uint64
	Setpoint       float64
	ElapsedSeconds float64
	DeltaSeconds   float64
	Zones          []ZoneReading
}

// Config is the resolved configuration of a simulation. It is the item of the
// start hook.
type Config struct {
	RunID              string
	Setpoint           float64
	Gains              pid.Gains
	NumZones           int
	InitialTemperature float64
	Ambient            float64
	Alpha              float64
	Period             time.Duration
	Duration           time.Duration
	Seed               uint64
}

// Result summarises a finished run. It is the item of the stop hook.
type Result struct {
	RunID string

	// Ticks is the number of steps the control loop computed.
	Ticks uint64

	// Produced, Consumed, and Coalesced count timer ticks. Coalesced ticks
	// found another tick pending and were dropped.
	Produced  uint64
	Consumed  uint64
	Coalesced uint64

	Elapsed time.Duration

	// Interrupted is set when the run ended because the caller's context
	// was cancelled before the duration passed.
	Interrupted bool

	// Final is the snapshot of the last tick. It is empty if no tick ran.
	Final Snapshot
}
