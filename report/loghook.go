package report

import (
	"context"
	"log/slog"

	"github.com/sarchlab/zonesim/instrumentation/hooking"
	"github.com/sarchlab/zonesim/logging"
	"github.com/sarchlab/zonesim/simulation"
)

// A LogHook writes every tick to a structured logger. Zone readings are
// logged at debug level and the PID term breakdown at trace level.
type LogHook struct {
	logger *slog.Logger
}

// NewLogHook creates a LogHook.
func NewLogHook(logger *slog.Logger) *LogHook {
	return &LogHook{logger: logger}
}

// Func implements hooking.Hook.
func (h *LogHook) Func(ctx hooking.HookCtx) {
	if ctx.Pos != simulation.HookPosTick {
		return
	}

	bg := context.Background()
	if !h.logger.Enabled(bg, slog.LevelDebug) {
		return
	}

	snap := ctx.Item.(simulation.Snapshot)
	sim, _ := ctx.Domain.(*simulation.Simulation)
	trace := sim != nil && h.logger.Enabled(bg, logging.LevelTrace)

	for _, z := range snap.Zones {
		h.logger.Debug("zone",
			"run", snap.RunID,
			"tick", snap.Tick,
			"zone", z.Index,
			"temp", z.TrueTemperature,
			"sensed", z.SensedTemperature,
			"heat", z.HeatFraction,
			"elapsed", snap.ElapsedSeconds,
			"dt", snap.DeltaSeconds,
		)

		if !trace {
			continue
		}

		c := sim.Zone(z.Index).Controller()
		terms := c.LastTerms()
		h.logger.Log(bg, logging.LevelTrace, "pid",
			"tick", snap.Tick,
			"zone", z.Index,
			"p", terms.P,
			"i", terms.I,
			"d", terms.D,
			"integral", c.Integral(),
		)
	}
}
