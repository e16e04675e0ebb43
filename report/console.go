// Package report turns simulation hooks into human-readable output: a console
// bar-graph renderer, a structured log hook, and an end-of-run summary.
package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/sarchlab/zonesim/instrumentation/hooking"
	"github.com/sarchlab/zonesim/simulation"
)

// Bar widths of the console renderer.
const (
	// MaxTempBar caps the temperature bar so the readout fits a 100 column
	// terminal.
	MaxTempBar = 80

	// FullHeatBar is the length of the heat bar at full duty.
	FullHeatBar = 100
)

// WriteBanner prints the run parameters.
func WriteBanner(w io.Writer, cfg simulation.Config) error {
	_, err := fmt.Fprintf(w,
		"Starting simulation:\n"+
			"  Setpoint: %g Degrees C\n"+
			"  PID: P=%g, I=%g, D=%g\n"+
			"  Duration: %g sec\n"+
			"  Zones: %d\n"+
			"  Run: %s\n\n",
		cfg.Setpoint,
		cfg.Gains.Kp, cfg.Gains.Ki, cfg.Gains.Kd,
		cfg.Duration.Seconds(),
		cfg.NumZones,
		cfg.RunID,
	)

	return err
}

// A ConsoleSink renders every tick as a pair of bars per zone.
type ConsoleSink struct {
	lock sync.Mutex
	out  *bufio.Writer
	err  error
}

// NewConsoleSink creates a sink that writes to w through a buffer. Call Flush
// before the process exits.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{out: bufio.NewWriter(w)}
}

// Func implements hooking.Hook.
func (c *ConsoleSink) Func(ctx hooking.HookCtx) {
	c.lock.Lock()
	defer c.lock.Unlock()

	switch ctx.Pos {
	case simulation.HookPosTick:
		c.renderTick(ctx.Item.(simulation.Snapshot))
	case simulation.HookPosStop:
		c.write("\nSimulation complete.\n")
		c.flush()
	}
}

func (c *ConsoleSink) renderTick(snap simulation.Snapshot) {
	for _, z := range snap.Zones {
		c.write(RenderZone(z, snap.Setpoint))
	}

	c.flush()
}

// RenderZone formats the temperature and heat bars of one zone reading.
func RenderZone(z simulation.ZoneReading, setpoint float64) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Zone %d Temp: %s> %.2f [%.4f sec]\n",
		z.Index,
		strings.Repeat("=", TempBarLength(z.TrueTemperature, setpoint)),
		z.TrueTemperature,
		z.ElapsedSeconds,
	)
	fmt.Fprintf(&sb, "Zone %d Heat: %s> %.2f [%.4f sec]\n\n",
		z.Index,
		strings.Repeat("-", HeatBarLength(z.HeatFraction)),
		z.HeatFraction,
		z.ElapsedSeconds,
	)

	return sb.String()
}

// TempBarLength is the temperature as a percentage of the setpoint, capped at
// MaxTempBar. NaN or non-positive ratios render as an empty bar.
func TempBarLength(temp, setpoint float64) int {
	ratio := temp / setpoint * 100
	if math.IsNaN(ratio) || ratio <= 0 {
		return 0
	}

	return int(math.Min(ratio, MaxTempBar))
}

// HeatBarLength is the heat fraction as a percentage.
func HeatBarLength(fraction float64) int {
	if math.IsNaN(fraction) || fraction <= 0 {
		return 0
	}

	return int(math.Min(fraction, 1) * FullHeatBar)
}

func (c *ConsoleSink) write(s string) {
	if c.err != nil {
		return
	}

	_, c.err = c.out.WriteString(s)
}

func (c *ConsoleSink) flush() {
	if c.err != nil {
		return
	}

	c.err = c.out.Flush()
}

// Flush writes out any buffered output and returns the first write error
// seen by the sink.
func (c *ConsoleSink) Flush() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.flush()

	return c.err
}
