// Package cmd provides the command-line interface for zonesim.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sarchlab/zonesim/logging"
	"github.com/sarchlab/zonesim/report"
	"github.com/sarchlab/zonesim/simulation"
	"github.com/sarchlab/zonesim/timing"
	"github.com/sarchlab/zonesim/zone"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

type options struct {
	numZones    int
	ambient     float64
	initialTemp float64
	alpha       float64
	period      time.Duration
	seed        uint64
	logLevel    string
	quiet       bool
	summary     bool
}

func newRootCmd() *cobra.Command {
	o := &options{}

	c := &cobra.Command{
		Use:   "zonesim [setpoint [kp [ki [kd [duration]]]]]",
		Short: "Simulate PID-controlled thermal zones on a wall-clock tick.",
		Long: `zonesim heats a set of coupled thermal zones toward a setpoint with ` +
			`one PID controller per zone and renders every tick as bar graphs. ` +
			`Positional arguments are the setpoint, the P, I, and D gains, and ` +
			`the duration in whole seconds; omitted ones use their defaults ` +
			`(75 2 0.5 1 10). Put "--" before negative values.`,
		Args:         cobra.MaximumNArgs(5),
		SilenceUsage: true,
		RunE:         o.run,
	}

	f := c.Flags()
	f.IntVar(&o.numZones, "zones", simulation.DefaultNumZones, "number of zones")
	f.Float64Var(&o.ambient, "ambient", simulation.DefaultAmbient,
		"ambient temperature the zones cool toward")
	f.Float64Var(&o.initialTemp, "initial-temp",
		simulation.DefaultInitialTemperature, "starting temperature of every zone")
	f.Float64Var(&o.alpha, "alpha", zone.DefaultAlpha,
		"sensor filter weight of a new sample, within [0, 1]")
	f.DurationVar(&o.period, "period", timing.DefaultPeriod, "tick period")
	f.Uint64Var(&o.seed, "seed", 0, "sensor noise seed, 0 for a random seed")
	f.StringVar(&o.logLevel, "log-level", "info",
		"log level: error, warn, info, debug, or trace")
	f.BoolVar(&o.quiet, "quiet", false, "do not render the per-tick bar graphs")
	f.BoolVar(&o.summary, "summary", true, "print a run summary at the end")

	return c
}

func (o *options) run(c *cobra.Command, args []string) error {
	p, err := parseArgs(args)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(o.logLevel, c.ErrOrStderr())

	sim, err := simulation.MakeBuilder().
		WithSetpoint(p.setpoint).
		WithGains(p.gains).
		WithDuration(p.duration).
		WithNumZones(o.numZones).
		WithAmbient(o.ambient).
		WithInitialTemperature(o.initialTemp).
		WithAlpha(o.alpha).
		WithPeriod(o.period).
		WithSeed(o.seed).
		WithLogger(logger).
		Build()
	if err != nil {
		return err
	}

	out := c.OutOrStdout()
	if err := report.WriteBanner(out, sim.Config()); err != nil {
		return err
	}

	console := report.NewConsoleSink(out)
	atexit.Register(func() { _ = console.Flush() })
	if !o.quiet {
		sim.AcceptHook(console)
	}

	sim.AcceptHook(report.NewLogHook(logger))

	summary := report.NewSummary()
	sim.AcceptHook(summary)

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := sim.Run(ctx); err != nil {
		return err
	}

	if o.quiet {
		fmt.Fprintln(out, "\nSimulation complete.")
	}

	if o.summary {
		if err := summary.Write(out); err != nil {
			return err
		}
	}

	return console.Flush()
}

// Execute runs the root command and exits the process. The exit code is 0 on
// success and 1 on any error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
