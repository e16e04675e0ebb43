package simulation

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/rs/xid"
	"github.com/sarchlab/zonesim/coupling"
	"github.com/sarchlab/zonesim/instrumentation/hooking"
	"github.com/sarchlab/zonesim/pid"
	"github.com/sarchlab/zonesim/timing"
	"github.com/sarchlab/zonesim/zone"
)

// Defaults used by MakeBuilder.
const (
	DefaultSetpoint           = 75.0
	DefaultNumZones           = 2
	DefaultInitialTemperature = 20.0
	DefaultAmbient            = 20.0
	DefaultDuration           = 10 * time.Second
)

// DefaultGains are the controller gains used by MakeBuilder.
var DefaultGains = pid.Gains{Kp: 2.0, Ki: 0.5, Kd: 1.0}

// Configuration errors returned by Build.
var (
	ErrNoZones          = errors.New("simulation: at least one zone is required")
	ErrInvalidAlpha     = errors.New("simulation: filter alpha must be within [0, 1]")
	ErrNegativeDuration = errors.New("simulation: duration must not be negative")
)

// NoiseFactory creates the sensor noise source of the zone at index.
type NoiseFactory func(seed uint64, index int) zone.NoiseSource

// Builder can be used to build a simulation.
type Builder struct {
	setpoint    float64
	gains       pid.Gains
	numZones    int
	initialTemp float64
	ambient     float64
	alpha       float64
	period      time.Duration
	duration    time.Duration
	seed        uint64

	coupling coupling.Model
	noise    NoiseFactory
	clock    timing.Clock
	logger   *slog.Logger
}

// MakeBuilder creates a builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		setpoint:    DefaultSetpoint,
		gains:       DefaultGains,
		numZones:    DefaultNumZones,
		initialTemp: DefaultInitialTemperature,
		ambient:     DefaultAmbient,
		alpha:       zone.DefaultAlpha,
		period:      timing.DefaultPeriod,
		duration:    DefaultDuration,
		coupling:    coupling.NewDiffusive(),
		noise:       zone.NewNoiseSource,
		clock:       timing.WallClock{},
	}
}

// WithSetpoint sets the target temperature of every zone.
func (b Builder) WithSetpoint(setpoint float64) Builder {
	b.setpoint = setpoint
	return b
}

// WithGains sets the PID gains of every zone.
func (b Builder) WithGains(gains pid.Gains) Builder {
	b.gains = gains
	return b
}

// WithNumZones sets the number of zones.
func (b Builder) WithNumZones(n int) Builder {
	b.numZones = n
	return b
}

// WithInitialTemperature sets the starting temperature of every zone.
func (b Builder) WithInitialTemperature(t float64) Builder {
	b.initialTemp = t
	return b
}

// WithAmbient sets the ambient temperature that zones cool toward.
func (b Builder) WithAmbient(t float64) Builder {
	b.ambient = t
	return b
}

// WithAlpha sets the sensor filter smoothing factor.
func (b Builder) WithAlpha(alpha float64) Builder {
	b.alpha = alpha
	return b
}

// WithPeriod sets the nominal tick period.
func (b Builder) WithPeriod(period time.Duration) Builder {
	b.period = period
	return b
}

// WithDuration sets how long Run lasts in wall-clock time.
func (b Builder) WithDuration(d time.Duration) Builder {
	b.duration = d
	return b
}

// WithSeed sets the sensor noise seed. Zero picks a random seed.
func (b Builder) WithSeed(seed uint64) Builder {
	b.seed = seed
	return b
}

// WithCouplingModel replaces the diffusive coupling model.
func (b Builder) WithCouplingModel(m coupling.Model) Builder {
	b.coupling = m
	return b
}

// WithNoiseFactory replaces how zone noise sources are created.
func (b Builder) WithNoiseFactory(f NoiseFactory) Builder {
	b.noise = f
	return b
}

// WithClock sets the clock used to measure step lengths.
func (b Builder) WithClock(c timing.Clock) Builder {
	b.clock = c
	return b
}

// WithLogger sets the logger for lifecycle messages.
func (b Builder) WithLogger(l *slog.Logger) Builder {
	b.logger = l
	return b
}

func (b Builder) validate() error {
	if b.numZones <= 0 {
		return fmt.Errorf("%w: got %d", ErrNoZones, b.numZones)
	}

	if !(b.alpha >= 0 && b.alpha <= 1) {
		return fmt.Errorf("%w: got %g", ErrInvalidAlpha, b.alpha)
	}

	if b.period <= 0 {
		return fmt.Errorf("%w: got %s", timing.ErrZeroPeriod, b.period)
	}

	if b.duration < 0 {
		return fmt.Errorf("%w: got %s", ErrNegativeDuration, b.duration)
	}

	return nil
}

// Build creates the simulation and its zones.
func (b Builder) Build() (*Simulation, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	seed := b.seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Simulation{
		HookableBase: hooking.NewHookableBase(),
		coupling:     b.coupling,
		clock:        b.clock,
	}

	s.config = Config{
		RunID:              xid.New().String(),
		Setpoint:           b.setpoint,
		Gains:              b.gains,
		NumZones:           b.numZones,
		InitialTemperature: b.initialTemp,
		Ambient:            b.ambient,
		Alpha:              b.alpha,
		Period:             b.period,
		Duration:           b.duration,
		Seed:               seed,
	}
	s.logger = logger.With("run", s.config.RunID)

	s.zones = make([]*zone.Zone, b.numZones)
	for i := range s.zones {
		s.zones[i] = zone.New(i, b.gains, b.initialTemp, b.noise(seed, i))
	}

	return s, nil
}
