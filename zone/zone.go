// Package zone models one thermal zone: a noisy filtered sensor, a PID
// controller, and a saturating heater with passive cooling.
//
// A Zone is not safe for concurrent use. The simulation owns every zone and
// mutates it only from its control loop.
package zone

import (
	"github.com/sarchlab/zonesim/pid"
)

// Physical constants of the zone model.
const (
	// DefaultAlpha is the default smoothing factor of the sensor filter.
	DefaultAlpha = 0.2

	// NoiseAmplitude bounds the additive sensor noise to
	// [-NoiseAmplitude, +NoiseAmplitude].
	NoiseAmplitude = 0.05

	// FullScaleOutput is the commanded output that maps to a 100% heater duty.
	FullScaleOutput = 100.0

	// MaxHeatPerTick is the temperature gain of one tick at full duty. It does
	// not scale with the tick length.
	MaxHeatPerTick = 0.5

	// BaseCooling is the cooling applied every tick regardless of temperature.
	BaseCooling = 0.01

	// CoolingCoefficient scales the cooling with the excess over ambient.
	CoolingCoefficient = 0.001
)

// A Zone is a single controlled thermal zone.
type Zone struct {
	index      int
	controller *pid.Controller
	noise      NoiseSource

	temperature float64
	sensed      float64
	commanded   float64
}

// New creates a zone at the given initial temperature. The sensor filter
// starts at the initial temperature too.
func New(
	index int,
	gains pid.Gains,
	initialTemp float64,
	noise NoiseSource,
) *Zone {
	return &Zone{
		index:       index,
		controller:  pid.NewController(gains),
		noise:       noise,
		temperature: initialTemp,
		sensed:      initialTemp,
	}
}

// Index returns the position of the zone in the simulation.
func (z *Zone) Index() int {
	return z.index
}

// Temperature returns the true temperature.
func (z *Zone) Temperature() float64 {
	return z.temperature
}

// SensedTemperature returns the latest filtered sensor value.
func (z *Zone) SensedTemperature() float64 {
	return z.sensed
}

// CommandedOutput returns the raw controller output of the latest control
// step.
func (z *Zone) CommandedOutput() float64 {
	return z.commanded
}

// Controller returns the zone's PID controller.
func (z *Zone) Controller() *pid.Controller {
	return z.controller
}

// ComputeControl runs the controller against the sensed temperature and
// stores the commanded output.
func (z *Zone) ComputeControl(setpoint, dt float64) float64 {
	z.commanded = z.controller.Compute(setpoint, z.sensed, dt)
	return z.commanded
}
