package zone

import (
	"math/rand/v2"
)

// A NoiseSource produces uniformly distributed values in [0, 1).
type NoiseSource interface {
	Float64() float64
}

// NewNoiseSource creates an independent noise source for the zone at index.
// Zones created with the same seed and index draw the same noise sequence.
func NewNoiseSource(seed uint64, index int) NoiseSource {
	return rand.New(rand.NewPCG(seed, uint64(index)))
}

// ReadSensor samples the true temperature with additive noise, passes it
// through an exponential filter, and stores the filtered value as the sensed
// temperature.
//
// alpha is the weight of the new sample. 0 keeps the previous value, 1 returns
// the raw sample.
func (z *Zone) ReadSensor(alpha float64) float64 {
	raw := z.temperature + z.sampleNoise()
	z.sensed = alpha*raw + (1-alpha)*z.sensed

	return z.sensed
}

func (z *Zone) sampleNoise() float64 {
	return NoiseAmplitude * (2*z.noise.Float64() - 1)
}
