// Package coupling computes the thermal influence zones exert on each other.
package coupling

// DefaultRate is the fraction of the gap to the neighbour mean that a zone
// closes in one tick.
const DefaultRate = 0.05

// A Model computes one coupling term per zone.
type Model interface {
	// Terms returns the coupling term of each zone. temps must hold the
	// pre-tick temperature of every zone, indexed like the zones.
	Terms(temps []float64) []float64
}

// Diffusive pulls every zone toward the average of all other zones at a fixed
// rate. It is not distance weighted.
type Diffusive struct {
	Rate float64
}

// NewDiffusive creates a diffusive model with DefaultRate.
func NewDiffusive() Diffusive {
	return Diffusive{Rate: DefaultRate}
}

// Terms implements Model.
func (d Diffusive) Terms(temps []float64) []float64 {
	n := len(temps)
	terms := make([]float64, n)

	if n < 2 {
		return terms
	}

	for i, t := range temps {
		terms[i] = (neighbourMean(temps, i) - t) * d.Rate
	}

	return terms
}

func neighbourMean(temps []float64, self int) float64 {
	sum := 0.0
	for j, t := range temps {
		if j == self {
			continue
		}
		sum += t
	}

	return sum / float64(len(temps)-1)
}

var _ Model = Diffusive{}
