package report

import (
	"fmt"
	"io"
	"math"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sarchlab/zonesim/instrumentation/hooking"
	"github.com/sarchlab/zonesim/simulation"
)

// SettleBand is how close to the setpoint a zone must come to count as
// settled.
const SettleBand = 1.0

// ZoneStats aggregates the readings of one zone over a run.
type ZoneStats struct {
	Index     int
	Min       float64
	Max       float64
	Final     float64
	FinalHeat float64

	// Overshoot is how far the zone went above the setpoint. It is zero if
	// the zone never exceeded the setpoint.
	Overshoot float64

	// SettledAt is the elapsed time of the first reading within SettleBand
	// of the setpoint, or a negative value if that never happened.
	SettledAt float64
}

// A Summary collects per-zone statistics during a run and the process
// resource usage at its end.
type Summary struct {
	lock sync.Mutex

	setpoint  float64
	zones     []ZoneStats
	result    simulation.Result
	finished  bool
	resources Resources
	resErr    error

	sample func() (Resources, error)
}

// NewSummary creates an empty Summary.
func NewSummary() *Summary {
	return &Summary{sample: SampleResources}
}

// Func implements hooking.Hook.
func (s *Summary) Func(ctx hooking.HookCtx) {
	s.lock.Lock()
	defer s.lock.Unlock()

	switch ctx.Pos {
	case simulation.HookPosTick:
		s.addSnapshot(ctx.Item.(simulation.Snapshot))
	case simulation.HookPosStop:
		s.result = ctx.Item.(simulation.Result)
		s.finished = true
		s.resources, s.resErr = s.sample()
	}
}

func (s *Summary) addSnapshot(snap simulation.Snapshot) {
	s.setpoint = snap.Setpoint

	if s.zones == nil {
		s.zones = make([]ZoneStats, len(snap.Zones))
		for i, z := range snap.Zones {
			s.zones[i] = ZoneStats{
				Index:     z.Index,
				Min:       math.Inf(1),
				Max:       math.Inf(-1),
				SettledAt: -1,
			}
		}
	}

	for i, z := range snap.Zones {
		st := &s.zones[i]
		st.Min = math.Min(st.Min, z.TrueTemperature)
		st.Max = math.Max(st.Max, z.TrueTemperature)
		st.Final = z.TrueTemperature
		st.FinalHeat = z.HeatFraction
		st.Overshoot = math.Max(0, st.Max-snap.Setpoint)

		if st.SettledAt < 0 &&
			math.Abs(z.TrueTemperature-snap.Setpoint) <= SettleBand {
			st.SettledAt = z.ElapsedSeconds
		}
	}
}

// Zones returns a copy of the per-zone statistics.
func (s *Summary) Zones() []ZoneStats {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]ZoneStats(nil), s.zones...)
}

// Write prints the summary as a table.
func (s *Summary) Write(w io.Writer) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\nRun %s\n", s.result.RunID)
	if s.finished {
		fmt.Fprintf(tw, "Ticks: %d (produced %d, coalesced %d) in %s\n",
			s.result.Ticks, s.result.Produced, s.result.Coalesced,
			s.result.Elapsed.Round(time.Millisecond))
	}

	fmt.Fprintln(tw, "Zone\tMin\tMax\tFinal\tHeat\tOvershoot\tSettled")
	for _, z := range s.zones {
		settled := "never"
		if z.SettledAt >= 0 {
			settled = fmt.Sprintf("%.2fs", z.SettledAt)
		}

		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
			z.Index, z.Min, z.Max, z.Final, z.FinalHeat, z.Overshoot, settled)
	}

	if s.finished {
		if s.resErr != nil {
			fmt.Fprintf(tw, "Resources: unavailable (%v)\n", s.resErr)
		} else {
			fmt.Fprintf(tw, "Resources: CPU %.1f%%, RSS %s\n",
				s.resources.CPUPercent, humanize.IBytes(s.resources.RSS))
		}
	}

	return tw.Flush()
}
