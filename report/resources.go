package report

import (
	"os"

	"github.com/shirou/gopsutil/process"
)

// Resources is the resource usage of the simulator process.
type Resources struct {
	CPUPercent float64
	RSS        uint64
}

// SampleResources reads the CPU share and resident memory of the current
// process.
func SampleResources() (Resources, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return Resources{}, err
	}

	cpu, err := p.CPUPercent()
	if err != nil {
		return Resources{}, err
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		return Resources{}, err
	}

	return Resources{CPUPercent: cpu, RSS: mem.RSS}, nil
}
