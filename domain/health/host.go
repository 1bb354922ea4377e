package health

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/emergent-company/atlas/pkg/metrics"
)

// HostStats is a point-in-time sample of the host.
type HostStats struct {
	CPUCores          int     `json:"cpuCores"`
	MemoryTotalMB     uint64  `json:"memoryTotalMb"`
	MemoryUsedPercent float64 `json:"memoryUsedPercent"`
	Load1             float64 `json:"load1"`
	Load5             float64 `json:"load5"`
	Load15            float64 `json:"load15"`
}

// hostSampler reads host stats; the functions are swapped in tests.
type hostSampler struct {
	memStats func(context.Context) (*mem.VirtualMemoryStat, error)
	loadAvg  func(context.Context) (*load.AvgStat, error)
}

func newHostSampler() *hostSampler {
	return &hostSampler{
		memStats: mem.VirtualMemoryWithContext,
		loadAvg:  load.AvgWithContext,
	}
}

// Sample collects host stats and refreshes the host gauges. Load averages are
// left at zero on platforms that do not report them.
func (s *hostSampler) Sample(ctx context.Context) (HostStats, error) {
	st := HostStats{CPUCores: runtime.NumCPU()}

	vm, err := s.memStats(ctx)
	if err != nil {
		return st, err
	}
	st.MemoryTotalMB = vm.Total / 1024 / 1024
	st.MemoryUsedPercent = vm.UsedPercent
	metrics.MemoryUtilization.Set(vm.UsedPercent)

	if avg, err := s.loadAvg(ctx); err == nil {
		st.Load1, st.Load5, st.Load15 = avg.Load1, avg.Load5, avg.Load15
		metrics.CPULoadAvg.WithLabelValues("1m").Set(avg.Load1)
		metrics.CPULoadAvg.WithLabelValues("5m").Set(avg.Load5)
		metrics.CPULoadAvg.WithLabelValues("15m").Set(avg.Load15)
	}
	return st, nil
}
