// Package sysmon samples host and process resource usage for verbose runs.
package sysmon

import (
	"context"
	"os"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats is one snapshot of host and process usage. Fields the platform
// cannot report stay zero.
type Stats struct {
	CPUPercent float64 // host-wide, 0.0 .. 100.0
	MemPercent float64 // host-wide, 0.0 .. 100.0
	LogicalCPU int
	ProcessRSS uint64 // resident set of this process, in bytes
}

// Sample collects a Stats snapshot. CPU uses interval 0, the delta since the
// previous call. Errors are swallowed.
func Sample(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		s.LogicalCPU = n
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if p, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil { //nolint:gosec // pids fit in int32
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			s.ProcessRSS = mi.RSS
		}
	}
	return s
}
