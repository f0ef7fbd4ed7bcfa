package sysmon

import (
	"context"
	"runtime"
	"testing"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample(context.Background())
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSample_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("process and memory sampling checked on linux only")
	}
	s := Sample(context.Background())
	if s.MemPercent == 0 {
		t.Error("expected non-zero MemPercent on a running system")
	}
	if s.ProcessRSS == 0 {
		t.Error("expected a non-zero resident set for the test process")
	}
	if s.LogicalCPU < 1 {
		t.Errorf("LogicalCPU = %d, want at least 1", s.LogicalCPU)
	}
}
