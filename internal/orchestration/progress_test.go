package orchestration

import (
	"testing"

	"github.com/agbru/numreport/internal/naturals"
)

func TestNewProgressAggregator(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n       int
		wantNil bool
	}{
		{3, false},
		{1, false},
		{0, true},
		{-1, true},
	}
	for _, tt := range tests {
		agg := NewProgressAggregator(tt.n)
		if (agg == nil) != tt.wantNil {
			t.Errorf("NewProgressAggregator(%d) nil = %v, want %v", tt.n, agg == nil, tt.wantNil)
		}
		if agg != nil && agg.Len() != tt.n {
			t.Errorf("Len() = %d, want %d", agg.Len(), tt.n)
		}
	}
}

func TestProgressAggregator_Update(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(2)

	if got := agg.Update(naturals.ProgressUpdate{SummerIndex: 0, Value: 0.5}); got != 0.25 {
		t.Errorf("average after first update = %v, want 0.25", got)
	}
	if got := agg.Update(naturals.ProgressUpdate{SummerIndex: 1, Value: 1.0}); got != 0.75 {
		t.Errorf("average after second update = %v, want 0.75", got)
	}
	if got := agg.Update(naturals.ProgressUpdate{SummerIndex: 7, Value: 1.0}); got != 0.75 {
		t.Errorf("out-of-range update should be ignored, got %v", got)
	}
	if agg.Average() != 0.75 {
		t.Errorf("Average() = %v, want 0.75", agg.Average())
	}
}
