package orchestration

import (
	"sync"

	"github.com/agbru/numreport/internal/naturals"
)

// ProgressAggregator averages the progress of several concurrent summers.
type ProgressAggregator struct {
	mu         sync.Mutex
	progresses []float64
}

// NewProgressAggregator creates an aggregator for n summers.
// Returns nil if n <= 0.
func NewProgressAggregator(n int) *ProgressAggregator {
	if n <= 0 {
		return nil
	}
	return &ProgressAggregator{progresses: make([]float64, n)}
}

// Update records one summer's progress and returns the new average.
// Updates with an out-of-range index are ignored.
func (a *ProgressAggregator) Update(update naturals.ProgressUpdate) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if update.SummerIndex >= 0 && update.SummerIndex < len(a.progresses) {
		a.progresses[update.SummerIndex] = update.Value
	}
	return a.averageLocked()
}

// Average returns the current average without updating.
func (a *ProgressAggregator) Average() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.averageLocked()
}

// Len returns the number of summers tracked.
func (a *ProgressAggregator) Len() int {
	return len(a.progresses)
}

func (a *ProgressAggregator) averageLocked() float64 {
	var total float64
	for _, p := range a.progresses {
		total += p
	}
	return total / float64(len(a.progresses))
}
