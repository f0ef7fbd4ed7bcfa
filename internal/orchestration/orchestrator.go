package orchestration

import (
	"context"
	"math/big"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/numreport/internal/errors"
	"github.com/agbru/numreport/internal/naturals"
)

// SumResult encapsulates the outcome of a single summation strategy.
type SumResult struct {
	// Name is the registry name of the strategy (e.g., "gauss").
	Name string
	// Result is the computed sum. It is nil if an error occurred.
	Result *big.Int
	// Duration is the time taken to complete the summation.
	Duration time.Duration
	// Err contains any error that occurred during the summation.
	Err error
}

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel, so summing goroutines rarely block on a slow consumer.
const ProgressBufferMultiplier = 5

// ExecuteSums runs every summer concurrently for the same m and collects one
// result per summer, in input order. Progress from all summers is averaged
// and forwarded to progress, which may be nil.
func ExecuteSums(ctx context.Context, summers []naturals.Summer, m int64, progress naturals.ProgressFunc) []SumResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]SumResult, len(summers))
	progressChan := make(chan naturals.ProgressUpdate, len(summers)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go forwardProgress(&displayWg, progressChan, len(summers), progress)

	for i, s := range summers {
		idx, summer := i, s
		g.Go(func() error {
			report := func(v float64) {
				select {
				case progressChan <- naturals.ProgressUpdate{SummerIndex: idx, Value: v}:
				case <-ctx.Done():
				}
			}
			startTime := time.Now()
			res, err := summer.Sum(ctx, m, report)
			results[idx] = SumResult{
				Name: summer.Name(), Result: res, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func forwardProgress(wg *sync.WaitGroup, progressChan <-chan naturals.ProgressUpdate, n int, progress naturals.ProgressFunc) {
	defer wg.Done()
	agg := NewProgressAggregator(n)
	for update := range progressChan {
		if agg == nil || progress == nil {
			continue
		}
		progress(agg.Update(update))
	}
}

// AnalyzeSumResults validates the results of several strategies for the same
// m. Successful results are preferred over failures and faster over slower.
// It returns the agreed sum, the first error when every strategy failed, or a
// MismatchError when successful strategies disagree. results is sorted in place.
func AnalyzeSumResults(results []SumResult, m int64) (*big.Int, error) {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	if len(results) == 0 || results[0].Err != nil {
		if len(results) == 0 {
			return nil, apperrors.NewConfigError("no summation strategy selected")
		}
		return nil, results[0].Err
	}

	first := results[0]
	mismatch := false
	values := make(map[string]string, len(results))
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		values[res.Name] = res.Result.String()
		if res.Result.Cmp(first.Result) != 0 {
			mismatch = true
		}
	}
	if mismatch {
		return nil, apperrors.MismatchError{M: m, Results: values}
	}
	return first.Result, nil
}
