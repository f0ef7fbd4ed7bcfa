package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// etaSmoothing weights the newest rate sample in the moving average.
const etaSmoothing = 0.3

// ProgressBar renders progress in [0, 1] as a bar of length runes.
// Out-of-range values are clamped.
func ProgressBar(progress float64, length int) string {
	progress = clamp(progress)
	count := int(progress * float64(length))
	var b strings.Builder
	b.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// FormatProgressBarWithETA renders "[bar] pct% ETA: eta".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", ProgressBar(progress, width), clamp(progress)*100, FormatETA(eta))
}

// ETAEstimator derives a remaining-time estimate from successive progress
// values using an exponential moving average of the progress rate.
// It is safe for concurrent use.
type ETAEstimator struct {
	mu       sync.Mutex
	now      func() time.Time
	lastTime time.Time
	progress float64
	rate     float64 // progress per second
}

// NewETAEstimator starts an estimator at the current time.
func NewETAEstimator() *ETAEstimator {
	return newETAEstimator(time.Now)
}

func newETAEstimator(now func() time.Time) *ETAEstimator {
	return &ETAEstimator{now: now, lastTime: now()}
}

// Update records a new overall progress value and returns the clamped
// progress with the current estimate.
func (e *ETAEstimator) Update(progress float64) (float64, time.Duration) {
	progress = clamp(progress)

	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	elapsed := now.Sub(e.lastTime).Seconds()
	if elapsed > 0 && progress > e.progress {
		sample := (progress - e.progress) / elapsed
		if e.rate == 0 {
			e.rate = sample
		} else {
			e.rate = etaSmoothing*sample + (1-etaSmoothing)*e.rate
		}
		e.lastTime = now
	}
	e.progress = progress
	return progress, e.etaLocked()
}

// ETA returns the current estimate, or 0 when none is available.
func (e *ETAEstimator) ETA() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.etaLocked()
}

func (e *ETAEstimator) etaLocked() time.Duration {
	if e.rate <= 0 || e.progress >= 1 {
		return 0
	}
	seconds := (1 - e.progress) / e.rate
	if seconds > MaxETA.Seconds() {
		return MaxETA
	}
	return time.Duration(seconds * float64(time.Second))
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
