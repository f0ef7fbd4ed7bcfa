//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/numreport/internal/format"
)

const (
	// ProgressRefreshRate is how often the spinner suffix is redrawn.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in runes of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation and clears its line.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with a progress bar and ETA on out until
// progressChan is closed. Values are overall progress in [0, 1]. wg.Done is
// called on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan float64, out io.Writer) {
	defer wg.Done()

	s := newSpinner(spinner.WithWriter(out))
	eta := format.NewETAEstimator()
	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	s.Start()
	defer s.Stop()

	var (
		progress  float64
		remaining time.Duration
		dirty     bool
	)
	for {
		select {
		case v, ok := <-progressChan:
			if !ok {
				return
			}
			progress, remaining = eta.Update(v)
			dirty = true
		case <-ticker.C:
			if dirty {
				s.UpdateSuffix(" " + format.FormatProgressBarWithETA(progress, remaining, ProgressBarWidth))
				dirty = false
			}
		}
	}
}
