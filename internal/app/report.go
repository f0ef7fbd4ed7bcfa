package app

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/agbru/numreport/internal/cli"
	apperrors "github.com/agbru/numreport/internal/errors"
	"github.com/agbru/numreport/internal/logging"
	"github.com/agbru/numreport/internal/metrics"
	"github.com/agbru/numreport/internal/naturals"
	"github.com/agbru/numreport/internal/orchestration"
	"github.com/agbru/numreport/internal/reporter"
	"github.com/agbru/numreport/internal/sysmon"
	"github.com/agbru/numreport/internal/worker"
)

// progressBuffer bounds queued progress values; extra values are dropped.
const progressBuffer = 16

// runReport launches the reporter on its own worker and, unless detached,
// joins it.
func (a *Application) runReport(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	release := func() {
		stopSignals()
		cancelTimeout()
	}
	detached := false
	defer func() {
		if !detached {
			release()
		}
	}()

	summer, err := orchestration.GetSummer(a.Config.Algo, a.Factory)
	if err != nil {
		a.Logger.Error("selecting strategy", err, logging.String("algo", a.Config.Algo))
		return apperrors.ExitCodeFor(err)
	}

	if a.Config.Verbose {
		cli.DisplayExecutionConfig(a.Config, a.ErrWriter)
	}

	opts := []reporter.Option{
		reporter.WithSummer(summer),
		reporter.WithLogger(a.Logger),
		reporter.WithMetrics(a.Metrics),
	}

	var (
		displayWg    sync.WaitGroup
		progressChan chan float64
	)
	if a.showProgress() {
		progressChan = make(chan float64, progressBuffer)
		displayWg.Add(1)
		go cli.DisplayProgress(&displayWg, progressChan, a.ErrWriter)
		opts = append(opts, reporter.WithProgress(func(v float64) {
			select {
			case progressChan <- v:
			default:
			}
		}))
	}
	stopDisplay := func() {
		if progressChan != nil {
			close(progressChan)
			displayWg.Wait()
		}
	}

	r, err := reporter.New(a.Config.N, a.Config.M, opts...)
	if err != nil {
		stopDisplay()
		a.Logger.Error("creating reporter", err)
		return apperrors.ExitCodeFor(err)
	}

	start := time.Now()
	a.task = worker.Go(ctx, "reporter", func(ctx context.Context) error {
		return r.Run(ctx, out)
	}, worker.WithLogger(a.Logger), worker.WithTracker(a.Metrics))

	if a.Config.Detach {
		// The worker keeps the run's contexts until it returns.
		detached = true
		go func() {
			<-a.task.Done()
			release()
		}()
		a.Logger.Debug("reporter detached", logging.String("worker", a.task.Name()))
		return apperrors.ExitSuccess
	}

	err = a.task.Wait()
	stopDisplay()
	if apperrors.IsContextError(err) {
		a.Logger.Info("report interrupted", logging.Err(err))
	}
	err = a.classify(err)

	if !a.Config.Quiet {
		cli.DisplaySummary(cli.ReportSummary{
			Strategy: summer.Name(),
			N:        r.N(),
			M:        r.M(),
			Sum:      r.Sum(),
			Duration: time.Since(start),
			Err:      err,
		}, a.ErrWriter)
	}
	if a.Config.Metrics {
		if werr := a.Metrics.WriteText(a.ErrWriter); werr != nil {
			a.Logger.Error("writing metrics", werr)
		}
	}
	if a.Config.Verbose {
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		cli.DisplayRuntime(metrics.ReadRuntime(), sysmon.Sample(sctx), a.ErrWriter)
		cancel()
	}

	return apperrors.ExitCodeFor(err)
}

// classify turns a deadline hit by the worker into a TimeoutError carrying
// the configured limit.
func (a *Application) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "report", Limit: a.Config.Timeout}
	}
	return err
}

// showProgress reports whether the spinner is worth drawing: the sum must be
// long enough to emit progress and someone must be waiting for it.
func (a *Application) showProgress() bool {
	return !a.Config.Quiet && !a.Config.Detach && a.Config.M >= naturals.ProgressInterval
}
