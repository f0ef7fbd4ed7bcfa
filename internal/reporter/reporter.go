// Package reporter implements NumberReporter: a one-shot task that prints
// the first n natural numbers and then the sum of the first m.
package reporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/numreport/internal/errors"
	"github.com/agbru/numreport/internal/logging"
	"github.com/agbru/numreport/internal/metrics"
	"github.com/agbru/numreport/internal/naturals"
)

const tracerName = "github.com/agbru/numreport/internal/reporter"

// ErrAlreadyRun is returned by Run on every call after the first.
var ErrAlreadyRun = errors.New("reporter has already run")

// NumberReporter holds the immutable inputs of one report.
type NumberReporter struct {
	n, m int64

	summer   naturals.Summer
	logger   logging.Logger
	metrics  *metrics.Collector
	progress naturals.ProgressFunc
	tracer   trace.Tracer

	state atomic.Int32
	sum   atomic.Pointer[big.Int]
}

// Option configures a NumberReporter at construction.
type Option func(*NumberReporter)

// WithSummer selects the summation strategy. Defaults to naturals.Gauss.
func WithSummer(s naturals.Summer) Option {
	return func(r *NumberReporter) { r.summer = s }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l logging.Logger) Option {
	return func(r *NumberReporter) { r.logger = l }
}

// WithMetrics records runs in c.
func WithMetrics(c *metrics.Collector) Option {
	return func(r *NumberReporter) { r.metrics = c }
}

// WithProgress receives summation progress.
func WithProgress(p naturals.ProgressFunc) Option {
	return func(r *NumberReporter) { r.progress = p }
}

// WithTracerProvider traces runs with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *NumberReporter) { r.tracer = tp.Tracer(tracerName) }
}

// New validates n and m and returns a reporter in the Created state.
func New(n, m int64, opts ...Option) (*NumberReporter, error) {
	if err := naturals.Validate("n", n); err != nil {
		return nil, err
	}
	if err := naturals.Validate("m", m); err != nil {
		return nil, err
	}

	r := &NumberReporter{
		n:      n,
		m:      m,
		summer: naturals.Gauss{},
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}
	return r, nil
}

// N returns how many natural numbers are printed.
func (r *NumberReporter) N() int64 { return r.n }

// M returns how many natural numbers are summed.
func (r *NumberReporter) M() int64 { return r.m }

// State returns the current lifecycle state. Safe for concurrent use.
func (r *NumberReporter) State() State { return State(r.state.Load()) }

// Sum returns the computed sum once SumNaturalNumbers has succeeded, nil before.
func (r *NumberReporter) Sum() *big.Int { return r.sum.Load() }

// Run prints the sequence and then the sum to w. It may be called once;
// later calls return ErrAlreadyRun without writing anything.
func (r *NumberReporter) Run(ctx context.Context, w io.Writer) (err error) {
	if !r.state.CompareAndSwap(int32(StateCreated), int32(StateRunning)) {
		return ErrAlreadyRun
	}

	ctx, span := r.tracer.Start(ctx, "NumberReporter.Run", trace.WithAttributes(
		attribute.Int64("n", r.n),
		attribute.Int64("m", r.m),
		attribute.String("strategy", r.summer.Name()),
	))
	start := time.Now()
	r.logger.Debug("report started",
		logging.Int64("n", r.n), logging.Int64("m", r.m), logging.String("strategy", r.summer.Name()))

	defer func() {
		elapsed := time.Since(start)
		if r.metrics != nil {
			r.metrics.ObserveReport(r.summer.Name(), elapsed, err)
		}
		if err != nil {
			r.state.Store(int32(StateFailed))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			r.logger.Error("report failed", err, logging.Duration("elapsed", elapsed))
		} else {
			r.state.Store(int32(StateCompleted))
			r.logger.Debug("report completed", logging.Duration("elapsed", elapsed))
		}
		span.End()
	}()

	if err := r.PrintNaturalNumbers(ctx, w); err != nil {
		return err
	}
	if _, err := r.SumNaturalNumbers(ctx, w); err != nil {
		return err
	}
	return nil
}

// PrintNaturalNumbers writes a label line, then 1..n each followed by a
// space, then a line break.
func (r *NumberReporter) PrintNaturalNumbers(ctx context.Context, w io.Writer) (err error) {
	ctx, span := r.tracer.Start(ctx, "NumberReporter.PrintNaturalNumbers",
		trace.WithAttributes(attribute.Int64("n", r.n)))
	defer endSpan(span, &err)

	if _, err := fmt.Fprintf(w, "Printing first %d natural numbers:\n", r.n); err != nil {
		return apperrors.ReportError{Operation: "sequence", Cause: err}
	}
	if err := naturals.WriteSequence(ctx, w, r.n); err != nil {
		return apperrors.ReportError{Operation: "sequence", Cause: err}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return apperrors.ReportError{Operation: "sequence", Cause: err}
	}
	if r.metrics != nil {
		r.metrics.AddPrinted(r.n)
	}
	return nil
}

// SumNaturalNumbers computes 1 + ... + m with the configured strategy and
// writes it on a labelled line.
func (r *NumberReporter) SumNaturalNumbers(ctx context.Context, w io.Writer) (sum *big.Int, err error) {
	ctx, span := r.tracer.Start(ctx, "NumberReporter.SumNaturalNumbers", trace.WithAttributes(
		attribute.Int64("m", r.m),
		attribute.String("strategy", r.summer.Name()),
	))
	defer endSpan(span, &err)

	sum, err = r.summer.Sum(ctx, r.m, r.progress)
	if err != nil {
		return nil, apperrors.ReportError{Operation: "sum", Cause: err}
	}
	r.sum.Store(sum)
	span.SetAttributes(attribute.Int("sum.bits", sum.BitLen()))
	if r.metrics != nil {
		r.metrics.SetSumBits(sum.BitLen())
	}

	if _, err := fmt.Fprintf(w, "Sum of first %d natural numbers: %s\n", r.m, sum); err != nil {
		return nil, apperrors.ReportError{Operation: "sum", Cause: err}
	}
	return sum, nil
}

func endSpan(span trace.Span, errp *error) {
	if *errp != nil {
		span.RecordError(*errp)
		span.SetStatus(codes.Error, (*errp).Error())
	}
	span.End()
}
