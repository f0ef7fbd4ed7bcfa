// Package metrics records report activity in a private Prometheus registry
// and can dump it in the text exposition format. Nothing is served over the
// network.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

const namespace = "numreport"

// Collector owns the registry and the report metrics.
type Collector struct {
	registry *prometheus.Registry

	reportsTotal   *prometheus.CounterVec
	reportDuration *prometheus.HistogramVec
	activeWorkers  prometheus.Gauge
	numbersPrinted prometheus.Counter
	lastSumBits    prometheus.Gauge
}

// NewCollector builds a Collector with its own registry, including the Go
// runtime collector.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		reportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Completed reports by summation strategy and outcome.",
		}, []string{"strategy", "status"}),
		reportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Wall time of a report run.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"strategy"}),
		activeWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_workers",
			Help:      "Report workers currently running.",
		}),
		numbersPrinted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "numbers_printed_total",
			Help:      "Natural numbers written to the output.",
		}),
		lastSumBits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_sum_bits",
			Help:      "Bit length of the most recent sum.",
		}),
	}
	c.registry.MustRegister(
		c.reportsTotal,
		c.reportDuration,
		c.activeWorkers,
		c.numbersPrinted,
		c.lastSumBits,
		collectors.NewGoCollector(),
	)
	return c
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveReport records a finished report.
func (c *Collector) ObserveReport(strategy string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	c.reportsTotal.WithLabelValues(strategy, status).Inc()
	c.reportDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

// AddPrinted counts n more printed numbers.
func (c *Collector) AddPrinted(n int64) {
	if n > 0 {
		c.numbersPrinted.Add(float64(n))
	}
}

// SetSumBits records the bit length of the latest sum.
func (c *Collector) SetSumBits(bits int) {
	c.lastSumBits.Set(float64(bits))
}

// WorkerStarted implements worker.Tracker.
func (c *Collector) WorkerStarted() { c.activeWorkers.Inc() }

// WorkerStopped implements worker.Tracker.
func (c *Collector) WorkerStopped() { c.activeWorkers.Dec() }

// WriteText writes every gathered metric family in the Prometheus text format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
