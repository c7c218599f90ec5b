// Package metrics implements ports.Metrics with prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/paket/internal/core/domain"
	"go.trai.ch/paket/internal/core/ports"
	"go.trai.ch/zerr"
)

// Recorder collects install metrics in a private registry.
type Recorder struct {
	registry  *prometheus.Registry
	textfile  string
	runs      *prometheus.CounterVec
	duration  prometheus.Histogram
	installed prometheus.Counter
	conflicts prometheus.Gauge
}

var _ ports.Metrics = (*Recorder)(nil)

// New creates a Recorder. When textfile is not empty, Flush writes the registry there
// in the node_exporter textfile format.
func New(textfile string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		textfile: textfile,
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paket_install_runs_total",
				Help: "Number of install runs by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "paket_install_run_duration_seconds",
				Help:    "Time taken by one install run.",
				Buckets: prometheus.DefBuckets,
			},
		),
		installed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "paket_packages_installed_total",
				Help: "Number of packages installed.",
			},
		),
		conflicts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "paket_conflicts_detected",
				Help: "Number of version conflicts observed in the last install run.",
			},
		),
	}

	r.registry.MustRegister(r.runs, r.duration, r.installed, r.conflicts)
	return r
}

// ObserveRun records one run.
func (r *Recorder) ObserveRun(outcome string, d time.Duration) {
	r.runs.WithLabelValues(outcome).Inc()
	r.duration.Observe(d.Seconds())
}

// AddInstalled counts n installed packages.
func (r *Recorder) AddInstalled(n int) {
	if n <= 0 {
		return
	}
	r.installed.Add(float64(n))
}

// ObserveConflicts sets the conflict gauge.
func (r *Recorder) ObserveConflicts(n int) {
	r.conflicts.Set(float64(n))
}

// Registry exposes the underlying registry as a gatherer.
func (r *Recorder) Registry() prometheus.Gatherer {
	return r.registry
}

// Flush writes the textfile if one is configured.
func (r *Recorder) Flush() error {
	if r.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.textfile, r.registry); err != nil {
		return zerr.With(domain.MarkCause(domain.ErrMetricsExportFailed, err), "path", r.textfile)
	}
	return nil
}
