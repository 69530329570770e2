// Package metrics keeps per-run Prometheus counters for a scan and can
// export them in the text exposition format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"pwmscan/core/scan"
)

// Run holds the collectors of one scan. Each Run owns its registry, so
// concurrent runs (and tests) never share state.
type Run struct {
	Registry *prometheus.Registry

	Sequences    *prometheus.CounterVec
	Windows      *prometheus.CounterVec
	Matches      *prometheus.CounterVec
	Failures     *prometheus.CounterVec
	PassDuration *prometheus.HistogramVec
	Threads      prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Run {
	r := &Run{
		Registry: prometheus.NewRegistry(),

		Sequences: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pwmscan_sequences_scored_total",
				Help: "Sequences scored, by motif",
			},
			[]string{"motif"},
		),
		Windows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pwmscan_windows_scored_total",
				Help: "Windows scored, by motif",
			},
			[]string{"motif"},
		),
		Matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pwmscan_matches_total",
				Help: "Predicted matches above threshold, by motif and strand",
			},
			[]string{"motif", "strand"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pwmscan_sequence_failures_total",
				Help: "Sequences that could not be scored, by motif",
			},
			[]string{"motif"},
		),
		PassDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pwmscan_motif_pass_duration_seconds",
				Help:    "Wall time of one motif's full sequence pass",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
			},
			[]string{"motif"},
		),
		Threads: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pwmscan_worker_threads",
				Help: "Size of the scoring worker pool",
			},
		),
	}
	r.Registry.MustRegister(r.Sequences, r.Windows, r.Matches, r.Failures, r.PassDuration, r.Threads)
	return r
}

// Observe records one scored sequence.
func (r *Run) Observe(res scan.Result) {
	r.Sequences.WithLabelValues(res.Motif).Inc()
	r.Windows.WithLabelValues(res.Motif).Add(float64(res.Windows))
	for _, m := range res.Matches {
		r.Matches.WithLabelValues(res.Motif, string(m.Strand)).Inc()
	}
}

// Fail records one sequence that could not be scored.
func (r *Run) Fail(motif string) { r.Failures.WithLabelValues(motif).Inc() }

// Pass records the duration of a motif pass.
func (r *Run) Pass(motif string, d time.Duration) {
	r.PassDuration.WithLabelValues(motif).Observe(d.Seconds())
}

// WriteTextfile writes every metric to path in the Prometheus text format,
// for node_exporter's textfile collector or later inspection.
func (r *Run) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}
