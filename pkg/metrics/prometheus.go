package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal  *prometheus.CounterVec
	branchesTotal *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "profitabledge_price_fetches_total",
				Help: "Total number of price history fetches by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		branchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "profitabledge_drawdown_branches_total",
				Help: "Total number of classifier branch decisions",
			},
			[]string{"branch"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "profitabledge_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records one provider fetch attempt.
func (r *Recorder) RecordFetch(kind, outcome string) {
	r.fetchesTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordBranch records which classifier branch decided a result.
func (r *Recorder) RecordBranch(branch string) {
	r.branchesTotal.WithLabelValues(branch).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
