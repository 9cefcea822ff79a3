package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	seedsTotal    *prometheus.CounterVec
	authFailures  *prometheus.CounterVec
	tokensIssued  prometheus.Counter
	barsGenerated *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		seedsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investagent_seeded_records_total",
				Help: "Total number of mock records seeded, by collection",
			},
			[]string{"collection"},
		),
		authFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investagent_auth_failures_total",
				Help: "Total number of failed authentications",
			},
			[]string{"kind"},
		),
		tokensIssued: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "investagent_tokens_issued_total",
				Help: "Total number of bearer tokens issued",
			},
		),
		barsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "investagent_bars_generated_total",
				Help: "Total number of synthetic price bars generated",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "investagent_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSeed records seeded mock records for a collection.
func (r *Recorder) RecordSeed(collection string, count int) {
	r.seedsTotal.WithLabelValues(collection).Add(float64(count))
}

// RecordAuthFailure records a failed authentication.
func (r *Recorder) RecordAuthFailure(kind string) {
	r.authFailures.WithLabelValues(kind).Inc()
}

// RecordTokenIssued records an issued bearer token.
func (r *Recorder) RecordTokenIssued() {
	r.tokensIssued.Inc()
}

// RecordBarsGenerated records generated synthetic bars for a symbol.
func (r *Recorder) RecordBarsGenerated(symbol string, count int) {
	r.barsGenerated.WithLabelValues(symbol).Add(float64(count))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
