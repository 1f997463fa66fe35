package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/godilite/team-scoring/internal/scoring"
)

const namespace = "teamscoring"

// Metrics holds the service's prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	runs         *prometheus.CounterVec
	runDuration  prometheus.Histogram
	teamsScored  prometheus.Gauge
	teamsFlagged *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	grpcRequests *prometheus.CounterVec
	grpcDuration *prometheus.HistogramVec
}

// New registers every collector on a dedicated registry together with the
// Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Scoring pipeline runs by outcome.",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_run_duration_seconds",
			Help:      "Wall time of successful scoring pipeline runs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		teamsScored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "teams_ranked",
			Help:      "Teams ranked by the most recent pipeline run.",
		}),
		teamsFlagged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "team_diagnostics_total",
			Help:      "Diagnostics emitted by the pipeline, by reason.",
		}, []string{"reason"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_cache_lookups_total",
			Help:      "Result cache lookups by result.",
		}, []string{"result"}),
		grpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_requests_total",
			Help:      "Handled gRPC requests by method and status code.",
		}, []string{"method", "code"}),
		grpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grpc_request_duration_seconds",
			Help:      "gRPC request latency by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.runs,
		m.runDuration,
		m.teamsScored,
		m.teamsFlagged,
		m.cacheLookups,
		m.grpcRequests,
		m.grpcDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRun records a completed pipeline run.
func (m *Metrics) ObserveRun(result scoring.Result, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues("success").Inc()
	m.runDuration.Observe(elapsed.Seconds())
	m.teamsScored.Set(float64(len(result.Cards)))
	for _, d := range result.Diagnostics {
		m.teamsFlagged.WithLabelValues(string(d.Reason)).Inc()
	}
}

func (m *Metrics) RunFailed() {
	if m == nil {
		return
	}
	m.runs.WithLabelValues("failure").Inc()
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) ObserveGRPC(method, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.grpcRequests.WithLabelValues(method, code).Inc()
	m.grpcDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
