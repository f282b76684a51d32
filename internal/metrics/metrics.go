package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tpp-demo/internal/domain"
)

const (
	metricPrefix = "tpp_demo_"

	resultSuccess = "success"
	resultError   = "error"
)

// Metrics bundles flow, merge and HTTP metrics.
type Metrics struct {
	FlowsStarted   *prometheus.CounterVec
	FlowsCancelled *prometheus.CounterVec
	StepsTotal     *prometheus.CounterVec
	MergesTotal    *prometheus.CounterVec
	MergeDuration  prometheus.Histogram
	HTTPRequests   *prometheus.CounterVec
	HTTPLatency    *prometheus.HistogramVec
}

// New constructs the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FlowsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "flows_started_total",
				Help: "Total flows started by category",
			},
			[]string{"category"},
		),
		FlowsCancelled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "flows_cancelled_total",
				Help: "Total flows cancelled by category",
			},
			[]string{"category"},
		),
		StepsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "steps_total",
				Help: "Total step submissions by component and result",
			},
			[]string{"component", "result"},
		),
		MergesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ledger_merges_total",
				Help: "Total ledger merges by outcome",
			},
			[]string{"outcome"},
		),
		MergeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricPrefix + "ledger_merge_duration_seconds",
			Help:    "Ledger merge duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
		HTTPLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
	reg.MustRegister(
		m.FlowsStarted,
		m.FlowsCancelled,
		m.StepsTotal,
		m.MergesTotal,
		m.MergeDuration,
		m.HTTPRequests,
		m.HTTPLatency,
	)
	return m
}

func (m *Metrics) FlowStarted(category string) {
	m.FlowsStarted.WithLabelValues(category).Inc()
}

func (m *Metrics) FlowCancelled(category string) {
	m.FlowsCancelled.WithLabelValues(category).Inc()
}

func (m *Metrics) StepSubmitted(component string, err error) {
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	m.StepsTotal.WithLabelValues(component, result).Inc()
}

func (m *Metrics) MergeFinished(kind domain.OutcomeKind, elapsed time.Duration) {
	m.MergesTotal.WithLabelValues(string(kind)).Inc()
	m.MergeDuration.Observe(elapsed.Seconds())
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}
