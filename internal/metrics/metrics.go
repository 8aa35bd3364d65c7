// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors of the API process on a private registry
type Metrics struct {
	registry *prometheus.Registry

	RequestCounter *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
	LikeToggles    *prometheus.CounterVec
	AIRequests     *prometheus.CounterVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redsent_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "redsent_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		LikeToggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redsent_like_toggles_total",
				Help: "Like toggles by identity kind and resulting state",
			},
			[]string{"identity", "action"},
		),
		AIRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redsent_ai_requests_total",
				Help: "Summarization requests by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		m.RequestCounter,
		m.RequestLatency,
		m.LikeToggles,
		m.AIRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveLikeToggle records a toggle. A nil receiver is a no-op.
func (m *Metrics) ObserveLikeToggle(authenticated, liked bool) {
	if m == nil {
		return
	}
	identity := "anonymous"
	if authenticated {
		identity = "authenticated"
	}
	action := "unlike"
	if liked {
		action = "like"
	}
	m.LikeToggles.WithLabelValues(identity, action).Inc()
}

// ObserveAIRequest records a summarization outcome. A nil receiver is a no-op.
func (m *Metrics) ObserveAIRequest(outcome string) {
	if m == nil {
		return
	}
	m.AIRequests.WithLabelValues(outcome).Inc()
}
