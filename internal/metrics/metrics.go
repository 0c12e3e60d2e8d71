package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastejourney_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tastejourney_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ScrapeAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastejourney_scrape_attempts_total",
			Help: "Scrape attempts by strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)

	EnrichmentCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastejourney_enrichment_calls_total",
			Help: "Enrichment calls by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	EnrichmentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tastejourney_enrichment_duration_seconds",
			Help:    "Duration of a single enrichment call in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tastejourney_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	RecommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tastejourney_recommendations_served_total",
			Help: "Recommendation lists returned to callers",
		},
	)

	AssistantReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastejourney_assistant_replies_total",
			Help: "Assistant replies by provider and fallback use",
		},
		[]string{"provider", "fallback"},
	)

	ReportsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastejourney_reports_sent_total",
			Help: "Report e-mails by delivery provider and outcome",
		},
		[]string{"provider", "outcome"},
	)
)

// BreakerState maps a gobreaker state to the gauge value.
func BreakerState(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
