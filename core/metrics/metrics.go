package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "creator_ledger",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "creator_ledger",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	BookingsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "creator_ledger",
		Name:      "bookings_created_total",
		Help:      "Bookings by id source (registered or fallback).",
	}, []string{"source"})

	SettlementFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "creator_ledger",
		Name:      "settlement_failures_total",
		Help:      "Payment settlement calls that failed.",
	})

	PointCredits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "creator_ledger",
		Name:      "point_credits_total",
		Help:      "Point credit attempts by kind and outcome (credited or duplicate).",
	}, []string{"kind", "outcome"})

	AggregationFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "creator_ledger",
		Name:      "aggregation_fallbacks_total",
		Help:      "Aggregate reads that failed and were defaulted to zero.",
	}, []string{"source"})
)

func init() {
	Registry.MustRegister(
		HTTPRequests,
		HTTPDuration,
		BookingsCreated,
		SettlementFailures,
		PointCredits,
		AggregationFallbacks,
		prometheus.NewGoCollector(),
	)
}
