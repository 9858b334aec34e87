package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartreply_requests_total",
		Help: "Reply requests by endpoint",
	}, []string{"endpoint"})

	SuggestionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartreply_suggestions_total",
		Help: "Suggestions served by source",
	}, []string{"source"})

	GenerationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smartreply_generation_failures_total",
		Help: "Model generation calls that produced no candidates",
	})

	ProcessingTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "smartreply_processing_time_seconds",
		Help:    "Suggestion pipeline latency",
		Buckets: prometheus.DefBuckets,
	})
)
