package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Kredi
	CreditsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credits_consumed_total",
			Help: "Credits debited through the usage gate",
		},
		[]string{"api_type"},
	)
	CreditRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_rejections_total",
			Help: "Gate calls that did not debit",
		},
		[]string{"reason"}, // missing_parameter|check_failed|insufficient|write_failed
	)
	CreditRefunds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_refunds_total",
			Help: "Compensating refunds after a paid operation failed",
		},
		[]string{"status"}, // ok|failed
	)

	KeywordGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keyword_generations_total",
			Help: "Keyword synthesis requests by outcome",
		},
		[]string{"provider", "outcome"},
	)

	CompetitorAnalyses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "competitor_analyses_total",
			Help: "Competitor analyses by data source",
		},
		[]string{"source"},
	)
	CompetitorSourceFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "competitor_source_fallbacks_total",
			Help: "Live competitor lookups that fell back to fixtures",
		},
		[]string{"reason"},
	)

	// Worker kuyruğu
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	initOnce sync.Once
)

// /metrics endpoint'i için handler
var Handler = promhttp.Handler

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			HTTPLatency,
			CreditsConsumed,
			CreditRejections,
			CreditRefunds,
			KeywordGenerations,
			CompetitorAnalyses,
			CompetitorSourceFallbacks,
			WorkerQueueDepth,
		)
	})
}
