package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Knowledge base metrics
	KnowledgeQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowledge_queries_total",
			Help: "Total number of knowledge base queries by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	KnowledgeQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "knowledge_query_duration_seconds",
			Help:    "Duration of knowledge base queries in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"operation"},
	)

	KnowledgeGames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "knowledge_games",
			Help: "Number of games in the loaded knowledge base",
		},
	)

	// Recommendation metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests by how candidates were found",
		},
		[]string{"source"}, // "preferences", "gateway_fallback", "empty"
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates",
			Help:    "Number of candidate games per recommendation request",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	// HTTP metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// Query outcomes
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// RecordQuery records one knowledge base query.
func RecordQuery(operation, outcome string, duration time.Duration) {
	KnowledgeQueriesTotal.WithLabelValues(operation, outcome).Inc()
	KnowledgeQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetGameCount publishes the size of the loaded knowledge base.
func SetGameCount(n int) {
	KnowledgeGames.Set(float64(n))
}

// RecordRecommendation records how a candidate set was produced and its size.
func RecordRecommendation(source string, candidates int) {
	RecommendationsTotal.WithLabelValues(source).Inc()
	RecommendationCandidates.Observe(float64(candidates))
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
