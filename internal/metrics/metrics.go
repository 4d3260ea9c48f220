// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// Catalog upstream
	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_catalog_requests_total",
			Help: "Catalog API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"}, // outcome: "ok", "error", "status", "not_configured"
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_catalog_request_duration_seconds",
			Help:    "Catalog API latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinematch_catalog_cache_hits_total",
			Help: "Catalog pages served from the page cache",
		},
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinematch_catalog_cache_misses_total",
			Help: "Catalog pages fetched because they were not cached",
		},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinematch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation engine
	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinematch_scoring_duration_seconds",
			Help:    "Time to gather candidates and rank them",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 45},
		},
	)

	CandidatePoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinematch_candidate_pool_size",
			Help:    "Distinct candidates considered per scoring pass",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10),
		},
	)

	CandidateQueryFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinematch_candidate_query_failures_total",
			Help: "Candidate sub-queries that contributed zero items because they failed",
		},
	)

	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_recommendations_total",
			Help: "Recommendations returned, by media kind",
		},
		[]string{"kind"},
	)

	EmptyRecommendationSets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_empty_recommendation_sets_total",
			Help: "Scoring passes that produced no recommendations",
		},
		[]string{"degraded"},
	)

	Clarifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_clarifications_total",
			Help: "Ambiguity classifications of built profiles",
		},
		[]string{"kind"}, // "none", "context", "type_preference"
	)

	FeedbackSignals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_feedback_total",
			Help: "Feedback signals applied to live profiles",
		},
		[]string{"signal"},
	)

	// Sessions
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_active_sessions",
			Help: "Sessions currently held by the session store",
		},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinematch_sessions_expired_total",
			Help: "Sessions removed by the expiry sweeper",
		},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCatalogRequest records one upstream catalog call.
func RecordCatalogRequest(endpoint, outcome string, duration time.Duration) {
	CatalogRequests.WithLabelValues(endpoint, outcome).Inc()
	CatalogRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordCatalogCache records a page cache lookup.
func RecordCatalogCache(hit bool) {
	if hit {
		CatalogCacheHits.Inc()
	} else {
		CatalogCacheMisses.Inc()
	}
}

// RecordScoringPass records a completed scoring pass.
func RecordScoringPass(duration time.Duration, poolSize, failedQueries int) {
	ScoringDuration.Observe(duration.Seconds())
	CandidatePoolSize.Observe(float64(poolSize))
	if failedQueries > 0 {
		CandidateQueryFailures.Add(float64(failedQueries))
	}
}

// RecordRecommendations counts returned items by kind. An empty result is
// counted separately, labelled by whether the candidate pool was degraded.
func RecordRecommendations(kinds []string, degraded bool) {
	if len(kinds) == 0 {
		label := "false"
		if degraded {
			label = "true"
		}
		EmptyRecommendationSets.WithLabelValues(label).Inc()
		return
	}
	for _, k := range kinds {
		RecommendationsServed.WithLabelValues(k).Inc()
	}
}

// RecordClarification counts an ambiguity classification.
func RecordClarification(kind string) {
	Clarifications.WithLabelValues(kind).Inc()
}

// RecordFeedback counts an applied feedback signal.
func RecordFeedback(signal string) {
	FeedbackSignals.WithLabelValues(signal).Inc()
}

// RecordSessionSweep records one expiry sweep and the surviving session count.
func RecordSessionSweep(expired, active int) {
	if expired > 0 {
		SessionsExpired.Add(float64(expired))
	}
	ActiveSessions.Set(float64(active))
}
