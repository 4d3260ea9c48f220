// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

func counterValue(c prometheus.Counter) float64 {
	var m io_prometheus_client.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/sessions/{id}", "200"))

	RecordAPIRequest("GET", "/api/v1/sessions/{id}", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/sessions/{id}", "200"))
	if after != before+1 {
		t.Errorf("requests counter = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("after inc = %v, want %v", got, base+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("after dec = %v, want %v", got, base)
	}
}

func TestRecordCatalogCache(t *testing.T) {
	hits := counterValue(CatalogCacheHits)
	misses := counterValue(CatalogCacheMisses)

	RecordCatalogCache(true)
	RecordCatalogCache(false)
	RecordCatalogCache(false)

	if got := counterValue(CatalogCacheHits); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := counterValue(CatalogCacheMisses); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}

func TestRecordScoringPass(t *testing.T) {
	failures := counterValue(CandidateQueryFailures)

	RecordScoringPass(200*time.Millisecond, 340, 0)
	if got := counterValue(CandidateQueryFailures); got != failures {
		t.Errorf("failures changed on a clean pass: %v -> %v", failures, got)
	}

	RecordScoringPass(time.Second, 120, 3)
	if got := counterValue(CandidateQueryFailures); got != failures+3 {
		t.Errorf("failures = %v, want %v", got, failures+3)
	}
}

func TestRecordRecommendations(t *testing.T) {
	movies := testutil.ToFloat64(RecommendationsServed.WithLabelValues("movie"))
	series := testutil.ToFloat64(RecommendationsServed.WithLabelValues("series"))
	emptyDegraded := testutil.ToFloat64(EmptyRecommendationSets.WithLabelValues("true"))

	RecordRecommendations([]string{"movie", "movie", "series"}, false)
	RecordRecommendations(nil, true)

	if got := testutil.ToFloat64(RecommendationsServed.WithLabelValues("movie")); got != movies+2 {
		t.Errorf("movie count = %v, want %v", got, movies+2)
	}
	if got := testutil.ToFloat64(RecommendationsServed.WithLabelValues("series")); got != series+1 {
		t.Errorf("series count = %v, want %v", got, series+1)
	}
	if got := testutil.ToFloat64(EmptyRecommendationSets.WithLabelValues("true")); got != emptyDegraded+1 {
		t.Errorf("degraded empty sets = %v, want %v", got, emptyDegraded+1)
	}
}

func TestRecordSessionSweep(t *testing.T) {
	before := testutil.ToFloat64(SessionsExpired)

	RecordSessionSweep(3, 7)
	if got := testutil.ToFloat64(SessionsExpired); got != before+3 {
		t.Errorf("expired = %v, want %v", got, before+3)
	}
	if got := testutil.ToFloat64(ActiveSessions); got != 7 {
		t.Errorf("active = %v, want 7", got)
	}

	RecordSessionSweep(0, 2)
	if got := testutil.ToFloat64(SessionsExpired); got != before+3 {
		t.Errorf("expired changed on empty sweep: %v", got)
	}
	if got := testutil.ToFloat64(ActiveSessions); got != 2 {
		t.Errorf("active = %v, want 2", got)
	}
}

func TestMetricsLint(t *testing.T) {
	RecordClarification("context")
	RecordFeedback("like")

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("metric lint problem %s: %s", p.Metric, p.Text)
	}
}
