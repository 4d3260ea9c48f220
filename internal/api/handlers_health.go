// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"
)

// HealthStatus is returned by GET /api/v1/health.
type HealthStatus struct {
	// Status is healthy, or degraded when the catalog is unconfigured or
	// its circuit breaker is open.
	Status            string  `json:"status"`
	CatalogConfigured bool    `json:"catalog_configured"`
	CircuitBreaker    string  `json:"circuit_breaker,omitempty"`
	Sessions          int     `json:"sessions"`
	Uptime            float64 `json:"uptime_seconds"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := HealthStatus{
		Status:            "healthy",
		CatalogConfigured: h.catalogConfigured,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if h.catalog != nil {
		status.CircuitBreaker = h.catalog.State()
	}
	if !status.CatalogConfigured || status.CircuitBreaker == "open" {
		status.Status = "degraded"
	}
	if n, err := h.sessions.Count(r.Context()); err == nil {
		status.Sessions = n
	}

	rw.Success(status)
}

// HealthLive handles GET /api/v1/health/live. It only proves the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}
