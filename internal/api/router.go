// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinematch/internal/auth"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/middleware"
)

// RouterConfig holds the middleware settings.
type RouterConfig struct {
	CORSAllowedOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// RouterConfigFromSecurity builds a RouterConfig from the security section.
func RouterConfigFromSecurity(sec *config.SecurityConfig) RouterConfig {
	return RouterConfig{
		CORSAllowedOrigins: sec.CORSOrigins,
		RateLimitRequests:  sec.RateLimitReqs,
		RateLimitWindow:    sec.RateLimitWindow,
		RateLimitDisabled:  sec.RateLimitDisabled,
	}
}

// NewRouter wires every route and the middleware stack.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         86400,
	}))
	r.Use(middleware.Metrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.SecurityHeaders)
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/health", h.Health)
		r.Get("/health/live", h.HealthLive)

		r.Group(func(r chi.Router) {
			r.Use(rateLimit(cfg))

			r.Post("/sessions", h.CreateSession)

			r.Route("/sessions/{id}", func(r chi.Router) {
				r.Use(h.requireSession)

				r.Get("/", h.GetSession)
				r.Delete("/", h.DeleteSession)
				r.Post("/begin", h.Begin)
				r.Post("/industry", h.ChooseIndustry)
				r.Post("/content-type", h.ChooseContentType)
				r.Get("/popular", h.Popular)
				r.Get("/search", h.Search)
				r.Post("/selection", h.SubmitSelection)
				r.Post("/clarification", h.AnswerClarification)
				r.Put("/preferences", h.SetPreferences)
				r.Post("/recommendations", h.Recommend)
				r.Post("/refine", h.Refine)
				r.Post("/reset-pool", h.ResetPool)
				r.Post("/feedback", h.SubmitFeedback)
				r.Post("/back", h.Back)
				r.Post("/start-over", h.StartOver)
			})
		})
	})

	return r
}

// rateLimit limits requests per client IP. chimiddleware.RealIP runs first,
// so the key honours X-Forwarded-For.
func rateLimit(cfg RouterConfig) func(http.Handler) http.Handler {
	if cfg.RateLimitDisabled || cfg.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			NewResponseWriter(w, r).Error(http.StatusTooManyRequests, ErrCodeTooManyRequests, "rate limit exceeded")
		}),
	)
}

// requireSession checks the bearer token and that its subject is the
// session in the path.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := NewResponseWriter(w, r)

		raw, err := auth.BearerToken(r)
		if err != nil {
			rw.Unauthorized(err.Error())
			return
		}
		claims, err := h.tokens.Validate(raw)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			rw.Unauthorized("invalid or expired token")
			return
		}
		id := sessionID(r)
		if claims.SessionID() != id {
			rw.Error(http.StatusForbidden, ErrCodeForbidden, "token was issued for a different session")
			return
		}

		ctx := auth.ContextWithClaims(r.Context(), claims)
		ctx = logging.ContextWithSessionID(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
