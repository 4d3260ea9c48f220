// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

// CircuitBreakerGateway wraps a Gateway with a circuit breaker so a
// struggling upstream is not hammered by every scoring pass.
//
// Cancellation and local throttling do not count as failures, nor does a
// missing API key. None of them says anything about upstream health.
type CircuitBreakerGateway struct {
	next   Gateway
	cb     *gobreaker.CircuitBreaker[[]models.Item]
	name   string
	logger zerolog.Logger
}

// NewCircuitBreakerGateway creates the breaker. It trips once at least
// BreakerMinRequests were seen in the interval and the failure ratio reaches
// BreakerFailureRatio.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCircuitBreakerGateway(next Gateway, cfg *config.CatalogConfig, logger zerolog.Logger) *CircuitBreakerGateway {
	name := "catalog-api"
	logger = logger.With().Str("component", "circuit_breaker").Str("breaker", name).Logger()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	minRequests := cfg.BreakerMinRequests
	ratio := cfg.BreakerFailureRatio

	cb := gobreaker.NewCircuitBreaker[[]models.Item](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := failureRatio >= ratio
			if trip {
				logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("Circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},

		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, ErrThrottled) ||
				errors.Is(err, ErrNotConfigured) ||
				errors.Is(err, ErrUnknownGenre)
		},
	})

	return &CircuitBreakerGateway{next: next, cb: cb, name: name, logger: logger}
}

// State returns the current breaker state as a string.
func (g *CircuitBreakerGateway) State() string {
	return stateToString(g.cb.State())
}

func (g *CircuitBreakerGateway) execute(fn func() ([]models.Item, error)) ([]models.Item, error) {
	items, err := g.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(g.name, "rejected").Inc()
			g.logger.Debug().Err(err).Msg("Request rejected")
			return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(g.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(g.name, "success").Inc()
	return items, nil
}

// Popular implements Gateway.
func (g *CircuitBreakerGateway) Popular(ctx context.Context, kind models.Kind, industry models.Industry, page int) ([]models.Item, error) {
	return g.execute(func() ([]models.Item, error) {
		return g.next.Popular(ctx, kind, industry, page)
	})
}

// Search implements Gateway.
func (g *CircuitBreakerGateway) Search(ctx context.Context, kind models.Kind, query string, industry models.Industry) ([]models.Item, error) {
	return g.execute(func() ([]models.Item, error) {
		return g.next.Search(ctx, kind, query, industry)
	})
}

// DiscoverByGenre implements Gateway.
func (g *CircuitBreakerGateway) DiscoverByGenre(ctx context.Context, q DiscoverQuery) ([]models.Item, error) {
	return g.execute(func() ([]models.Item, error) {
		return g.next.DiscoverByGenre(ctx, q)
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
