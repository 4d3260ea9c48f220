// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/models"
)

// Plan lists the discovery queries for a profile in arrival order: per kind
// in scope, each top genre's pages by rating, then the popularity pages.
func Plan(p *TasteProfile, cfg *Config) []catalog.DiscoverQuery {
	genres := p.TopGenres(cfg.TopGenres)
	kinds := p.Scope.Kinds()

	plan := make([]catalog.DiscoverQuery, 0, len(kinds)*(len(genres)*cfg.GenrePages+cfg.PopularPages))
	for _, kind := range kinds {
		minVotes := cfg.minVotes(kind)
		for _, g := range genres {
			for page := 1; page <= cfg.GenrePages; page++ {
				plan = append(plan, catalog.DiscoverQuery{
					Kind:         kind,
					Genre:        g,
					Industry:     p.Industry,
					Sort:         catalog.SortVoteAverage,
					MinVoteCount: minVotes,
					Page:         page,
				})
			}
		}
		for page := 1; page <= cfg.PopularPages; page++ {
			plan = append(plan, catalog.DiscoverQuery{
				Kind:         kind,
				Industry:     p.Industry,
				Sort:         catalog.SortPopularity,
				MinVoteCount: minVotes,
				Page:         page,
			})
		}
	}
	return plan
}

// CandidateCollector gathers the candidate pool for a profile.
type CandidateCollector struct {
	gateway catalog.Gateway
	cfg     *Config
	logger  zerolog.Logger
}

// NewCandidateCollector creates a collector over gw.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCandidateCollector(gw catalog.Gateway, cfg *Config, logger zerolog.Logger) *CandidateCollector {
	return &CandidateCollector{
		gateway: gw,
		cfg:     cfg,
		logger:  logger.With().Str("component", "candidates").Logger(),
	}
}

// Collect runs the plan concurrently and returns once every query finished.
// Items are in plan order and may contain duplicates.
func (c *CandidateCollector) Collect(ctx context.Context, p *TasteProfile) (catalog.PoolResult, error) {
	plan := Plan(p, c.cfg)
	queries := make([]catalog.Query, len(plan))
	for i, q := range plan {
		queries[i] = catalog.Query{
			Name: fmt.Sprintf("discover:%s:%s:%s:%d", q.Kind, q.Genre, q.Sort, q.Page),
			Fetch: func(ctx context.Context) ([]models.Item, error) {
				return c.gateway.DiscoverByGenre(ctx, q)
			},
		}
	}
	return catalog.FanOut(ctx, c.logger, c.cfg.MaxConcurrentFetches, queries)
}
