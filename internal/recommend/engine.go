// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Engine runs scoring passes. It holds no session state and is safe for
// concurrent use; everything session-scoped arrives in the Request.
type Engine struct {
	cfg       *Config
	collector *CandidateCollector
	logger    zerolog.Logger
}

// Request carries the session-scoped inputs of one scoring pass.
type Request struct {
	Profile     *TasteProfile
	Preferences Preferences
	Answer      ClarificationAnswer

	// Shown is read for exclusion and, after a completed pass, written with
	// the returned items. A nil Shown excludes nothing and records nothing.
	Shown *ShownSet
}

// Result is the outcome of a scoring pass.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	PoolSize        int              `json:"pool_size"`
	Queries         int              `json:"queries"`
	FailedQueries   int              `json:"failed_queries"`

	// Degraded is set when at least one catalog query failed.
	Degraded bool `json:"degraded"`

	// Err is ErrDataSourceUnavailable when every query failed.
	Err error `json:"-"`
}

// NewEngine creates an engine that fetches candidates through gw.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(gw catalog.Gateway, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger = logger.With().Str("component", "recommend").Logger()
	return &Engine{
		cfg:       cfg,
		collector: NewCandidateCollector(gw, cfg, logger),
		logger:    logger,
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// Recommend collects candidates, ranks them and records the returned items
// in req.Shown. Catalog failures degrade the result instead of failing it.
// The only errors are ErrNoProfile and the context's own error; on either,
// req.Shown is left untouched.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	if req.Profile == nil {
		return nil, ErrNoProfile
	}
	start := time.Now()

	pool, err := e.collector.Collect(ctx, req.Profile)
	if err != nil {
		return nil, fmt.Errorf("collect candidates: %w", err)
	}

	var shown ShownLookup
	if req.Shown != nil {
		shown = req.Shown
	}
	recs := Rank(pool.Items, req.Profile, &req.Preferences, req.Answer, shown, e.cfg.TopN)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	added := 0
	if req.Shown != nil {
		added = req.Shown.Record(recs)
	}

	res := &Result{
		Recommendations: recs,
		PoolSize:        len(pool.Items),
		Queries:         pool.Queries,
		FailedQueries:   pool.Failed,
		Degraded:        pool.Failed > 0,
	}
	if pool.Unavailable() {
		res.Err = ErrDataSourceUnavailable
	}

	kinds := make([]string, len(recs))
	for i := range recs {
		kinds[i] = string(recs[i].Item.Kind)
	}
	metrics.RecordScoringPass(time.Since(start), res.PoolSize, res.FailedQueries)
	metrics.RecordRecommendations(kinds, res.Degraded)

	e.logger.Debug().
		Int("pool", res.PoolSize).
		Int("queries", res.Queries).
		Int("failed", res.FailedQueries).
		Int("returned", len(recs)).
		Int("newly_shown", added).
		Dur("took", time.Since(start)).
		Msg("Scoring pass complete")

	return res, nil
}
