// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/logging"
)

// ExpiringCache drops stale entries on demand. Satisfied by
// *catalog.CachedGateway.
type ExpiringCache interface {
	CleanupExpired() int
}

// CacheJanitorService evicts expired catalog pages on an interval so a
// quiet server does not hold stale pages until they are next requested.
type CacheJanitorService struct {
	cache    ExpiringCache
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates a janitor. A non-positive interval falls
// back to five minutes.
func NewCacheJanitorService(cache ExpiringCache, interval time.Duration) *CacheJanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheJanitorService{
		cache:    cache,
		interval: interval,
		logger:   logging.WithComponent("cache-janitor"),
		name:     "catalog-cache-janitor",
	}
}

func (c *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := c.cache.CleanupExpired(); n > 0 {
				c.logger.Debug().Int("evicted", n).Msg("expired catalog pages evicted")
			}
		}
	}
}

func (c *CacheJanitorService) String() string {
	return c.name
}
