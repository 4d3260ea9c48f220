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
	"github.com/tomtom215/cinematch/internal/metrics"
)

// SessionSweeper removes expired sessions and reports how many remain.
// Satisfied by *session.Service.
type SessionSweeper interface {
	SweepExpired(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

// SessionSweeperService periodically purges expired sessions.
//
// Expired sessions are also dropped lazily on access, so a missed sweep only
// delays reclaiming storage.
type SessionSweeperService struct {
	sessions SessionSweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewSessionSweeperService creates a sweeper. A non-positive interval
// falls back to one minute.
func NewSessionSweeperService(sessions SessionSweeper, interval time.Duration) *SessionSweeperService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionSweeperService{
		sessions: sessions,
		interval: interval,
		logger:   logging.WithComponent("session-sweeper"),
		name:     "session-sweeper",
	}
}

// Serve sweeps once on start and then on every tick until ctx is done.
// Sweep failures are logged, not returned, so a flaky store does not
// burn through the supervisor's failure budget.
func (s *SessionSweeperService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper starting")

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper stopping")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeperService) sweep(ctx context.Context) {
	start := time.Now()

	expired, err := s.sessions.SweepExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("session sweep failed")
		}
		return
	}

	active, err := s.sessions.Count(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("session count failed")
		}
		return
	}

	metrics.RecordSessionSweep(expired, active)

	event := s.logger.Debug()
	if expired > 0 {
		event = s.logger.Info()
	}
	event.Int("expired", expired).
		Int("active", active).
		Dur("duration", time.Since(start)).
		Msg("session sweep complete")
}

func (s *SessionSweeperService) String() string {
	return s.name
}
