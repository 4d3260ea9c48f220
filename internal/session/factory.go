// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import (
	"fmt"

	"github.com/tomtom215/cinematch/internal/config"
)

// NewStore builds the backend named by cfg.Backend. An empty backend means memory.
func NewStore(cfg *config.SessionConfig) (Store, error) {
	switch cfg.Backend {
	case "", config.SessionBackendMemory:
		return NewMemoryStore(), nil
	case config.SessionBackendBadger:
		return OpenBadgerStore(cfg.BadgerPath)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
