// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// Store persists session snapshots. Implementations hand out independent
// copies: mutating a returned Snapshot never affects the stored one.
type Store interface {
	// Get returns ErrSessionNotFound if the ID is unknown and
	// ErrSessionExpired if the snapshot outlived its TTL.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Save creates or replaces a snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Delete removes a snapshot. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes every expired snapshot and returns how many.
	DeleteExpired(ctx context.Context) (int, error)

	// Count returns the number of stored snapshots, expired ones included.
	Count(ctx context.Context) (int, error)

	Close() error
}

func encode(snap *Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &snap, nil
}
