// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps encoded snapshots in a map. Storing bytes rather than
// pointers gives every caller its own copy. Suitable for development,
// tests and single-instance deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (*Snapshot, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		return nil, ErrSessionExpired
	}
	return decode(entry.data)
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, snap *Snapshot) error {
	data, err := encode(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[snap.ID] = memoryEntry{data: data, expiresAt: snap.ExpiresAt}
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// DeleteExpired implements Store.
func (s *MemoryStore) DeleteExpired(_ context.Context) (int, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, entry := range s.sessions {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(s.sessions, id)
			count++
		}
	}
	return count, nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
