// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const sessionKeyPrefix = "session:"

// BadgerStore persists snapshots in BadgerDB. Entries carry a native TTL, so
// badger drops them on its own; DeleteExpired catches entries written
// without one.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
	now    func() time.Time
}

// OpenBadgerStore opens (or creates) a BadgerDB at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for sessions: %w", err)
	}
	return &BadgerStore{db: db, ownsDB: true, now: time.Now}, nil
}

// NewBadgerStore wraps an already open database. Close leaves db open.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, now: time.Now}
}

func sessionKey(id string) []byte {
	return []byte(sessionKeyPrefix + id)
}

// Get implements Store.
func (s *BadgerStore) Get(_ context.Context, id string) (*Snapshot, error) {
	var snap *Snapshot

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		return item.Value(func(val []byte) error {
			var derr error
			snap, derr = decode(val)
			return derr
		})
	})
	if err != nil {
		return nil, err
	}

	if snap.IsExpiredAt(s.now()) {
		return nil, ErrSessionExpired
	}
	return snap, nil
}

// Save implements Store.
func (s *BadgerStore) Save(_ context.Context, snap *Snapshot) error {
	data, err := encode(snap)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(sessionKey(snap.ID), data)
		if !snap.ExpiresAt.IsZero() {
			ttl := snap.ExpiresAt.Sub(s.now())
			if ttl <= 0 {
				ttl = time.Second
			}
			e = e.WithTTL(ttl)
		}
		if err := txn.SetEntry(e); err != nil {
			return fmt.Errorf("set session: %w", err)
		}
		return nil
	})
}

// Delete implements Store.
func (s *BadgerStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(sessionKey(id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// DeleteExpired implements Store.
func (s *BadgerStore) DeleteExpired(ctx context.Context) (int, error) {
	now := s.now()
	var expired []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				snap, err := decode(val)
				if err != nil {
					return err
				}
				if snap.IsExpiredAt(now) {
					expired = append(expired, snap.ID)
				}
				return nil
			})
			if err != nil {
				continue
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan sessions: %w", err)
	}

	count := 0
	for _, id := range expired {
		if err := s.Delete(ctx, id); err != nil {
			continue
		}
		count++
	}
	return count, nil
}

// Count implements Store.
func (s *BadgerStore) Count(_ context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Close implements Store. Only a database opened by OpenBadgerStore is closed.
func (s *BadgerStore) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
