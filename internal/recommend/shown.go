// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"slices"

	"github.com/tomtom215/cinematch/internal/models"
)

// ResetOfferThreshold is the shown count above which the UI offers a pool reset.
const ResetOfferThreshold = 10

// ShownSet records every item surfaced in a session. It only grows until
// Reset. Not safe for concurrent use; sessions serialize access.
type ShownSet struct {
	keys  map[models.Key]struct{}
	order []models.Key
}

// NewShownSet returns a set holding keys, in order, without duplicates.
func NewShownSet(keys ...models.Key) *ShownSet {
	s := &ShownSet{keys: make(map[models.Key]struct{}, len(keys))}
	for _, k := range keys {
		s.add(k)
	}
	return s
}

// Record adds the recommendations' items and returns how many were new.
func (s *ShownSet) Record(recs []Recommendation) int {
	added := 0
	for i := range recs {
		if s.add(recs[i].Item.Key()) {
			added++
		}
	}
	return added
}

// Contains implements ShownLookup.
func (s *ShownSet) Contains(k models.Key) bool {
	_, ok := s.keys[k]
	return ok
}

// Len returns the number of distinct keys recorded.
func (s *ShownSet) Len() int {
	return len(s.order)
}

// Reset empties the set.
func (s *ShownSet) Reset() {
	clear(s.keys)
	s.order = s.order[:0]
}

// Keys returns the recorded keys in recording order.
func (s *ShownSet) Keys() []models.Key {
	return slices.Clone(s.order)
}

// OfferReset reports whether enough has been shown to suggest a reset.
func (s *ShownSet) OfferReset() bool {
	return s.Len() > ResetOfferThreshold
}

func (s *ShownSet) add(k models.Key) bool {
	if _, ok := s.keys[k]; ok {
		return false
	}
	if s.keys == nil {
		s.keys = make(map[models.Key]struct{})
	}
	s.keys[k] = struct{}{}
	s.order = append(s.order, k)
	return true
}
