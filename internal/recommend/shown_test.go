// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"testing"

	"github.com/tomtom215/cinematch/internal/models"
)

func recsOf(items ...models.Item) []Recommendation {
	out := make([]Recommendation, len(items))
	for i := range items {
		out[i] = Recommendation{Item: items[i]}
	}
	return out
}

func TestShownSetMonotonic(t *testing.T) {
	t.Parallel()

	s := NewShownSet()
	if added := s.Record(recsOf(movie(1, 0), movie(2, 0), series(1, 0))); added != 3 {
		t.Errorf("added = %d, want 3", added)
	}
	before := s.Len()

	added := s.Record(recsOf(movie(2, 0), movie(3, 0), movie(3, 0), series(2, 0)))
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
	if s.Len() != before+added {
		t.Errorf("Len = %d, want %d", s.Len(), before+added)
	}
	if !s.Contains(models.Key{ID: 1, Kind: models.KindSeries}) || s.Contains(models.Key{ID: 3, Kind: models.KindSeries}) {
		t.Error("Contains does not use the composite key")
	}

	s.Reset()
	if s.Len() != 0 || s.Contains(models.Key{ID: 1, Kind: models.KindMovie}) {
		t.Error("Reset left entries behind")
	}
	s.Record(recsOf(movie(9, 0)))
	if s.Len() != 1 {
		t.Errorf("Len after reuse = %d", s.Len())
	}
}

func TestShownSetKeysAndRestore(t *testing.T) {
	t.Parallel()

	s := NewShownSet()
	s.Record(recsOf(series(5, 0), movie(4, 0)))

	keys := s.Keys()
	restored := NewShownSet(append(keys, keys[0])...)
	if restored.Len() != 2 {
		t.Fatalf("restored Len = %d", restored.Len())
	}
	if got := restored.Keys(); got[0] != (models.Key{ID: 5, Kind: models.KindSeries}) {
		t.Errorf("order lost: %v", got)
	}
}

func TestShownSetOfferReset(t *testing.T) {
	t.Parallel()

	s := NewShownSet()
	for id := int64(1); id <= ResetOfferThreshold; id++ {
		s.Record(recsOf(movie(id, 0)))
	}
	if s.OfferReset() {
		t.Error("offered at exactly the threshold")
	}
	s.Record(recsOf(movie(99, 0)))
	if !s.OfferReset() {
		t.Error("not offered above the threshold")
	}
}

func TestZeroShownSet(t *testing.T) {
	t.Parallel()

	var s ShownSet
	if s.Contains(models.Key{ID: 1, Kind: models.KindMovie}) {
		t.Error("zero set contains a key")
	}
	s.Record(recsOf(movie(1, 0)))
	if s.Len() != 1 {
		t.Errorf("Len = %d", s.Len())
	}
}
