// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the media kind of an item.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// Valid reports whether k is movie or series.
func (k Kind) Valid() bool {
	return k == KindMovie || k == KindSeries
}

// Genre is a display label from the catalog genre table, e.g. "Drama".
type Genre string

// Key identifies an item across kinds.
type Key struct {
	ID   int64 `json:"id"`
	Kind Kind  `json:"kind"`
}

// String renders the key as "kind:id", the form used in map-typed JSON and storage.
func (k Key) String() string {
	return string(k.Kind) + ":" + strconv.FormatInt(k.ID, 10)
}

// ParseKey parses the "kind:id" form produced by Key.String.
func ParseKey(s string) (Key, error) {
	kind, id, ok := strings.Cut(s, ":")
	if !ok {
		return Key{}, fmt.Errorf("invalid item key %q", s)
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("invalid item key %q: %w", s, err)
	}
	k := Key{ID: n, Kind: Kind(kind)}
	if !k.Kind.Valid() {
		return Key{}, fmt.Errorf("invalid item kind in key %q", s)
	}
	return k, nil
}

// MarshalText lets Key be used as a JSON object key.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (k *Key) UnmarshalText(b []byte) error {
	parsed, err := ParseKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Item is a normalized catalog record. Nothing outside the catalog package
// ever sees the raw upstream payload.
type Item struct {
	ID             int64   `json:"id"`
	Kind           Kind    `json:"kind"`
	Title          string  `json:"title"`
	Year           int     `json:"year,omitempty"` // 0 when the catalog has no date
	Genres         []Genre `json:"genres"`         // distinct, in catalog order
	OriginLanguage string  `json:"origin_language"`
	IsLocalOrigin  bool    `json:"is_local_origin"`
	Popularity     float64 `json:"popularity"`
	VoteAverage    float64 `json:"vote_average"`
	VoteCount      int     `json:"vote_count"`
	Overview       string  `json:"overview,omitempty"`
	PosterURL      string  `json:"poster_url,omitempty"`
}

// Key returns the item's identity.
func (it *Item) Key() Key {
	return Key{ID: it.ID, Kind: it.Kind}
}

// HasGenre reports whether g is one of the item's genres.
func (it *Item) HasGenre(g Genre) bool {
	for _, have := range it.Genres {
		if have == g {
			return true
		}
	}
	return false
}

// Decade returns the era bucket label for the item's year, e.g. "1990s".
// Items without a year belong to no decade and return "".
func (it *Item) Decade() string {
	return DecadeOf(it.Year)
}

// DecadeOf formats the decade containing year, or "" for a non-positive year.
func DecadeOf(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year/10*10) + "s"
}
