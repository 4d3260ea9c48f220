// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

// IndustryRequest is the body of POST /sessions/{id}/industry.
type IndustryRequest struct {
	Industry string `json:"industry" validate:"required,oneof=bollywood hollywood both"`
}

// ContentTypeRequest is the body of POST /sessions/{id}/content-type.
type ContentTypeRequest struct {
	ContentType string `json:"content_type" validate:"required,oneof=movie series both"`
}

// ItemRef identifies one catalog item.
type ItemRef struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Kind string `json:"kind" validate:"required,mediakind"`
}

// Key converts the reference to a models.Key.
func (r ItemRef) Key() models.Key {
	return models.Key{ID: r.ID, Kind: models.Kind(r.Kind)}
}

// SelectionRequest is the body of POST /sessions/{id}/selection. The size
// bounds are enforced by the profile builder so an undersized seed reports
// INSUFFICIENT_SEED.
type SelectionRequest struct {
	Items []ItemRef `json:"items" validate:"required,dive"`
}

// Keys returns the selected keys in request order.
func (r *SelectionRequest) Keys() []models.Key {
	keys := make([]models.Key, len(r.Items))
	for i := range r.Items {
		keys[i] = r.Items[i].Key()
	}
	return keys
}

// ClarificationRequest is the body of POST /sessions/{id}/clarification.
type ClarificationRequest struct {
	Answer string `json:"answer" validate:"required,oneof=alone group prefer_movies prefer_series"`
}

// PreferencesRequest is the body of PUT /sessions/{id}/preferences.
type PreferencesRequest struct {
	PreferredGenres  []string `json:"preferred_genres" validate:"max=27,dive,genre"`
	Mood             int      `json:"mood" validate:"min=0,max=100"`
	Pace             int      `json:"pace" validate:"min=0,max=100"`
	Eras             []string `json:"eras" validate:"max=20,dive,decade"`
	EpisodeLength    int      `json:"episode_length" validate:"min=0,max=100"`
	BingePreference  int      `json:"binge_preference" validate:"min=0,max=100"`
	SeasonCommitment int      `json:"season_commitment" validate:"min=0,max=100"`
	DiscoveryStyle   string   `json:"discovery_style" validate:"required,oneof=popular mixed hidden"`
}

// Preferences converts the request to engine preferences.
func (r *PreferencesRequest) Preferences() recommend.Preferences {
	genres := make([]models.Genre, len(r.PreferredGenres))
	for i, g := range r.PreferredGenres {
		genres[i] = models.Genre(g)
	}
	eras := r.Eras
	if eras == nil {
		eras = []string{}
	}
	return recommend.Preferences{
		PreferredGenres:  genres,
		Mood:             r.Mood,
		Pace:             r.Pace,
		Eras:             eras,
		EpisodeLength:    r.EpisodeLength,
		BingePreference:  r.BingePreference,
		SeasonCommitment: r.SeasonCommitment,
		DiscoveryStyle:   recommend.DiscoveryStyle(r.DiscoveryStyle),
	}
}

// FeedbackRequest is the body of POST /sessions/{id}/feedback.
type FeedbackRequest struct {
	ItemRef
	Signal string `json:"signal" validate:"required,oneof=like dislike"`
}

// SearchRequest holds the query parameters of GET /sessions/{id}/search.
type SearchRequest struct {
	Query string `json:"q" validate:"required,min=1,max=200"`
}

// decodeAndValidate reads a JSON body into dst and validates it. It writes
// the error response itself and reports whether the handler may continue.
func decodeAndValidate(rw *ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(rw.w, r, dst); err != nil {
		rw.ValidationError(err.Error(), nil)
		return false
	}
	return validate(rw, dst)
}

// validate writes a VALIDATION_ERROR for an invalid dst.
func validate(rw *ResponseWriter, dst any) bool {
	if verr := validation.ValidateStruct(dst); verr != nil {
		rw.ValidationError(verr.Error(), verr.Details())
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		default:
			return fmt.Errorf("invalid JSON body: %w", err)
		}
	}
	return nil
}
