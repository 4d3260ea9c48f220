// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package validation checks request bodies with go-playground/validator v10.
//
// A single validator instance is shared by the process; it caches struct
// metadata and is safe for concurrent use. Besides the built-in tags it
// understands:
//
//   - genre: a genre name from the catalog table
//   - decade: an era label such as "1990s"
//   - mediakind: "movie" or "series"
//
// Example:
//
//	type FeedbackRequest struct {
//	    ID     int64  `json:"id" validate:"required,gt=0"`
//	    Kind   string `json:"kind" validate:"required,mediakind"`
//	    Signal string `json:"signal" validate:"required,oneof=like dislike"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    // respond with VALIDATION_ERROR and verr.Details()
//	}
package validation
