// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/session"
	"github.com/tomtom215/cinematch/internal/wizard"
)

// errorMapping ties a domain sentinel to its HTTP status and code.
type errorMapping struct {
	target error
	status int
	code   string
}

// errorMappings is checked in order with errors.Is.
var errorMappings = []errorMapping{
	{session.ErrSessionNotFound, http.StatusNotFound, ErrCodeNotFound},
	{session.ErrSessionExpired, http.StatusNotFound, ErrCodeNotFound},
	{wizard.ErrInvalidTransition, http.StatusConflict, ErrCodeInvalidState},
	{session.ErrWrongState, http.StatusConflict, ErrCodeInvalidState},
	{recommend.ErrNoProfile, http.StatusConflict, ErrCodeInvalidState},
	{recommend.ErrInsufficientSeed, http.StatusUnprocessableEntity, ErrCodeInsufficientSeed},
	{recommend.ErrSeedTooLarge, http.StatusBadRequest, ErrCodeValidation},
	{recommend.ErrDuplicateSeed, http.StatusBadRequest, ErrCodeValidation},
	{recommend.ErrUnknownItem, http.StatusBadRequest, ErrCodeValidation},
	{recommend.ErrInvalidPreferences, http.StatusBadRequest, ErrCodeValidation},
	{session.ErrInvalidAnswer, http.StatusBadRequest, ErrCodeValidation},
	{session.ErrInvalidChoice, http.StatusBadRequest, ErrCodeValidation},
	{session.ErrEmptyQuery, http.StatusBadRequest, ErrCodeValidation},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, ErrCodeTimeout},
	{context.Canceled, http.StatusRequestTimeout, ErrCodeTimeout},
}

// writeServiceError maps err to a response. Unknown errors become a 500.
func writeServiceError(rw *ResponseWriter, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			rw.Error(m.status, m.code, err.Error())
			return
		}
	}
	rw.InternalError(err)
}
