// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package logging provides the zerolog-based structured logger shared by
// every CineMatch component.
//
// A single process-wide logger is configured at startup with Init. Components
// derive child loggers tagged with their name:
//
//	logger := logging.WithComponent("catalog")
//	logger.Info().Int("page", 2).Msg("Fetched discover page")
//
// Request handlers log through Ctx, which attaches the request and session
// identifiers carried by the context:
//
//	ctx = logging.ContextWithSessionID(ctx, sessionID)
//	logging.Ctx(ctx).Info().Msg("Recommendations generated")
//
// The supervisor tree expects a log/slog logger. NewSlogLogger returns one
// whose records are written through the same zerolog sink.
//
// Always terminate event chains with Msg or Send, otherwise nothing is emitted.
package logging
