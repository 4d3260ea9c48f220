// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package auth guards session routes.

Sessions are anonymous. Creating one returns a signed token whose subject is
the session ID; every later call must present it as a bearer token, and the
HTTP layer rejects a token whose subject differs from the session in the
path.

Key Components:

  - TokenManager: HS256 token issue and validation (golang-jwt/jwt/v5)
  - BearerToken: Authorization header parsing
  - SecurityHeaders: response hardening for the JSON API

Usage Example:

	tokens, err := auth.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
	    return err
	}
	token, err := tokens.Issue(snap.ID)
*/
package auth
