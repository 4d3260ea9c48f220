// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services adapts CineMatch components to suture's Serve(ctx) model.

HTTPServerService owns the API listener and logs the address it bound.
On cancel it drains in-flight requests within a deadline.

SessionSweeperService purges expired sessions on an interval and updates
cinematch_active_sessions and cinematch_sessions_expired_total.

CacheJanitorService evicts expired catalog pages between requests.

Every wrapper implements fmt.Stringer so suture's event log can name it.
*/
package services
