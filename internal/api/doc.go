// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api exposes the recommendation flow over HTTP using the chi router.

Every route lives under /api/v1 and answers with the APIResponse envelope:

	{"success": true,  "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "INVALID_STATE", "message": "..."}, "meta": {...}}

POST /api/v1/sessions creates an anonymous session and returns a bearer
token whose subject is the session ID. All other session routes require
that token and reject a token issued for a different session.

A scoring pass whose catalog queries all failed is not an error: the
response carries an empty list and meta.degraded=true.

Middleware, outermost first: request ID, real IP, request logging, panic
recovery, CORS, per-IP rate limiting (httprate), security headers and
Prometheus metrics.
*/
package api
