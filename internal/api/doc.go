// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

// Package api implements the HTTP surface of the marker store: marker CRUD,
// marker statistics, the five analytics view endpoints, and health probes.
//
// Routing uses Chi with production-hardened middleware from the Chi ecosystem
// (go-chi/cors for CORS, go-chi/httprate for per-IP rate limiting). Every
// response is a models.APIResponse envelope serialized with goccy/go-json.
//
// Error mapping is uniform across handlers:
//
//	validation failure            -> 400 VALIDATION_ERROR
//	unknown marker id             -> 404 NOT_FOUND
//	empty analytics input         -> 422 INSUFFICIENT_DATA
//	storage failure               -> 500 DATABASE_ERROR
//	wrong HTTP method             -> 405 METHOD_NOT_ALLOWED
package api
