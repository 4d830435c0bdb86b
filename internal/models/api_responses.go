// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package models

import (
	"time"
)

// APIResponse represents the standardized response wrapper used by all HTTP
// endpoints. It provides a consistent structure for both successful and error
// responses, with metadata for observability.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"id": 3, "name": "front-left", "lat": 52.37, "lng": 4.89},
//	  "metadata": {
//	    "timestamp": "2026-08-28T12:00:00Z",
//	    "query_time_ms": 4
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "INSUFFICIENT_DATA",
//	    "message": "no valid pressure readings"
//	  },
//	  "metadata": {"timestamp": "2026-08-28T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability. QueryTimeMS reports
// database and view computation time in milliseconds.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured details.
// Provides a consistent error format across all API endpoints.
//
// Common error codes:
//   - VALIDATION_ERROR: Missing or malformed input fields
//   - NOT_FOUND: Resource doesn't exist
//   - INSUFFICIENT_DATA: A view has no qualifying readings
//   - DATABASE_ERROR: Query execution failure
//   - METHOD_NOT_ALLOWED: Wrong HTTP method
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
