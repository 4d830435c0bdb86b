// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

/*
Package models defines the data structures shared across the application.

It holds the marker and sensor reading records, the API request and response
envelopes, the view DTOs consumed by chart renderers, and the health status
payload. It is the single source of truth for serialized shapes; no other
package defines wire formats.

Key Components:

  - Marker / SensorReading: the stored record and its optional TPMS reading
  - CreateMarkerRequest: validated marker creation payload
  - APIResponse / APIError: standardized response envelope
  - TimeSeriesView, ModelSummaryView, HistogramView, ScatterView,
    HeatmapView: renderer-agnostic chart payloads
  - MarkerStats / HealthStatus: dashboard and monitoring summaries
*/
package models
