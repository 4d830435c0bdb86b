// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package models

// HealthStatus reports service health for monitoring and orchestration probes.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	MarkerCount       int64   `json:"marker_count"`
	Uptime            float64 `json:"uptime_seconds"`
}
