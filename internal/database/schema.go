// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the marker table, its id sequence, and indexes.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements.
func getTableCreationQueries() []string {
	return []string{
		// Ids come from a sequence so they stay monotonic across deletes.
		// DuckDB sequences never hand out a value twice.
		`CREATE SEQUENCE IF NOT EXISTS marker_id_seq START 1;`,

		// Markers table. Sensor columns are nullable as a group: a marker
		// either carries a full reading submission or none at all.
		// has_reading distinguishes "reading with all fields null" from
		// "no reading submitted".
		`CREATE TABLE IF NOT EXISTS markers (
			-- Core fields
			id BIGINT PRIMARY KEY DEFAULT nextval('marker_id_seq'),
			name TEXT NOT NULL,
			latitude DOUBLE NOT NULL,
			longitude DOUBLE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

			-- TPMS sensor reading (all nullable)
			has_reading BOOLEAN NOT NULL DEFAULT FALSE,
			sensor_id TEXT,
			sensor_model TEXT,
			sensor_type TEXT,
			sensor_flags TEXT,
			pressure DOUBLE,
			temperature DOUBLE,
			status TEXT,
			integrity TEXT
		);`,

		`CREATE INDEX IF NOT EXISTS idx_markers_sensor_model ON markers(sensor_model);`,
		`CREATE INDEX IF NOT EXISTS idx_markers_created_at ON markers(created_at);`,
	}
}
