// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tyremark/tyremark/internal/models"
)

// markerColumns is the column list shared by all marker queries.
// Scan order in scanMarker must match.
const markerColumns = `id, name, latitude, longitude, created_at,
	has_reading, sensor_id, sensor_model, sensor_type, sensor_flags,
	pressure, temperature, status, integrity`

// InsertMarker stores a new marker and returns it with its assigned id.
// The id comes from the marker sequence, so later inserts always receive
// larger ids than earlier ones. The write is checkpointed before returning
// so it survives a process crash.
func (db *DB) InsertMarker(ctx context.Context, req *models.CreateMarkerRequest) (*models.Marker, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var (
		hasReading                         bool
		sensorID, model, sensorType, flags *string
		pressure, temperature              *float64
		status, integrity                  *string
	)
	if r := req.SensorReading; r != nil {
		hasReading = true
		sensorID, model, sensorType, flags = r.SensorID, r.Model, r.Type, r.Flags
		pressure, temperature = r.Pressure, r.Temperature
		status, integrity = r.Status, r.Integrity
	}

	query := `INSERT INTO markers (
		name, latitude, longitude,
		has_reading, sensor_id, sensor_model, sensor_type, sensor_flags,
		pressure, temperature, status, integrity
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING id, created_at`

	var (
		id        int64
		createdAt time.Time
	)
	err := db.conn.QueryRowContext(ctx, query,
		req.Name, *req.Latitude, *req.Longitude,
		hasReading, sensorID, model, sensorType, flags,
		pressure, temperature, status, integrity,
	).Scan(&id, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert marker: %w", err)
	}

	// Synchronous commit: flush the WAL so the row is durable.
	if err := db.Checkpoint(ctx); err != nil {
		return nil, fmt.Errorf("failed to persist marker %d: %w", id, err)
	}

	marker := &models.Marker{
		ID:            id,
		Name:          req.Name,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		SensorReading: req.SensorReading,
		CreatedAt:     createdAt,
	}
	return marker, nil
}

// GetMarkers returns all markers ordered by id ascending, which is
// insertion order.
func (db *DB) GetMarkers(ctx context.Context) ([]models.Marker, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT ` + markerColumns + ` FROM markers ORDER BY id ASC`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query markers: %w", err)
	}
	defer closeQuietly(rows)

	markers := make([]models.Marker, 0)
	for rows.Next() {
		marker, err := scanMarker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan marker: %w", err)
		}
		markers = append(markers, *marker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate markers: %w", err)
	}

	return markers, nil
}

// GetMarker returns a single marker by id, or ErrMarkerNotFound.
func (db *DB) GetMarker(ctx context.Context, id int64) (*models.Marker, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT ` + markerColumns + ` FROM markers WHERE id = ?`

	marker, err := scanMarker(db.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMarkerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get marker %d: %w", id, err)
	}

	return marker, nil
}

// DeleteMarker removes a marker by id and returns the removed record.
// Returns ErrMarkerNotFound if no marker has the given id. Ids of deleted
// markers are never reused.
func (db *DB) DeleteMarker(ctx context.Context, id int64) (*models.Marker, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `DELETE FROM markers WHERE id = ? RETURNING ` + markerColumns

	marker, err := scanMarker(db.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMarkerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete marker %d: %w", id, err)
	}

	if err := db.Checkpoint(ctx); err != nil {
		return nil, fmt.Errorf("failed to persist deletion of marker %d: %w", id, err)
	}

	return marker, nil
}

// CountMarkers returns the total number of stored markers.
func (db *DB) CountMarkers(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var count int64
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM markers").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count markers: %w", err)
	}
	return count, nil
}

// GetMarkerStats returns aggregate statistics over the marker store.
// Pressure means only cover readings inside the plausible TPMS range;
// temperature means cover every reported temperature.
func (db *DB) GetMarkerStats(ctx context.Context) (*models.MarkerStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE has_reading) AS with_sensor,
		COUNT(*) FILTER (WHERE pressure BETWEEN 50 AND 1000) AS valid_pressures,
		COUNT(*) FILTER (WHERE temperature IS NOT NULL) AS valid_temperatures,
		AVG(pressure) FILTER (WHERE pressure BETWEEN 50 AND 1000) AS mean_pressure,
		AVG(temperature) AS mean_temperature
	FROM markers`

	stats := &models.MarkerStats{}
	var meanPressure, meanTemperature sql.NullFloat64
	err := db.conn.QueryRowContext(ctx, query).Scan(
		&stats.TotalMarkers,
		&stats.MarkersWithSensor,
		&stats.ValidPressures,
		&stats.ValidTemperatures,
		&meanPressure,
		&meanTemperature,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute marker stats: %w", err)
	}

	if meanPressure.Valid {
		stats.MeanPressure = &meanPressure.Float64
	}
	if meanTemperature.Valid {
		stats.MeanTemperature = &meanTemperature.Float64
	}

	return stats, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanMarker.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanMarker reads one marker row, reconstructing the optional sensor
// reading from the nullable columns.
func scanMarker(row rowScanner) (*models.Marker, error) {
	var (
		marker                             models.Marker
		hasReading                         bool
		sensorID, model, sensorType, flags sql.NullString
		pressure, temperature              sql.NullFloat64
		status, integrity                  sql.NullString
	)

	err := row.Scan(
		&marker.ID, &marker.Name, &marker.Latitude, &marker.Longitude, &marker.CreatedAt,
		&hasReading, &sensorID, &model, &sensorType, &flags,
		&pressure, &temperature, &status, &integrity,
	)
	if err != nil {
		return nil, err
	}

	if hasReading {
		reading := &models.SensorReading{}
		if sensorID.Valid {
			reading.SensorID = &sensorID.String
		}
		if model.Valid {
			reading.Model = &model.String
		}
		if sensorType.Valid {
			reading.Type = &sensorType.String
		}
		if flags.Valid {
			reading.Flags = &flags.String
		}
		if pressure.Valid {
			reading.Pressure = &pressure.Float64
		}
		if temperature.Valid {
			reading.Temperature = &temperature.Float64
		}
		if status.Valid {
			reading.Status = &status.String
		}
		if integrity.Valid {
			reading.Integrity = &integrity.String
		}
		marker.SensorReading = reading
	}

	return &marker, nil
}
