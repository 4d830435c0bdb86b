// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package models

import "time"

// Marker is a stored geolocated record, optionally carrying one TPMS sensor
// reading. Markers are immutable after creation; the only mutation the
// repository supports is deletion by id.
//
// Coordinates are stored as submitted. Values outside [-90,90]/[-180,180] are
// not rejected here; plausibility is a presentation concern.
type Marker struct {
	// ID is assigned by the repository on creation and is strictly
	// increasing in insertion order.
	ID int64 `json:"id"`

	// Name is the required text label for the marker.
	Name string `json:"name"`

	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`

	// SensorReading is the optional TPMS reading submitted with the marker.
	// Either all reading fields come from one submitted object, or the
	// reading is nil; partial readings never merge across submissions.
	SensorReading *SensorReading `json:"sensorReading,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// SensorReading holds tire-pressure-monitoring-sensor data attached to a
// marker. Every field is independently optional; an omitted field is nil.
//
// Pressure is in kPa, temperature in degrees Celsius.
type SensorReading struct {
	SensorID    *string  `json:"sensorId,omitempty"`
	Model       *string  `json:"model,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Flags       *string  `json:"flags,omitempty"`
	Pressure    *float64 `json:"pressure,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Integrity   *string  `json:"integrity,omitempty"`
}

// CreateMarkerRequest is the payload accepted by the marker creation endpoint.
// Latitude and longitude are pointers so that a legitimate 0.0 coordinate is
// distinguishable from an absent field.
type CreateMarkerRequest struct {
	Name          string         `json:"name" validate:"required"`
	Latitude      *float64       `json:"lat" validate:"required"`
	Longitude     *float64       `json:"lng" validate:"required"`
	SensorReading *SensorReading `json:"sensorReading" validate:"omitempty"`
}

// MarkerStats summarizes the current marker table for the dashboard.
type MarkerStats struct {
	TotalMarkers      int64    `json:"total_markers"`
	MarkersWithSensor int64    `json:"markers_with_sensor"`
	ValidPressures    int      `json:"valid_pressures"`
	ValidTemperatures int      `json:"valid_temperatures"`
	MeanPressure      *float64 `json:"mean_pressure,omitempty"`
	MeanTemperature   *float64 `json:"mean_temperature,omitempty"`
}
