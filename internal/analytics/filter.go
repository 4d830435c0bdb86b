// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

// Package analytics extracts and aggregates sensor reading series from
// markers. Filters here define what the views consider a usable reading;
// the view builder composes them into chart payloads.
package analytics

import (
	"github.com/tyremark/tyremark/internal/models"
)

// Plausible TPMS pressure range in kPa. Readings outside it are sensor
// glitches or decoding artifacts, not real tyre pressures.
const (
	MinValidPressure = 50.0
	MaxValidPressure = 1000.0
)

// UnknownModel is the group key for readings that carry no model field.
const UnknownModel = "unknown"

// ValidPressure reports whether p is a plausible tyre pressure.
// The bounds are inclusive at both ends.
func ValidPressure(p float64) bool {
	return p >= MinValidPressure && p <= MaxValidPressure
}

// ValidPressures extracts the pressures of all markers whose reading has a
// pressure inside the plausible range, in marker order.
func ValidPressures(markers []models.Marker) []float64 {
	values, _ := ValidPressureSeries(markers)
	return values
}

// ValidPressureSeries extracts plausible pressures along with the ids of
// the markers they came from. Both slices are index-aligned.
func ValidPressureSeries(markers []models.Marker) (values []float64, ids []int64) {
	for i := range markers {
		r := markers[i].SensorReading
		if r == nil || r.Pressure == nil {
			continue
		}
		if !ValidPressure(*r.Pressure) {
			continue
		}
		values = append(values, *r.Pressure)
		ids = append(ids, markers[i].ID)
	}
	return values, ids
}

// ValidTemperatures extracts the temperatures of all markers whose reading
// reports one, in marker order. Presence is the only criterion: any
// reported temperature is kept.
func ValidTemperatures(markers []models.Marker) []float64 {
	values, _ := ValidTemperatureSeries(markers)
	return values
}

// ValidTemperatureSeries extracts reported temperatures along with the ids
// of the markers they came from. Both slices are index-aligned.
func ValidTemperatureSeries(markers []models.Marker) (values []float64, ids []int64) {
	for i := range markers {
		r := markers[i].SensorReading
		if r == nil || r.Temperature == nil {
			continue
		}
		values = append(values, *r.Temperature)
		ids = append(ids, markers[i].ID)
	}
	return values, ids
}

// ModelSeries holds the per-model reading series produced by GroupByModel.
type ModelSeries struct {
	Pressures    []float64
	Temperatures []float64
}

// GroupByModel buckets readings by sensor model. Markers without a model
// fall into the UnknownModel bucket; markers without any reading are
// skipped entirely.
//
// A marker contributes only if its pressure passes the plausibility
// filter. Its temperature is collected alongside when present, so the
// temperature series inherits the pressure filter. A reading with a wild
// pressure contributes neither value.
func GroupByModel(markers []models.Marker) map[string]ModelSeries {
	groups := make(map[string]ModelSeries)

	for i := range markers {
		r := markers[i].SensorReading
		if r == nil || r.Pressure == nil || !ValidPressure(*r.Pressure) {
			continue
		}

		model := UnknownModel
		if r.Model != nil && *r.Model != "" {
			model = *r.Model
		}

		series := groups[model]
		series.Pressures = append(series.Pressures, *r.Pressure)
		if r.Temperature != nil {
			series.Temperatures = append(series.Temperatures, *r.Temperature)
		}
		groups[model] = series
	}

	return groups
}
