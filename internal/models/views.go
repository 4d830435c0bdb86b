// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package models

// View DTOs returned by the view builder. Each view is a renderer-agnostic
// bundle of named, ordered series plus derived statistics; no drawing happens
// anywhere in this repository. A frontend (or any charting library) consumes
// these as-is.

// SeriesPoint is one (x, y) pair in a numeric series.
type SeriesPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AnnotatedMax marks the maximum of a series together with the marker id on
// the series' x-axis where it occurs.
type AnnotatedMax struct {
	Value    float64 `json:"value"`
	MarkerID int64   `json:"marker_id"`
}

// TimeSeriesView plots valid pressures and temperatures against marker ids in
// insertion order. The two series are filtered independently: each is plotted
// against the first N marker ids where N is that series' own filtered length,
// so the series are not necessarily aligned to the same markers.
type TimeSeriesView struct {
	Pressure    []SeriesPoint `json:"pressure"`
	Temperature []SeriesPoint `json:"temperature"`

	MeanPressure    float64      `json:"mean_pressure"`
	MeanTemperature float64      `json:"mean_temperature"`
	MaxPressure     AnnotatedMax `json:"max_pressure"`
	MaxTemperature  AnnotatedMax `json:"max_temperature"`
}

// ModelSummaryPoint is one sensor model's aggregate: mean pressure rendered as
// a bar, mean temperature as a line.
type ModelSummaryPoint struct {
	Model           string  `json:"model"`
	MeanPressure    float64 `json:"mean_pressure"`
	MeanTemperature float64 `json:"mean_temperature"`
	SampleCount     int     `json:"sample_count"`
}

// ModelSummaryView holds one data point per sensor model, ordered by model
// name for deterministic output.
type ModelSummaryView struct {
	Models []ModelSummaryPoint `json:"models"`
}

// HistogramBin is one equal-width bucket of the pressure histogram.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// HistogramView buckets the valid-pressure series into equal-width bins
// spanning its observed min/max. An empty input yields Bins == nil.
type HistogramView struct {
	Bins  []HistogramBin `json:"bins"`
	Total int            `json:"total"`
}

// ScatterPoint pairs one marker's pressure and temperature.
type ScatterPoint struct {
	MarkerID    int64   `json:"marker_id"`
	Pressure    float64 `json:"pressure"`
	Temperature float64 `json:"temperature"`
}

// ScatterView holds per-marker (pressure, temperature) pairs. Unlike the time
// series view, both values must come from the same marker.
type ScatterView struct {
	Points []ScatterPoint `json:"points"`
}

// HeatmapPoint is one marker's coordinates with the weight applied by the
// density renderer.
type HeatmapPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Weight    float64 `json:"weight"`
}

// HeatmapView holds the coordinate cloud for density rendering.
type HeatmapView struct {
	Points []HeatmapPoint `json:"points"`
}
