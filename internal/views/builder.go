// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

// Package views assembles renderer-agnostic chart payloads from the
// current marker set. Every builder is a pure function: it recomputes from
// the full marker slice on each call and holds no state between calls.
package views

import (
	"fmt"
	"sort"

	"github.com/tyremark/tyremark/internal/analytics"
	"github.com/tyremark/tyremark/internal/models"
)

// HistogramBins is the fixed bucket count for the pressure histogram.
const HistogramBins = 20

// TimeSeries builds the pressure and temperature line series with mean and
// max annotations.
//
// The x axis is marker ids in insertion order, restricted independently
// per series: each series plots against the first N ids where N is that
// series' own filtered length. The two series are therefore not
// necessarily aligned to the same markers. This mirrors the established
// chart behavior and renderers depend on it.
//
// Fails with analytics.ErrInsufficientData if either filtered series is
// empty.
func TimeSeries(markers []models.Marker) (*models.TimeSeriesView, error) {
	pressures := analytics.ValidPressures(markers)
	temperatures := analytics.ValidTemperatures(markers)

	if len(pressures) == 0 {
		return nil, fmt.Errorf("time series pressures: %w", analytics.ErrInsufficientData)
	}
	if len(temperatures) == 0 {
		return nil, fmt.Errorf("time series temperatures: %w", analytics.ErrInsufficientData)
	}

	allIDs := make([]int64, len(markers))
	for i := range markers {
		allIDs[i] = markers[i].ID
	}

	view := &models.TimeSeriesView{
		Pressure:    zipSeries(allIDs, pressures),
		Temperature: zipSeries(allIDs, temperatures),
	}

	var err error
	if view.MeanPressure, err = analytics.Mean(pressures); err != nil {
		return nil, err
	}
	if view.MeanTemperature, err = analytics.Mean(temperatures); err != nil {
		return nil, err
	}

	// Max annotations reference the same first-N id axis the series are
	// plotted against, so the marker callout lands on the plotted point.
	maxP, maxPID, err := analytics.MaxWithID(pressures, allIDs[:len(pressures)])
	if err != nil {
		return nil, err
	}
	maxT, maxTID, err := analytics.MaxWithID(temperatures, allIDs[:len(temperatures)])
	if err != nil {
		return nil, err
	}
	view.MaxPressure = models.AnnotatedMax{Value: maxP, MarkerID: maxPID}
	view.MaxTemperature = models.AnnotatedMax{Value: maxT, MarkerID: maxTID}

	return view, nil
}

// zipSeries pairs the first len(values) ids with values.
func zipSeries(ids []int64, values []float64) []models.SeriesPoint {
	points := make([]models.SeriesPoint, len(values))
	for i, v := range values {
		points[i] = models.SeriesPoint{X: float64(ids[i]), Y: v}
	}
	return points
}

// ModelSummary builds one data point per sensor model: mean pressure and
// mean temperature over that model's readings, with the sample count.
// Models are sorted by name for deterministic output; the unknown bucket
// sorts with the rest.
//
// A model group whose temperature series is empty fails with
// analytics.ErrInsufficientData, matching the per-group mean policy.
func ModelSummary(markers []models.Marker) (*models.ModelSummaryView, error) {
	groups := analytics.GroupByModel(markers)

	pressureGroups := make(map[string][]float64, len(groups))
	temperatureGroups := make(map[string][]float64, len(groups))
	for model, series := range groups {
		pressureGroups[model] = series.Pressures
		temperatureGroups[model] = series.Temperatures
	}

	meanPressures, err := analytics.MeanByGroup(pressureGroups)
	if err != nil {
		return nil, fmt.Errorf("model summary pressures: %w", err)
	}
	meanTemperatures, err := analytics.MeanByGroup(temperatureGroups)
	if err != nil {
		return nil, fmt.Errorf("model summary temperatures: %w", err)
	}

	names := make([]string, 0, len(groups))
	for model := range groups {
		names = append(names, model)
	}
	sort.Strings(names)

	points := make([]models.ModelSummaryPoint, len(names))
	for i, model := range names {
		points[i] = models.ModelSummaryPoint{
			Model:           model,
			MeanPressure:    meanPressures[model],
			MeanTemperature: meanTemperatures[model],
			SampleCount:     len(groups[model].Pressures),
		}
	}

	return &models.ModelSummaryView{Models: points}, nil
}

// PressureHistogram buckets the valid-pressure series into 20 equal-width
// bins spanning its observed min and max.
//
// An empty series is a valid, empty histogram, not a failure. When all
// values are identical the range is degenerate and every value lands in
// the first bin.
func PressureHistogram(markers []models.Marker) (*models.HistogramView, error) {
	pressures := analytics.ValidPressures(markers)
	if len(pressures) == 0 {
		return &models.HistogramView{Bins: []models.HistogramBin{}, Total: 0}, nil
	}

	minVal, maxVal := pressures[0], pressures[0]
	for _, p := range pressures[1:] {
		if p < minVal {
			minVal = p
		}
		if p > maxVal {
			maxVal = p
		}
	}

	bins := make([]models.HistogramBin, HistogramBins)
	width := (maxVal - minVal) / HistogramBins
	for i := range bins {
		bins[i].Lower = minVal + width*float64(i)
		bins[i].Upper = minVal + width*float64(i+1)
	}
	// Pin the last upper edge to the true max to avoid float drift.
	bins[HistogramBins-1].Upper = maxVal

	for _, p := range pressures {
		idx := 0
		if width > 0 {
			idx = int((p - minVal) / width)
			if idx >= HistogramBins {
				idx = HistogramBins - 1 // max value belongs to the last bin
			}
		}
		bins[idx].Count++
	}

	return &models.HistogramView{Bins: bins, Total: len(pressures)}, nil
}

// PressureTemperatureScatter builds paired (pressure, temperature) points
// restricted to markers where BOTH the pressure is plausible AND a
// temperature is present. Unlike the time series, each point comes from a
// single marker. An empty result is valid.
func PressureTemperatureScatter(markers []models.Marker) (*models.ScatterView, error) {
	points := make([]models.ScatterPoint, 0)
	for i := range markers {
		r := markers[i].SensorReading
		if r == nil || r.Pressure == nil || r.Temperature == nil {
			continue
		}
		if !analytics.ValidPressure(*r.Pressure) {
			continue
		}
		points = append(points, models.ScatterPoint{
			MarkerID:    markers[i].ID,
			Pressure:    *r.Pressure,
			Temperature: *r.Temperature,
		})
	}

	return &models.ScatterView{Points: points}, nil
}

// HeatmapPoints builds (latitude, longitude) points for every marker.
// Fails with analytics.ErrInsufficientData when there are no markers.
func HeatmapPoints(markers []models.Marker) (*models.HeatmapView, error) {
	if len(markers) == 0 {
		return nil, fmt.Errorf("heatmap points: %w", analytics.ErrInsufficientData)
	}

	points := make([]models.HeatmapPoint, len(markers))
	for i := range markers {
		points[i] = models.HeatmapPoint{
			Latitude:  markers[i].Latitude,
			Longitude: markers[i].Longitude,
			Weight:    1.0,
		}
	}

	return &models.HeatmapView{Points: points}, nil
}
