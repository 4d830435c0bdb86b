// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tyremark/tyremark/internal/analytics"
	"github.com/tyremark/tyremark/internal/metrics"
	"github.com/tyremark/tyremark/internal/models"
	"github.com/tyremark/tyremark/internal/views"
)

// viewBuilder builds one analytics view from the full marker set.
type viewBuilder func(markers []models.Marker) (interface{}, error)

// serveView loads all markers and runs the given builder, mapping an
// insufficient-data result to 422 so clients can distinguish "nothing to
// plot yet" from a real failure.
func (h *Handler) serveView(w http.ResponseWriter, r *http.Request, view string, build viewBuilder) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	start := time.Now()
	markers, err := h.db.GetMarkers(r.Context())
	metrics.RecordDBQuery("select", "markers", time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load markers", err)
		return
	}

	buildStart := time.Now()
	result, err := build(markers)
	metrics.RecordViewBuild(view, time.Since(buildStart))
	if err != nil {
		if errors.Is(err, analytics.ErrInsufficientData) {
			metrics.ViewInsufficientData.WithLabelValues(view).Inc()
			respondError(w, http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to build view", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     result,
		Metadata: metadataSince(start),
	})
}

// TimeSeriesView handles GET /api/v1/views/time-series.
func (h *Handler) TimeSeriesView(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "time_series", func(markers []models.Marker) (interface{}, error) {
		return views.TimeSeries(markers)
	})
}

// ModelSummaryView handles GET /api/v1/views/model-summary.
func (h *Handler) ModelSummaryView(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "model_summary", func(markers []models.Marker) (interface{}, error) {
		return views.ModelSummary(markers)
	})
}

// PressureHistogramView handles GET /api/v1/views/pressure-histogram.
// An empty marker set is a valid empty histogram, not an error.
func (h *Handler) PressureHistogramView(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "pressure_histogram", func(markers []models.Marker) (interface{}, error) {
		return views.PressureHistogram(markers)
	})
}

// ScatterView handles GET /api/v1/views/pressure-temperature.
func (h *Handler) ScatterView(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "pressure_temperature", func(markers []models.Marker) (interface{}, error) {
		return views.PressureTemperatureScatter(markers)
	})
}

// HeatmapView handles GET /api/v1/views/heatmap.
func (h *Handler) HeatmapView(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "heatmap", func(markers []models.Marker) (interface{}, error) {
		return views.HeatmapPoints(markers)
	})
}
