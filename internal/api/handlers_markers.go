// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tyremark/tyremark/internal/database"
	"github.com/tyremark/tyremark/internal/logging"
	"github.com/tyremark/tyremark/internal/metrics"
	"github.com/tyremark/tyremark/internal/models"
)

// CreateMarker handles POST /api/v1/markers.
// The submitted reading is stored as-is; implausible pressures are accepted
// here and filtered at analytics time.
func (h *Handler) CreateMarker(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	var req models.CreateMarkerRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	marker, err := h.db.InsertMarker(r.Context(), &req)
	metrics.RecordDBQuery("insert", "markers", time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create marker", err)
		return
	}
	metrics.MarkersCreated.Inc()

	logging.Ctx(r.Context()).Info().
		Int64("marker_id", marker.ID).
		Str("name", sanitizeLogValue(marker.Name)).
		Bool("has_reading", marker.SensorReading != nil).
		Msg("Marker created")

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status:   "success",
		Data:     marker,
		Metadata: metadataSince(start),
	})
}

// ListMarkers handles GET /api/v1/markers.
// Markers are returned in insertion order, which is also ascending id order.
func (h *Handler) ListMarkers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	start := time.Now()
	markers, err := h.db.GetMarkers(r.Context())
	metrics.RecordDBQuery("select", "markers", time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list markers", err)
		return
	}
	metrics.MarkersTotal.Set(float64(len(markers)))

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     markers,
		Metadata: metadataSince(start),
	})
}

// DeleteMarker handles DELETE /api/v1/markers/{id}.
// The removed record is returned so clients can render an undo affordance.
// Deleting an unknown id is reported as NOT_FOUND, never as success.
func (h *Handler) DeleteMarker(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	id, err := parsePathID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid marker id", err)
		return
	}

	start := time.Now()
	marker, err := h.db.DeleteMarker(r.Context(), id)
	metrics.RecordDBQuery("delete", "markers", time.Since(start), err)
	if err != nil {
		if errors.Is(err, database.ErrMarkerNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Marker not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete marker", err)
		return
	}
	metrics.MarkersDeleted.Inc()

	logging.Ctx(r.Context()).Info().
		Int64("marker_id", marker.ID).
		Msg("Marker deleted")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     marker,
		Metadata: metadataSince(start),
	})
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	start := time.Now()
	stats, err := h.db.GetMarkerStats(r.Context())
	metrics.RecordDBQuery("select", "markers", time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute marker stats", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     stats,
		Metadata: metadataSince(start),
	})
}
