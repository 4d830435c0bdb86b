// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tyremark/tyremark/internal/config"
	"github.com/tyremark/tyremark/internal/database"
	"github.com/tyremark/tyremark/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{
			Path:                   ":memory:",
			MaxMemory:              "512MB",
			Threads:                2,
			PreserveInsertionOrder: true,
		},
		Server: config.ServerConfig{
			Host:        "127.0.0.1",
			Port:        3857,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		API: config.APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: config.SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
		},
	}
}

func setupTestAPI(t *testing.T) (*database.DB, http.Handler) {
	t.Helper()

	cfg := testConfig()
	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	handler := NewHandler(db, cfg)
	return db, NewRouter(handler, cfg).Setup()
}

// doJSON issues a request against the router and decodes the envelope.
func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, *models.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return rec, &resp
}

func markerPayload(name string, pressure, temperature *float64, model *string) map[string]interface{} {
	reading := map[string]interface{}{}
	if pressure != nil {
		reading["pressure"] = *pressure
	}
	if temperature != nil {
		reading["temperature"] = *temperature
	}
	if model != nil {
		reading["model"] = *model
	}
	return map[string]interface{}{
		"name":          name,
		"lat":           51.5,
		"lng":           -0.12,
		"sensorReading": reading,
	}
}

func ptrF64(v float64) *float64 { return &v }
func ptrStr(v string) *string   { return &v }

func TestCreateAndListMarkers(t *testing.T) {
	t.Parallel()
	_, router := setupTestAPI(t)

	for i := 1; i <= 3; i++ {
		rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/markers", markerPayload(
			fmt.Sprintf("marker-%d", i), ptrF64(float64(200+i)), ptrF64(15), ptrStr("Schrader")))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if resp.Status != "success" {
			t.Fatalf("expected success status, got %q", resp.Status)
		}
	}

	rec, resp := doJSON(t, router, http.MethodGet, "/api/v1/markers", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("failed to remarshal data: %v", err)
	}
	var markers []models.Marker
	if err := json.Unmarshal(data, &markers); err != nil {
		t.Fatalf("failed to decode markers: %v", err)
	}

	if len(markers) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(markers))
	}
	for i, m := range markers {
		if m.ID != int64(i+1) {
			t.Errorf("marker %d: expected id %d, got %d", i, i+1, m.ID)
		}
		if m.SensorReading == nil || m.SensorReading.Pressure == nil {
			t.Errorf("marker %d: expected sensor reading with pressure", i)
		}
	}

	if rec.Header().Get("ETag") == "" {
		t.Error("expected ETag header on list response")
	}
}

func TestCreateMarkerValidation(t *testing.T) {
	t.Parallel()
	_, router := setupTestAPI(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "missing name",
			body: map[string]interface{}{"lat": 1.0, "lng": 2.0},
		},
		{
			name: "missing latitude",
			body: map[string]interface{}{"name": "m", "lng": 2.0},
		},
		{
			name: "missing longitude",
			body: map[string]interface{}{"name": "m", "lat": 1.0},
		},
		{
			name: "empty body",
			body: map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doJSON(t, router, http.MethodPost, "/api/v1/markers", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected VALIDATION_ERROR, got %+v", resp.Error)
			}
		})
	}
}

func TestCreateMarkerZeroCoordinates(t *testing.T) {
	t.Parallel()
	_, router := setupTestAPI(t)

	// 0,0 is a legitimate coordinate and must not be treated as absent.
	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/markers", map[string]interface{}{
		"name": "null island",
		"lat":  0.0,
		"lng":  0.0,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for zero coordinates, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateMarkerMalformedBody(t *testing.T) {
	t.Parallel()
	_, router := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/markers", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestDeleteMarker(t *testing.T) {
	t.Parallel()
	_, router := setupTestAPI(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/markers", markerPayload("victim", ptrF64(220), nil, nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d", rec.Code)
	}

	rec, resp := doJSON(t, router, http.MethodDelete, "/api/v1/markers/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := json.Marshal(resp.Data)
	var removed models.Marker
	if err := json.Unmarshal(data, &removed); err != nil {
		t.Fatalf("failed to decode removed marker: %v", err)
	}
	if removed.ID != 1 || removed.Name != "victim" {
		t.Errorf("expected removed marker 1 %q, got %d %q", "victim", removed.ID, removed.Name)
	}

	// Second delete of the same id is NOT_FOUND, never success.
	rec, resp = doJSON(t, router, http.MethodDelete, "/api/v1/markers/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %+v", resp.Error)
	}
}

func TestDeleteMarkerInvalidID(t *testing.T) {
	t.Parallel()
	_, router := setupTestAPI(t)

	for _, id := range []string{"abc", "0", "-5", "1.5"} {
		rec, resp := doJSON(t, router, http.MethodDelete, "/api/v1/markers/"+id, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", id, rec.Code)
			continue
		}
		if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
			t.Errorf("id %q: expected VALIDATION_ERROR, got %+v", id, resp.Error)
		}
	}
}

func TestMethodNotAllowedEnvelope(t *testing.T) {
	t.Parallel()
	db, _ := setupTestAPI(t)

	// Exercise the in-handler method guard directly since chi routes by
	// method before the handler runs.
	h := NewHandler(db, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/markers", nil)
	rec := httptest.NewRecorder()
	h.CreateMarker(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != "METHOD_NOT_ALLOWED" {
		t.Fatalf("expected METHOD_NOT_ALLOWED, got %+v", resp.Error)
	}
}

func TestStatsEndpoint(t *testing.T) {
	t.Parallel()
	_, router := setupTestAPI(t)

	doJSON(t, router, http.MethodPost, "/api/v1/markers", markerPayload("a", ptrF64(220), ptrF64(15), ptrStr("A")))
	doJSON(t, router, http.MethodPost, "/api/v1/markers", markerPayload("b", ptrF64(10), nil, nil)) // implausible pressure
	doJSON(t, router, http.MethodPost, "/api/v1/markers", map[string]interface{}{"name": "bare", "lat": 1.0, "lng": 2.0})

	rec, resp := doJSON(t, router, http.MethodGet, "/api/v1/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := json.Marshal(resp.Data)
	var stats models.MarkerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.TotalMarkers != 3 {
		t.Errorf("expected 3 total markers, got %d", stats.TotalMarkers)
	}
	if stats.MarkersWithSensor != 2 {
		t.Errorf("expected 2 markers with sensor, got %d", stats.MarkersWithSensor)
	}
	if stats.ValidPressures != 1 {
		t.Errorf("expected 1 valid pressure, got %d", stats.ValidPressures)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	_, router := setupTestAPI(t)

	rec, resp := doJSON(t, router, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	data, _ := json.Marshal(resp.Data)
	var health models.HealthStatus
	if err := json.Unmarshal(data, &health); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if health.Status != "healthy" || !health.DatabaseConnected {
		t.Errorf("expected healthy connected status, got %+v", health)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/health/live", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("live: expected 200, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/v1/health/ready", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("ready: expected 200, got %d", rec.Code)
	}
}

func TestViewsEmptyDataset(t *testing.T) {
	t.Parallel()
	_, router := setupTestAPI(t)

	// Views that aggregate fail on an empty store, views that only
	// collect return valid empty payloads.
	tests := []struct {
		path     string
		wantCode int
		wantErr  string
	}{
		{"/api/v1/views/time-series", http.StatusUnprocessableEntity, "INSUFFICIENT_DATA"},
		{"/api/v1/views/heatmap", http.StatusUnprocessableEntity, "INSUFFICIENT_DATA"},
		{"/api/v1/views/model-summary", http.StatusOK, ""},
		{"/api/v1/views/pressure-histogram", http.StatusOK, ""},
		{"/api/v1/views/pressure-temperature", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec, resp := doJSON(t, router, http.MethodGet, tt.path, nil)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
			if tt.wantErr != "" {
				if resp.Error == nil || resp.Error.Code != tt.wantErr {
					t.Fatalf("expected error code %q, got %+v", tt.wantErr, resp.Error)
				}
			}
		})
	}
}

func TestTimeSeriesViewWithData(t *testing.T) {
	t.Parallel()
	_, router := setupTestAPI(t)

	doJSON(t, router, http.MethodPost, "/api/v1/markers", markerPayload("a", ptrF64(100), ptrF64(10), nil))
	doJSON(t, router, http.MethodPost, "/api/v1/markers", markerPayload("b", ptrF64(300), ptrF64(30), nil))

	rec, resp := doJSON(t, router, http.MethodGet, "/api/v1/views/time-series", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data, _ := json.Marshal(resp.Data)
	var view models.TimeSeriesView
	if err := json.Unmarshal(data, &view); err != nil {
		t.Fatalf("failed to decode view: %v", err)
	}

	if len(view.Pressure) != 2 || len(view.Temperature) != 2 {
		t.Fatalf("expected 2 points per series, got %d/%d", len(view.Pressure), len(view.Temperature))
	}
	if view.MeanPressure != 200 {
		t.Errorf("expected mean pressure 200, got %v", view.MeanPressure)
	}
	if view.MaxPressure.Value != 300 || view.MaxPressure.MarkerID != 2 {
		t.Errorf("expected max pressure 300 at marker 2, got %+v", view.MaxPressure)
	}
}

func TestHeatmapViewWithData(t *testing.T) {
	t.Parallel()
	_, router := setupTestAPI(t)

	doJSON(t, router, http.MethodPost, "/api/v1/markers", map[string]interface{}{"name": "bare", "lat": 10.0, "lng": 20.0})

	rec, resp := doJSON(t, router, http.MethodGet, "/api/v1/views/heatmap", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	data, _ := json.Marshal(resp.Data)
	var view models.HeatmapView
	if err := json.Unmarshal(data, &view); err != nil {
		t.Fatalf("failed to decode view: %v", err)
	}
	if len(view.Points) != 1 || view.Points[0].Weight != 1.0 {
		t.Fatalf("expected one weight-1 point, got %+v", view.Points)
	}
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()
	_, router := setupTestAPI(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/api/v1/health/live", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header on response")
	}
}
