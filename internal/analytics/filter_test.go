// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package analytics

import (
	"reflect"
	"testing"

	"github.com/tyremark/tyremark/internal/models"
)

func ptrStr(s string) *string   { return &s }
func ptrF64(f float64) *float64 { return &f }

// reading builds a marker with the given id and optional sensor fields.
func reading(id int64, pressure, temperature *float64, model *string) models.Marker {
	return models.Marker{
		ID: id,
		SensorReading: &models.SensorReading{
			Pressure:    pressure,
			Temperature: temperature,
			Model:       model,
		},
	}
}

func TestValidPressureBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pressure float64
		want     bool
	}{
		{49.999, false},
		{50, true}, // inclusive lower bound
		{220.5, true},
		{1000, true}, // inclusive upper bound
		{1000.001, false},
		{0, false},
		{-10, false},
	}

	for _, tt := range tests {
		if got := ValidPressure(tt.pressure); got != tt.want {
			t.Errorf("ValidPressure(%v) = %v, want %v", tt.pressure, got, tt.want)
		}
	}
}

func TestValidPressures(t *testing.T) {
	t.Parallel()

	markers := []models.Marker{
		reading(1, ptrF64(40), nil, nil),   // below range
		reading(2, ptrF64(100), nil, nil),  // valid
		reading(3, ptrF64(1000), nil, nil), // boundary, valid
		reading(4, ptrF64(1001), nil, nil), // above range
		reading(5, nil, nil, nil),          // no pressure
		{ID: 6},                            // no reading at all
	}

	got := ValidPressures(markers)
	want := []float64{100, 1000}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ValidPressures = %v, want %v", got, want)
	}
}

func TestValidPressureSeriesAlignment(t *testing.T) {
	t.Parallel()

	markers := []models.Marker{
		reading(10, ptrF64(200), nil, nil),
		reading(11, ptrF64(5), nil, nil),
		reading(12, ptrF64(300), nil, nil),
	}

	values, ids := ValidPressureSeries(markers)
	if !reflect.DeepEqual(values, []float64{200, 300}) {
		t.Errorf("unexpected values: %v", values)
	}
	if !reflect.DeepEqual(ids, []int64{10, 12}) {
		t.Errorf("unexpected ids: %v", ids)
	}
}

func TestValidTemperaturesPresenceOnly(t *testing.T) {
	t.Parallel()

	// Temperatures have no plausibility bounds: extreme values pass.
	markers := []models.Marker{
		reading(1, nil, ptrF64(-40), nil),
		reading(2, nil, ptrF64(0), nil),
		reading(3, nil, ptrF64(250), nil),
		reading(4, nil, nil, nil),
		{ID: 5},
	}

	got := ValidTemperatures(markers)
	want := []float64{-40, 0, 250}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ValidTemperatures = %v, want %v", got, want)
	}
}

func TestValidSeriesEmptyInput(t *testing.T) {
	t.Parallel()

	if got := ValidPressures(nil); len(got) != 0 {
		t.Errorf("expected empty pressures, got %v", got)
	}
	if got := ValidTemperatures(nil); len(got) != 0 {
		t.Errorf("expected empty temperatures, got %v", got)
	}
}

func TestGroupByModel(t *testing.T) {
	t.Parallel()

	markers := []models.Marker{
		reading(1, ptrF64(100), ptrF64(10), ptrStr("A")),
		reading(2, ptrF64(200), nil, ptrStr("B")),
		reading(3, ptrF64(300), ptrF64(30), ptrStr("A")),
		reading(4, ptrF64(400), ptrF64(40), nil), // no model -> unknown
	}

	groups := GroupByModel(markers)

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d: %v", len(groups), groups)
	}
	if !reflect.DeepEqual(groups["A"].Pressures, []float64{100, 300}) {
		t.Errorf("unexpected A pressures: %v", groups["A"].Pressures)
	}
	if !reflect.DeepEqual(groups["A"].Temperatures, []float64{10, 30}) {
		t.Errorf("unexpected A temperatures: %v", groups["A"].Temperatures)
	}
	if !reflect.DeepEqual(groups["B"].Pressures, []float64{200}) {
		t.Errorf("unexpected B pressures: %v", groups["B"].Pressures)
	}
	if len(groups["B"].Temperatures) != 0 {
		t.Errorf("expected no B temperatures, got %v", groups["B"].Temperatures)
	}
	if !reflect.DeepEqual(groups[UnknownModel].Pressures, []float64{400}) {
		t.Errorf("unexpected unknown pressures: %v", groups[UnknownModel].Pressures)
	}
}

func TestGroupByModelPressureFilterGatesTemperature(t *testing.T) {
	t.Parallel()

	// A wild pressure excludes the whole reading, temperature included.
	markers := []models.Marker{
		reading(1, ptrF64(2000), ptrF64(99), ptrStr("A")),
		reading(2, nil, ptrF64(50), ptrStr("A")), // no pressure, skipped too
	}

	groups := GroupByModel(markers)
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %v", groups)
	}
}

func TestGroupByModelEmptyModelString(t *testing.T) {
	t.Parallel()

	markers := []models.Marker{
		reading(1, ptrF64(100), nil, ptrStr("")),
	}

	groups := GroupByModel(markers)
	if _, ok := groups[UnknownModel]; !ok {
		t.Errorf("expected empty model string to bucket as unknown, got %v", groups)
	}
}
