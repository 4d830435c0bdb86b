// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package validation

import (
	"strings"
	"testing"
)

type markerRequest struct {
	Name      string   `validate:"required"`
	Latitude  *float64 `validate:"required,latitude"`
	Longitude *float64 `validate:"required,longitude"`
}

func ptr(f float64) *float64 { return &f }

func TestValidateStructPasses(t *testing.T) {
	t.Parallel()

	req := markerRequest{
		Name:      "front-left",
		Latitude:  ptr(52.37),
		Longitude: ptr(4.89),
	}

	if err := ValidateStruct(&req); err != nil {
		t.Errorf("expected valid struct, got: %v", err)
	}
}

func TestValidateStructZeroCoordinatesPass(t *testing.T) {
	t.Parallel()

	// 0.0 is a legal coordinate; pointer fields distinguish absent from zero.
	req := markerRequest{
		Name:      "equator",
		Latitude:  ptr(0),
		Longitude: ptr(0),
	}

	if err := ValidateStruct(&req); err != nil {
		t.Errorf("expected zero coordinates to validate, got: %v", err)
	}
}

func TestValidateStructMissingFields(t *testing.T) {
	t.Parallel()

	req := markerRequest{}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error for empty request")
	}

	if len(err.Errors()) != 3 {
		t.Errorf("expected 3 field errors, got %d: %v", len(err.Errors()), err)
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("expected code VALIDATION_ERROR, got %s", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "Name is required") {
		t.Errorf("expected message to mention Name, got: %s", apiErr.Message)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("expected multi-error details to contain 'fields'")
	}
}

func TestValidateStructSingleError(t *testing.T) {
	t.Parallel()

	req := markerRequest{
		Name:      "out-of-range",
		Latitude:  ptr(91),
		Longitude: ptr(4.89),
	}

	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error for latitude 91")
	}

	apiErr := err.ToAPIError()
	if !strings.Contains(apiErr.Message, "valid latitude") {
		t.Errorf("expected latitude message, got: %s", apiErr.Message)
	}
	if apiErr.Details["field"] != "Latitude" {
		t.Errorf("expected field detail Latitude, got: %v", apiErr.Details["field"])
	}
}

func TestValidateStructBoundsMessages(t *testing.T) {
	t.Parallel()

	type limited struct {
		Count int `validate:"gte=1,lte=100"`
	}

	err := ValidateStruct(&limited{Count: 0})
	if err == nil {
		t.Fatal("expected validation error for count 0")
	}
	if !strings.Contains(err.Error(), "greater than or equal to 1") {
		t.Errorf("unexpected gte message: %v", err)
	}

	err = ValidateStruct(&limited{Count: 500})
	if err == nil {
		t.Fatal("expected validation error for count 500")
	}
	if !strings.Contains(err.Error(), "less than or equal to 100") {
		t.Errorf("unexpected lte message: %v", err)
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("expected GetValidator to return the same instance")
	}
}
