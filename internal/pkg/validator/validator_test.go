package validator

import (
	"errors"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"00:00", "08:00", "23:59", "08:00:00", "17:30:59"}
	invalid := []string{"", "8:00", "24:00", "12:60", "08:00:60", "08-00", "08:00:00:00"}
	for _, s := range valid {
		if !IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClockTime(s) {
			t.Errorf("IsValidClockTime(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "invalid"},
		{Field: "longitude", Message: "required"},
	}
	got := errs.Error()
	want := "latitude: invalid; longitude: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "invalid"},
		{Field: "longitude", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"latitude": "invalid", "longitude": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

type pointRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Start     string   `json:"start" validate:"omitempty,clocktime"`
}

func TestValidateStruct(t *testing.T) {
	zero := 0.0
	if err := ValidateStruct(pointRequest{Latitude: &zero, Longitude: &zero}); err != nil {
		t.Fatalf("ValidateStruct(zero point) = %v, want nil", err)
	}

	tooFar := 91.0
	err := ValidateStruct(pointRequest{Latitude: &tooFar, Start: "25:00"})
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("ValidateStruct() error = %T, want ValidationErrors", err)
	}

	got := errs.ToMap()
	if got["latitude"] != "latitude must not exceed 90" {
		t.Errorf("latitude message = %q", got["latitude"])
	}
	if got["longitude"] != "longitude is required" {
		t.Errorf("longitude message = %q", got["longitude"])
	}
	if got["start"] != "start must be in HH:MM or HH:MM:SS format" {
		t.Errorf("start message = %q", got["start"])
	}
}
