package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("passing_score", "must be between 0 and 100", 150)

	if err.Field != "passing_score" {
		t.Errorf("Expected field to be 'passing_score', got '%s'", err.Field)
	}

	if err.Message != "must be between 0 and 100" {
		t.Errorf("Expected message to be 'must be between 0 and 100', got '%s'", err.Message)
	}

	if err.Value != 150 {
		t.Errorf("Expected value to be 150, got '%v'", err.Value)
	}

	expected := "validation error on field 'passing_score': must be between 0 and 100"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	// Test empty ValidationErrors
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	// Test single ValidationError
	errs = append(errs, *NewValidationError("prompt", "is required", nil))
	expected := "validation failed: prompt is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	// Test multiple ValidationErrors
	errs = append(errs, *NewValidationError("points", "must be at least 1", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}
