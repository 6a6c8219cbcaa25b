package main

import (
	"errors"
	"math"
	"testing"
)

// Scenario Validation Tests

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != field {
		t.Errorf("expected the %q field to be rejected, got %q", field, ve.Field)
	}
}

// =============================================================================
// Forward Scenario
// =============================================================================

func TestNewForwardScenario_Valid(t *testing.T) {
	s, err := NewForwardScenario(30000, 2500, 500000, 105, 0.01, true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(s.MonthlyRate-0.0105) > 1e-12 {
		t.Errorf("effective rate: expected 0.0105, got %.6f", s.MonthlyRate)
	}
	if s.CDIPercent != 105 {
		t.Errorf("rate percentage not carried: %.0f", s.CDIPercent)
	}
}

func TestNewForwardScenario_Rejections(t *testing.T) {
	tests := []struct {
		name                          string
		initial, contribution, target float64
		cdiPercent, baseRate          float64
		field                         string
	}{
		{"zero capital", 0, 0, 1000, 100, 0.01, "initial capital"},
		{"negative capital", -5000, 0, 1000, 100, 0.01, "initial capital"},
		{"negative contribution", 1000, -10, 5000, 100, 0.01, "monthly contribution"},
		{"target below capital", 10000, 0, 5000, 100, 0.01, "target balance"},
		{"target equals capital", 10000, 0, 10000, 100, 0.01, "target balance"},
		{"zero percent", 1000, 0, 5000, 0, 0.01, "rate percentage"},
		{"percent above cap", 1000, 0, 5000, 301, 0.01, "rate percentage"},
		{"zero base rate", 1000, 0, 5000, 100, 0, "monthly rate"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewForwardScenario(tc.initial, tc.contribution, tc.target, tc.cdiPercent, tc.baseRate, true, false)
			assertValidationError(t, err, tc.field)
		})
	}
}

// =============================================================================
// Reverse Scenario
// =============================================================================

func TestNewReverseScenario_Valid(t *testing.T) {
	s, err := NewReverseScenario(5000, 12, 0, 105, 0.01, true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.HorizonMonths != 12 {
		t.Errorf("horizon not carried: %d", s.HorizonMonths)
	}
	if math.Abs(s.MonthlyRate-0.0105) > 1e-12 {
		t.Errorf("effective rate: expected 0.0105, got %.6f", s.MonthlyRate)
	}
}

func TestNewReverseScenario_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		desired float64
		horizon int
		field   string
	}{
		{"zero yield", 0, 12, "desired monthly yield"},
		{"negative yield", -100, 12, "desired monthly yield"},
		{"zero horizon", 5000, 0, "horizon"},
		{"horizon above cap", 5000, MaxHorizonMonths + 1, "horizon"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReverseScenario(tc.desired, tc.horizon, 0, 100, 0.01, true, false)
			assertValidationError(t, err, tc.field)
		})
	}
}

func TestNewReverseScenario_HorizonBounds(t *testing.T) {
	// Both ends of the horizon range are inclusive
	if _, err := NewReverseScenario(1000, 1, 0, 100, 0.01, true, false); err != nil {
		t.Errorf("1 month should be accepted: %v", err)
	}
	if _, err := NewReverseScenario(1000, MaxHorizonMonths, 0, 100, 0.01, true, false); err != nil {
		t.Errorf("%d months should be accepted: %v", MaxHorizonMonths, err)
	}
}
