package main

import (
	"math"
	"testing"
)

// Withholding Tax Validation Tests
//
// These tests validate the regressive income-tax table applied to fixed
// income gains:
// - up to 180 days:  22.5%
// - 181 to 360 days: 20.0%
// - 361 to 720 days: 17.5%
// - beyond 720 days: 15.0%

// tolerance for floating point comparisons (R$ 0.01)
const taxTolerance = 0.01

func assertTaxEquals(t *testing.T, expected, actual float64, description string) {
	t.Helper()
	if math.Abs(expected-actual) > taxTolerance {
		t.Errorf("%s: expected %.4f, got %.4f (diff: %.4f)",
			description, expected, actual, actual-expected)
	}
}

// =============================================================================
// Bracket Selection Tests
// =============================================================================

func TestWithholdingRate_Brackets(t *testing.T) {
	tests := []struct {
		days     int
		expected float64
	}{
		{0, 0.225},
		{30, 0.225},
		{180, 0.225}, // last day of the first bracket
		{181, 0.20},
		{360, 0.20},
		{361, 0.175},
		{720, 0.175},
		{721, 0.15},
		{3600, 0.15},
	}

	for _, tc := range tests {
		rate := WithholdingRate(tc.days)
		if rate != tc.expected {
			t.Errorf("WithholdingRate(%d): expected %.3f, got %.3f", tc.days, tc.expected, rate)
		}
	}
}

// =============================================================================
// Tax Amount Tests
// =============================================================================

func TestWithholdingTax_Amounts(t *testing.T) {
	tests := []struct {
		gain        float64
		days        int
		expected    float64
		description string
	}{
		{1000, 90, 225, "first bracket"},
		{1000, 180, 225, "last day of the first bracket"},
		{1000, 181, 200, "second bracket"},
		{1000, 365, 175, "third bracket"},
		{1000, 721, 150, "final bracket"},
		{315, 30, 70.875, "fractional gain"},
	}

	for _, tc := range tests {
		assertTaxEquals(t, tc.expected, WithholdingTax(tc.gain, tc.days), tc.description)
	}
}

func TestWithholdingTax_NonPositiveGains(t *testing.T) {
	// Losses and zero gains are never taxed, in any bracket
	for _, days := range []int{0, 180, 360, 720, 1000} {
		if tax := WithholdingTax(0, days); tax != 0 {
			t.Errorf("zero gain at %d days: expected no tax, got %.4f", days, tax)
		}
		if tax := WithholdingTax(-500, days); tax != 0 {
			t.Errorf("negative gain at %d days: expected no tax, got %.4f", days, tax)
		}
	}
}
