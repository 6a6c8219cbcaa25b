package main

import "fmt"

// ValidationError reports a scenario input outside the accepted range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MaxHorizonMonths caps every simulation and solver horizon at 50 years.
const MaxHorizonMonths = 600

// MaxCDIPercent bounds user-supplied rate percentages.
const MaxCDIPercent = 300

// NewForwardScenario validates the inputs of a goal-seeking simulation and
// derives the periodic rate from the base monthly rate and the modality's
// rate percentage.
func NewForwardScenario(initial, contribution, target, cdiPercent, baseMonthlyRate float64, applyTax, applyInflation bool) (ForwardScenario, error) {
	if initial <= 0 {
		return ForwardScenario{}, &ValidationError{Field: "initial capital", Reason: "must be positive"}
	}
	if contribution < 0 {
		return ForwardScenario{}, &ValidationError{Field: "monthly contribution", Reason: "must not be negative"}
	}
	if target <= initial {
		return ForwardScenario{}, &ValidationError{Field: "target balance", Reason: "must exceed the initial capital"}
	}
	rate, err := derivedMonthlyRate(cdiPercent, baseMonthlyRate)
	if err != nil {
		return ForwardScenario{}, err
	}
	return ForwardScenario{
		InitialCapital:      initial,
		MonthlyContribution: contribution,
		TargetBalance:       target,
		CDIPercent:          cdiPercent,
		MonthlyRate:         rate,
		ApplyTax:            applyTax,
		ApplyInflation:      applyInflation,
	}, nil
}

// NewReverseScenario validates the inputs of a required-capital solve.
func NewReverseScenario(desired float64, horizonMonths int, contribution, cdiPercent, baseMonthlyRate float64, applyTax, applyInflation bool) (ReverseScenario, error) {
	if desired <= 0 {
		return ReverseScenario{}, &ValidationError{Field: "desired monthly yield", Reason: "must be positive"}
	}
	if horizonMonths < 1 || horizonMonths > MaxHorizonMonths {
		return ReverseScenario{}, &ValidationError{Field: "horizon", Reason: fmt.Sprintf("must be between 1 and %d months", MaxHorizonMonths)}
	}
	if contribution < 0 {
		return ReverseScenario{}, &ValidationError{Field: "monthly contribution", Reason: "must not be negative"}
	}
	rate, err := derivedMonthlyRate(cdiPercent, baseMonthlyRate)
	if err != nil {
		return ReverseScenario{}, err
	}
	return ReverseScenario{
		DesiredMonthlyYield: desired,
		HorizonMonths:       horizonMonths,
		MonthlyContribution: contribution,
		CDIPercent:          cdiPercent,
		MonthlyRate:         rate,
		ApplyTax:            applyTax,
		ApplyInflation:      applyInflation,
	}, nil
}

func derivedMonthlyRate(cdiPercent, baseMonthlyRate float64) (float64, error) {
	if cdiPercent <= 0 || cdiPercent > MaxCDIPercent {
		return 0, &ValidationError{Field: "rate percentage", Reason: fmt.Sprintf("must be between 0%% and %d%%", MaxCDIPercent)}
	}
	rate := baseMonthlyRate * cdiPercent / 100
	if rate <= 0 {
		return 0, &ValidationError{Field: "monthly rate", Reason: "must be positive"}
	}
	return rate, nil
}
