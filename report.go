package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMoney renders a value as Brazilian currency: R$ 1.234,56.
func FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart := s[:len(s)-3]
	frac := s[len(s)-2:]

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(intPart[i])
	}
	return "R$ " + sign + b.String() + "," + frac
}

// FormatMoneyCompact abbreviates large values for table columns.
func FormatMoneyCompact(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("R$ %.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("R$ %.0fK", v/1e3)
	default:
		return fmt.Sprintf("R$ %.0f", v)
	}
}

// ParseMoney converts Brazilian-formatted input to a float. Accepts plain
// numbers ("30000"), decimal commas ("5,5"), thousand separators
// ("30.000,00") and an optional currency prefix ("R$ 2.500,00").
func ParseMoney(input string) (float64, error) {
	s := strings.TrimSpace(input)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		// 1.234,56: dots are thousand separators
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case hasComma:
		s = strings.Replace(s, ",", ".", 1)
	case hasDot:
		// Dots only: groups of three after the first dot mean separators
		// (30.000), otherwise it is a decimal point (1234.56).
		parts := strings.Split(s, ".")
		if len(parts[len(parts)-1]) == 3 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse amount %q", input)
	}
	return v, nil
}

const reportRule = "================================================================"

// evolutionTailMonths bounds the monthly table in text reports.
const evolutionTailMonths = 12

// ForwardReport renders the detailed text report of a forward projection.
func ForwardReport(s ForwardScenario, m Modality, proj Projection, snap RateSnapshot, freshness string) string {
	var b strings.Builder

	fmt.Fprintln(&b, reportRule)
	fmt.Fprintln(&b, "             INVESTMENT GROWTH PROJECTION")
	fmt.Fprintln(&b, reportRule)
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("02/01/2006 15:04"))

	fmt.Fprintln(&b, "MARKET DATA")
	fmt.Fprintf(&b, "  Annual base rate:     %.2f%% (%s)\n", snap.AnnualRate, freshness)
	fmt.Fprintf(&b, "  Monthly base rate:    %.4f%%\n", snap.MonthlyRate*100)
	fmt.Fprintf(&b, "  Effective rate:       %.4f%% (%s at %.0f%%)\n\n", s.MonthlyRate*100, m.Name, s.CDIPercent)

	fmt.Fprintln(&b, "MODALITY")
	fmt.Fprintf(&b, "  Name:                 %s\n", m.Name)
	fmt.Fprintf(&b, "  Risk:                 %s\n", m.Risk)
	fmt.Fprintf(&b, "  Taxation:             %s\n", taxationLabel(m, s.ApplyTax))
	if m.LockupDays > 0 {
		fmt.Fprintf(&b, "  Lockup:               %d days\n", m.LockupDays)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "SCENARIO")
	fmt.Fprintf(&b, "  Initial capital:      %s\n", FormatMoney(s.InitialCapital))
	fmt.Fprintf(&b, "  Monthly contribution: %s\n", FormatMoney(s.MonthlyContribution))
	fmt.Fprintf(&b, "  Target balance:       %s\n\n", FormatMoney(s.TargetBalance))

	fmt.Fprintln(&b, "RESULT")
	if proj.TargetReached {
		fmt.Fprintf(&b, "  Target reached in %d months (%.1f years)\n", proj.Months, float64(proj.Months)/12)
	} else {
		fmt.Fprintf(&b, "  Target NOT reached within %d months\n", proj.Months)
	}
	fmt.Fprintf(&b, "  Final balance:        %s\n", FormatMoney(proj.FinalBalance))
	fmt.Fprintf(&b, "  Total invested:       %s\n", FormatMoney(proj.TotalInvested))
	fmt.Fprintf(&b, "  Gross yield:          %s\n", FormatMoney(proj.TotalGrossYield))
	fmt.Fprintf(&b, "  Tax withheld:         %s\n", FormatMoney(proj.TotalTax))
	fmt.Fprintf(&b, "  Net yield:            %s\n", FormatMoney(proj.NetYield))
	fmt.Fprintf(&b, "  Rentability:          %.2f%%\n", proj.Rentability)
	fmt.Fprintf(&b, "  Capital multiplier:   %.2fx\n", proj.Multiplier)
	if proj.MonthsToDouble > 0 {
		fmt.Fprintf(&b, "  Months to double:     %.1f\n", proj.MonthsToDouble)
	}
	fmt.Fprintln(&b)

	if len(proj.Records) > 0 {
		fmt.Fprintf(&b, "MONTHLY EVOLUTION (last %d months)\n", evolutionTailMonths)
		fmt.Fprintf(&b, "  %5s  %14s  %12s  %10s\n", "Month", "Balance", "Yield", "Tax")
		start := 0
		if len(proj.Records) > evolutionTailMonths {
			start = len(proj.Records) - evolutionTailMonths
		}
		for _, r := range proj.Records[start:] {
			fmt.Fprintf(&b, "  %5d  %14s  %12s  %10s\n", r.Month, FormatMoney(r.Balance), FormatMoney(r.GrossYield), FormatMoney(r.TaxWithheld))
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, reportRule)
	return b.String()
}

// ReverseReport renders the text report of a required-capital solve.
func ReverseReport(s ReverseScenario, m Modality, res SolvedResult, snap RateSnapshot, freshness string) string {
	var b strings.Builder

	fmt.Fprintln(&b, reportRule)
	fmt.Fprintln(&b, "             REQUIRED CAPITAL ANALYSIS")
	fmt.Fprintln(&b, reportRule)
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("02/01/2006 15:04"))

	fmt.Fprintln(&b, "MARKET DATA")
	fmt.Fprintf(&b, "  Annual base rate:     %.2f%% (%s)\n", snap.AnnualRate, freshness)
	fmt.Fprintf(&b, "  Effective rate:       %.4f%% (%s at %.0f%%)\n\n", s.MonthlyRate*100, m.Name, s.CDIPercent)

	fmt.Fprintln(&b, "GOAL")
	fmt.Fprintf(&b, "  Desired monthly yield: %s\n", FormatMoney(s.DesiredMonthlyYield))
	fmt.Fprintf(&b, "  Horizon:               %d months\n", s.HorizonMonths)
	fmt.Fprintf(&b, "  Monthly contribution:  %s\n", FormatMoney(s.MonthlyContribution))
	fmt.Fprintf(&b, "  Taxation:              %s\n\n", taxationLabel(m, s.ApplyTax))

	fmt.Fprintln(&b, "RESULT")
	fmt.Fprintf(&b, "  Required initial capital: %s\n", FormatMoney(res.RequiredInitialCapital))
	fmt.Fprintf(&b, "  Predicted monthly yield:  %s\n", FormatMoney(res.PredictedMonthlyYield))
	fmt.Fprintf(&b, "  Total capital invested:   %s\n", FormatMoney(res.TotalCapitalInvested))
	fmt.Fprintf(&b, "  Convergence error:        %s\n\n", FormatMoney(res.ConvergenceError))

	fmt.Fprintln(&b, reportRule)
	return b.String()
}

// ComparisonReport renders the modality race as a ranked table.
func ComparisonReport(entries []ComparisonEntry, target float64, snap RateSnapshot, freshness string) string {
	var b strings.Builder

	fmt.Fprintln(&b, reportRule)
	fmt.Fprintln(&b, "             MODALITY COMPARISON")
	fmt.Fprintln(&b, reportRule)
	fmt.Fprintf(&b, "Target: %s | Annual base rate: %.2f%% (%s)\n\n", FormatMoney(target), snap.AnnualRate, freshness)

	fmt.Fprintf(&b, "  %-16s  %6s  %12s  %10s  %s\n", "Modality", "Months", "Final", "Tax", "Reached")
	for _, e := range entries {
		reached := "yes"
		if !e.TargetReached {
			reached = "no"
		}
		fmt.Fprintf(&b, "  %-16s  %6d  %12s  %10s  %s\n",
			e.Modality.Name, e.Months, FormatMoneyCompact(e.FinalBalance), FormatMoneyCompact(e.TotalTax), reached)
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, reportRule)
	return b.String()
}

func taxationLabel(m Modality, applyTax bool) string {
	if !m.Taxable {
		return "exempt"
	}
	if !applyTax {
		return "taxable (disabled for this run)"
	}
	return "regressive table (22.5% down to 15%)"
}
