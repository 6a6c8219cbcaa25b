package main

import (
	"math"
	"sort"
)

// Simulate advances the balance month by month until it reaches the target
// or the horizon cap. Each month accrues gross yield on the opening balance,
// withholds tax on taxable modalities, then adds the contribution. The
// elapsed-days clock for the withholding bracket starts at zero, so the
// first month's gain faces the steepest bracket.
func Simulate(s ForwardScenario, m Modality) []PeriodRecord {
	records := make([]PeriodRecord, 0, 64)
	balance := s.InitialCapital
	month := 0

	for balance < s.TargetBalance && month < MaxHorizonMonths {
		gross := balance * s.MonthlyRate

		tax := 0.0
		if s.ApplyTax && m.Taxable {
			tax = WithholdingTax(gross, month*30)
		}

		balance += gross - tax + s.MonthlyContribution
		month++

		records = append(records, PeriodRecord{
			Month:        month,
			Balance:      balance,
			GrossYield:   gross,
			TaxWithheld:  tax,
			Contribution: s.MonthlyContribution,
		})
	}

	return records
}

// BuildProjection derives the aggregate view of a simulated sequence. An
// empty sequence means the target was already met (or the rate could not
// move the balance); the projection then reflects the untouched capital.
func BuildProjection(s ForwardScenario, records []PeriodRecord) Projection {
	p := Projection{Records: records, Months: len(records)}

	if len(records) == 0 {
		p.FinalBalance = s.InitialCapital
		p.TotalInvested = s.InitialCapital
		p.Multiplier = 1
		p.TargetReached = s.InitialCapital >= s.TargetBalance
		return p
	}

	last := records[len(records)-1]
	p.FinalBalance = last.Balance
	p.TargetReached = last.Balance >= s.TargetBalance
	p.TotalInvested = s.InitialCapital + s.MonthlyContribution*float64(len(records))

	for _, r := range records {
		p.TotalGrossYield += r.GrossYield
		p.TotalTax += r.TaxWithheld
	}
	p.NetYield = p.TotalGrossYield - p.TotalTax

	if p.TotalInvested > 0 {
		p.Rentability = p.NetYield / p.TotalInvested * 100
	}
	if s.InitialCapital > 0 {
		p.Multiplier = p.FinalBalance / s.InitialCapital
	}
	if s.MonthlyRate > 0 {
		p.MonthsToDouble = math.Log(2) / math.Log1p(s.MonthlyRate)
	}
	return p
}

// CompareModalities races the same capital, contribution and target across
// the named modalities and ranks the outcomes: target reached first, then
// fewest months, then highest final balance.
func CompareModalities(initial, contribution, target, baseMonthlyRate float64, applyTax bool, names []string) ([]ComparisonEntry, error) {
	entries := make([]ComparisonEntry, 0, len(names))

	for _, name := range names {
		m, err := ModalityByName(name)
		if err != nil {
			return nil, err
		}
		s, err := NewForwardScenario(initial, contribution, target, m.CDIPercent, baseMonthlyRate, applyTax, false)
		if err != nil {
			return nil, err
		}
		proj := BuildProjection(s, Simulate(s, m))
		entries = append(entries, ComparisonEntry{
			Modality:      m,
			Months:        proj.Months,
			FinalBalance:  proj.FinalBalance,
			TotalTax:      proj.TotalTax,
			TargetReached: proj.TargetReached,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TargetReached != entries[j].TargetReached {
			return entries[i].TargetReached
		}
		if entries[i].Months != entries[j].Months {
			return entries[i].Months < entries[j].Months
		}
		return entries[i].FinalBalance > entries[j].FinalBalance
	})
	return entries, nil
}
