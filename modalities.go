package main

import "fmt"

// NotFoundError reports a modality name with no catalog entry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown modality %q", e.Name)
}

// CustomModalityName is the catalog entry whose rate percentage is meant to
// be overridden by caller input.
const CustomModalityName = "Custom"

// Modalities is the built-in catalog of investment profiles, in listing
// order. Percentages are relative to the base market rate; Taxable entries
// have the regressive withholding table applied to their gains.
var Modalities = []Modality{
	{Name: "CDI 100%", CDIPercent: 100, Taxable: true, LockupDays: 0, Risk: RiskLow, Description: "Plain fixed income tracking the benchmark"},
	{Name: "CDI 102%", CDIPercent: 102, Taxable: true, LockupDays: 30, Risk: RiskLow, Description: "Bank deposit with a small premium"},
	{Name: "CDI 103%", CDIPercent: 103, Taxable: true, LockupDays: 30, Risk: RiskLow, Description: "Bank deposit with a premium"},
	{Name: "CDI 105%", CDIPercent: 105, Taxable: true, LockupDays: 60, Risk: RiskLow, Description: "Bank deposit with a medium premium"},
	{Name: "CDI 110%", CDIPercent: 110, Taxable: true, LockupDays: 90, Risk: RiskLow, Description: "Bank deposit with a good premium"},
	{Name: "CDI 115%", CDIPercent: 115, Taxable: true, LockupDays: 180, Risk: RiskLow, Description: "Premium bank deposit"},
	{Name: "CDI 116%", CDIPercent: 116, Taxable: true, LockupDays: 180, Risk: RiskLow, Description: "Bank deposit with a high premium"},
	{Name: "CDI 120%", CDIPercent: 120, Taxable: true, LockupDays: 360, Risk: RiskLow, Description: "Bank deposit with a long lockup"},
	{Name: "Poupança", CDIPercent: 70, Taxable: false, LockupDays: 0, Risk: RiskLow, Description: "Traditional savings account, tax exempt"},
	{Name: "Tesouro Selic", CDIPercent: 100, Taxable: true, LockupDays: 0, Risk: RiskLow, Description: "Floating-rate government bond"},
	{Name: "LCI/LCA", CDIPercent: 90, Taxable: false, LockupDays: 90, Risk: RiskLow, Description: "Real estate and agribusiness notes, tax exempt"},
	{Name: "Fundos DI", CDIPercent: 95, Taxable: true, LockupDays: 30, Risk: RiskLow, Description: "Benchmark-referenced funds"},
	{Name: "Tesouro IPCA+", CDIPercent: 105, Taxable: true, LockupDays: 0, Risk: RiskMedium, Description: "Inflation-linked government bond"},
	{Name: "CRI/CRA", CDIPercent: 110, Taxable: false, LockupDays: 180, Risk: RiskMedium, Description: "Receivables certificates, tax exempt"},
	{Name: "Debêntures", CDIPercent: 115, Taxable: true, LockupDays: 360, Risk: RiskMedium, Description: "Corporate bonds"},
	{Name: "Renda Variável", CDIPercent: 150, Taxable: true, LockupDays: 0, Risk: RiskHigh, Description: "Stocks and equity funds"},
	{Name: CustomModalityName, CDIPercent: 105, Taxable: true, LockupDays: 90, Risk: RiskVariable, Description: "User-defined rate percentage"},
}

var modalityIndex = buildModalityIndex()

func buildModalityIndex() map[string]int {
	idx := make(map[string]int, len(Modalities))
	for i, m := range Modalities {
		idx[m.Name] = i
	}
	return idx
}

// ModalityByName returns the catalog entry for name.
func ModalityByName(name string) (Modality, error) {
	i, ok := modalityIndex[name]
	if !ok {
		return Modality{}, &NotFoundError{Name: name}
	}
	return Modalities[i], nil
}

// ModalityNames returns all catalog names in listing order.
func ModalityNames() []string {
	names := make([]string, len(Modalities))
	for i, m := range Modalities {
		names[i] = m.Name
	}
	return names
}

// ModalitiesByRisk returns the catalog entries of the given tier, in listing
// order.
func ModalitiesByRisk(tier RiskTier) []Modality {
	var out []Modality
	for _, m := range Modalities {
		if m.Risk == tier {
			out = append(out, m)
		}
	}
	return out
}
