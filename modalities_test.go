package main

import (
	"errors"
	"testing"
)

// Modality Catalog Tests

func TestModalityByName_Known(t *testing.T) {
	m, err := ModalityByName("CDI 105%")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.CDIPercent != 105 {
		t.Errorf("CDI 105%%: expected 105%% of base rate, got %.0f%%", m.CDIPercent)
	}
	if !m.Taxable {
		t.Error("CDI 105% should be taxable")
	}
	if m.LockupDays != 60 {
		t.Errorf("CDI 105%%: expected 60 lockup days, got %d", m.LockupDays)
	}
}

func TestModalityByName_Unknown(t *testing.T) {
	_, err := ModalityByName("Bitcoin")
	if err == nil {
		t.Fatal("expected an error for an unknown modality")
	}
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if nfe.Name != "Bitcoin" {
		t.Errorf("error should carry the requested name, got %q", nfe.Name)
	}
}

func TestModalityNames_OrderAndCompleteness(t *testing.T) {
	names := ModalityNames()
	if len(names) != len(Modalities) {
		t.Fatalf("expected %d names, got %d", len(Modalities), len(names))
	}
	if names[0] != "CDI 100%" {
		t.Errorf("listing order should start with CDI 100%%, got %q", names[0])
	}

	// Every name must resolve back to its entry
	for _, name := range names {
		if _, err := ModalityByName(name); err != nil {
			t.Errorf("catalog name %q does not resolve: %v", name, err)
		}
	}
}

func TestModalityCatalog_TaxExemptions(t *testing.T) {
	// The tax-exempt profiles must never be marked taxable
	for _, name := range []string{"Poupança", "LCI/LCA", "CRI/CRA"} {
		m, err := ModalityByName(name)
		if err != nil {
			t.Fatalf("missing catalog entry %q: %v", name, err)
		}
		if m.Taxable {
			t.Errorf("%s should be tax exempt", name)
		}
	}
}

func TestWithCDIPercent_DoesNotMutateCatalog(t *testing.T) {
	original, _ := ModalityByName(CustomModalityName)
	custom := original.WithCDIPercent(180)

	if custom.CDIPercent != 180 {
		t.Errorf("override: expected 180, got %.0f", custom.CDIPercent)
	}
	again, _ := ModalityByName(CustomModalityName)
	if again.CDIPercent != original.CDIPercent {
		t.Errorf("catalog entry mutated: %.0f != %.0f", again.CDIPercent, original.CDIPercent)
	}
}

func TestModalitiesByRisk(t *testing.T) {
	high := ModalitiesByRisk(RiskHigh)
	if len(high) != 1 || high[0].Name != "Renda Variável" {
		t.Errorf("expected exactly one high-risk modality, got %v", high)
	}
}
