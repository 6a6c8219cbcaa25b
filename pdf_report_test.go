package main

import (
	"bytes"
	"testing"
)

// PDF Export Tests

func TestGenerateProjectionPDF(t *testing.T) {
	m := taxableModality(t)
	s := ForwardScenario{
		InitialCapital:      30000,
		MonthlyContribution: 2500,
		TargetBalance:       500000,
		CDIPercent:          105,
		MonthlyRate:         0.0105,
		ApplyTax:            true,
	}
	proj := BuildProjection(s, Simulate(s, m))

	data, err := GenerateProjectionPDF(s, m, proj, testSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
	if len(data) < 1000 {
		t.Errorf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestGenerateSolvedPDF(t *testing.T) {
	m, err := ModalityByName("Debêntures")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	s := ReverseScenario{
		DesiredMonthlyYield: 4000,
		HorizonMonths:       24,
		CDIPercent:          m.CDIPercent,
		MonthlyRate:         0.0115,
		ApplyTax:            true,
	}
	res, err := SolveRequiredCapital(s, m)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	data, err := GenerateSolvedPDF(s, m, res, testSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestPdfText_TranslatesPortugueseLetters(t *testing.T) {
	got := pdfText("Poupança Debêntures Variável")
	if bytes.ContainsRune([]byte(got), 'ç') {
		t.Error("multi-byte cedilla survived translation")
	}
	if len(got) >= len("Poupança Debêntures Variável") {
		t.Error("translation should shrink the UTF-8 encoding")
	}
}
