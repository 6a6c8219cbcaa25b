package main

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// pdfText converts UTF-8 text to PDF-safe encoding
// Catalog names carry Portuguese letters; standard PDF fonts expect Latin-1.
var pdfReplacer = strings.NewReplacer(
	"ç", "\xe7", "ã", "\xe3", "á", "\xe1", "â", "\xe2",
	"é", "\xe9", "ê", "\xea", "í", "\xed", "ó", "\xf3",
	"ô", "\xf4", "õ", "\xf5", "ú", "\xfa",
)

func pdfText(s string) string {
	return pdfReplacer.Replace(s)
}

// FormatMoneyPDF formats money for PDF output
func FormatMoneyPDF(amount float64) string {
	return pdfText(FormatMoney(amount))
}

// PDF layout constants
const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 15.0
	pdfMarginRight  = 15.0
	pdfMarginBottom = 20.0
	pdfPageWidth    = 210.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
)

// PDFProjectionReport renders a forward projection to PDF.
type PDFProjectionReport struct {
	pdf      *fpdf.Fpdf
	scenario ForwardScenario
	modality Modality
	proj     Projection
	snap     RateSnapshot
}

// GenerateProjectionPDF builds the PDF bytes for a forward projection.
func GenerateProjectionPDF(s ForwardScenario, m Modality, proj Projection, snap RateSnapshot) ([]byte, error) {
	report := &PDFProjectionReport{
		pdf:      fpdf.New("P", "mm", "A4", ""),
		scenario: s,
		modality: m,
		proj:     proj,
		snap:     snap,
	}

	report.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	report.pdf.SetAutoPageBreak(true, pdfMarginBottom)

	report.addSummaryPage()
	report.addEvolutionTable()

	var buf bytes.Buffer
	if err := report.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *PDFProjectionReport) addSummaryPage() {
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 24)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 14, "Investment Growth Projection", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(pdfContentWidth, 7, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)

	r.sectionTitle("Scenario")
	r.keyValue("Modality", pdfText(fmt.Sprintf("%s (%.0f%% of base rate, %s risk)", r.modality.Name, r.scenario.CDIPercent, r.modality.Risk)))
	r.keyValue("Initial capital", FormatMoneyPDF(r.scenario.InitialCapital))
	r.keyValue("Monthly contribution", FormatMoneyPDF(r.scenario.MonthlyContribution))
	r.keyValue("Target balance", FormatMoneyPDF(r.scenario.TargetBalance))
	r.keyValue("Annual base rate", fmt.Sprintf("%.2f%%", r.snap.AnnualRate))
	r.pdf.Ln(4)

	r.sectionTitle("Result")
	if r.proj.TargetReached {
		r.keyValue("Target reached in", fmt.Sprintf("%d months (%.1f years)", r.proj.Months, float64(r.proj.Months)/12))
	} else {
		r.keyValue("Target", fmt.Sprintf("not reached within %d months", r.proj.Months))
	}
	r.keyValue("Final balance", FormatMoneyPDF(r.proj.FinalBalance))
	r.keyValue("Total invested", FormatMoneyPDF(r.proj.TotalInvested))
	r.keyValue("Net yield", FormatMoneyPDF(r.proj.NetYield))
	r.keyValue("Tax withheld", FormatMoneyPDF(r.proj.TotalTax))
	r.keyValue("Rentability", fmt.Sprintf("%.2f%%", r.proj.Rentability))
	r.keyValue("Capital multiplier", fmt.Sprintf("%.2fx", r.proj.Multiplier))
}

func (r *PDFProjectionReport) addEvolutionTable() {
	if len(r.proj.Records) == 0 {
		return
	}

	r.pdf.AddPage()
	r.sectionTitle("Monthly Evolution")

	headers := []string{"Month", "Balance", "Gross Yield", "Tax", "Contribution"}
	widths := []float64{20, 45, 40, 35, 40}

	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		r.pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Arial", "", 8)
	r.pdf.SetTextColor(50, 50, 50)
	fill := false
	for _, rec := range r.proj.Records {
		r.pdf.SetFillColor(245, 247, 250)
		r.pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", rec.Month), "1", 0, "C", fill, 0, "")
		r.pdf.CellFormat(widths[1], 6, FormatMoneyPDF(rec.Balance), "1", 0, "R", fill, 0, "")
		r.pdf.CellFormat(widths[2], 6, FormatMoneyPDF(rec.GrossYield), "1", 0, "R", fill, 0, "")
		r.pdf.CellFormat(widths[3], 6, FormatMoneyPDF(rec.TaxWithheld), "1", 0, "R", fill, 0, "")
		r.pdf.CellFormat(widths[4], 6, FormatMoneyPDF(rec.Contribution), "1", 0, "R", fill, 0, "")
		r.pdf.Ln(-1)
		fill = !fill
	}
}

func (r *PDFProjectionReport) sectionTitle(title string) {
	r.pdf.SetFont("Arial", "B", 13)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 9, title, "B", 1, "L", false, 0, "")
	r.pdf.Ln(2)
}

func (r *PDFProjectionReport) keyValue(key, value string) {
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(60, 6, key, "", 0, "L", false, 0, "")
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.SetTextColor(30, 30, 30)
	r.pdf.CellFormat(pdfContentWidth-60, 6, value, "", 1, "L", false, 0, "")
}

// GenerateSolvedPDF builds a one-page PDF for a required-capital solve.
func GenerateSolvedPDF(s ReverseScenario, m Modality, res SolvedResult, snap RateSnapshot) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 14, "Required Capital Analysis", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(pdfContentWidth, 7, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	row := func(key, value string) {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(80, 80, 80)
		pdf.CellFormat(75, 7, key, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(30, 30, 30)
		pdf.CellFormat(pdfContentWidth-75, 7, value, "", 1, "L", false, 0, "")
	}

	row("Modality", pdfText(fmt.Sprintf("%s (%.0f%% of base rate)", m.Name, s.CDIPercent)))
	row("Desired monthly yield", FormatMoneyPDF(s.DesiredMonthlyYield))
	row("Horizon", fmt.Sprintf("%d months", s.HorizonMonths))
	row("Monthly contribution", FormatMoneyPDF(s.MonthlyContribution))
	row("Annual base rate", fmt.Sprintf("%.2f%%", snap.AnnualRate))
	pdf.Ln(4)
	row("Required initial capital", FormatMoneyPDF(res.RequiredInitialCapital))
	row("Predicted monthly yield", FormatMoneyPDF(res.PredictedMonthlyYield))
	row("Total capital invested", FormatMoneyPDF(res.TotalCapitalInvested))
	row("Convergence error", FormatMoneyPDF(res.ConvergenceError))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
