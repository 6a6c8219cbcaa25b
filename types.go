package main

// RiskTier classifies how volatile a modality's returns are expected to be.
type RiskTier int

const (
	RiskLow RiskTier = iota
	RiskMedium
	RiskHigh
	RiskVariable // depends on user-supplied parameters
)

func (r RiskTier) String() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	case RiskVariable:
		return "Variable"
	default:
		return "Unknown"
	}
}

// Modality describes one investment profile from the catalog. Values are
// treated as immutable; use WithCDIPercent to derive a customized copy.
type Modality struct {
	Name        string
	CDIPercent  float64 // percentage of the base rate this modality pays (105 = 105%)
	Taxable     bool    // subject to regressive withholding on gains
	LockupDays  int     // minimum holding period before redemption
	Risk        RiskTier
	Description string
}

// WithCDIPercent returns a copy of the modality paying the given percentage
// of the base rate. The catalog entry itself is never mutated.
func (m Modality) WithCDIPercent(pct float64) Modality {
	m.CDIPercent = pct
	return m
}

// ForwardScenario holds the validated inputs of a goal-seeking simulation.
// MonthlyRate is the periodic rate already scaled by the modality percentage.
type ForwardScenario struct {
	InitialCapital      float64
	MonthlyContribution float64
	TargetBalance       float64
	CDIPercent          float64
	MonthlyRate         float64
	ApplyTax            bool
	ApplyInflation      bool
}

// ReverseScenario holds the validated inputs of a required-capital solve.
type ReverseScenario struct {
	DesiredMonthlyYield float64
	HorizonMonths       int
	MonthlyContribution float64
	CDIPercent          float64
	MonthlyRate         float64
	ApplyTax            bool
	ApplyInflation      bool
}

// PeriodRecord is one month of a simulation. Balance already includes the
// month's net yield and contribution:
//
//	Balance[n] = Balance[n-1] + GrossYield - TaxWithheld + Contribution
type PeriodRecord struct {
	Month        int     `json:"month"` // 1-based
	Balance      float64 `json:"balance"`
	GrossYield   float64 `json:"gross_yield"`
	TaxWithheld  float64 `json:"tax_withheld"`
	Contribution float64 `json:"contribution"`
}

// Projection aggregates a simulated record sequence into the headline
// figures shown in reports.
type Projection struct {
	Records         []PeriodRecord
	TargetReached   bool
	Months          int
	FinalBalance    float64
	TotalInvested   float64 // initial capital plus all contributions
	TotalGrossYield float64
	TotalTax        float64
	NetYield        float64
	Rentability     float64 // net yield over invested capital, percent
	Multiplier      float64 // final balance over initial capital
	MonthsToDouble  float64 // zero when the rate is non-positive
}

// SolvedResult is the outcome of a successful required-capital solve.
type SolvedResult struct {
	RequiredInitialCapital float64 `json:"required_initial_capital"`
	PredictedMonthlyYield  float64 `json:"predicted_monthly_yield"`
	TotalCapitalInvested   float64 `json:"total_capital_invested"`
	ConvergenceError       float64 `json:"convergence_error"`
}

// ComparisonEntry is one modality's outcome when racing the same forward
// scenario across the catalog.
type ComparisonEntry struct {
	Modality      Modality
	Months        int
	FinalBalance  float64
	TotalTax      float64
	TargetReached bool
}
