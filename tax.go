package main

// TaxBracket is one row of the regressive withholding table: holdings of up
// to MaxDays (inclusive) pay Rate on realized gains.
type TaxBracket struct {
	MaxDays int
	Rate    float64
}

// IRBrackets is the regressive income-tax table applied to fixed income
// gains. Holdings beyond the last row fall through to finalIRRate.
var IRBrackets = []TaxBracket{
	{MaxDays: 180, Rate: 0.225},
	{MaxDays: 360, Rate: 0.20},
	{MaxDays: 720, Rate: 0.175},
}

// finalIRRate applies to holdings longer than 720 days.
const finalIRRate = 0.15

// WithholdingRate returns the tax rate for a holding of elapsedDays days.
func WithholdingRate(elapsedDays int) float64 {
	for _, b := range IRBrackets {
		if elapsedDays <= b.MaxDays {
			return b.Rate
		}
	}
	return finalIRRate
}

// WithholdingTax returns the tax withheld on a realized gain after
// elapsedDays of holding. Non-positive gains are never taxed.
func WithholdingTax(gain float64, elapsedDays int) float64 {
	if gain <= 0 {
		return 0
	}
	return gain * WithholdingRate(elapsedDays)
}
