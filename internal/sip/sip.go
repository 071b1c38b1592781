// Package sip implements the systematic-investment-plan compounding engine:
// month-by-month projection with annual step-up, inflation deflation and
// long-term capital-gains tax, a closed-form variant for plain SIPs, and an
// inverse solver for goal-based planning. All functions are pure.
package sip

import "math"

// Indian LTCG regime for equity funds: gains over the exemption are taxed
// at a flat rate.
const (
	ltcgExemption = 125000.0
	ltcgRate      = 0.125
)

// Plan describes one SIP projection request. Percentages are whole numbers
// (12 means 12% per year).
type Plan struct {
	MonthlyAmount float64
	AnnualRatePct float64
	Years         int
	StepUpPct     float64
	InflationPct  float64
	ApplyTax      bool
}

// YearlyEntry is the state recorded at each year boundary. Monetary fields
// are rounded to whole currency units.
type YearlyEntry struct {
	Year              int     `json:"year"`
	Invested          float64 `json:"invested"`
	Value             float64 `json:"value"`
	Returns           float64 `json:"returns"`
	SIPAmount         float64 `json:"sipAmount"`
	InflationAdjusted float64 `json:"inflationAdjusted"`
}

// Result is the full projection output. TotalInvested is the exact sum of
// contributions, kept unrounded so it always equals the per-month sum.
type Result struct {
	FutureValue            float64       `json:"futureValue"`
	TotalInvested          float64       `json:"totalInvested"`
	TotalReturns           float64       `json:"totalReturns"`
	InflationAdjustedValue float64       `json:"inflationAdjustedValue"`
	TaxableGains           float64       `json:"taxableGains"`
	PostTaxValue           float64       `json:"postTaxValue"`
	YearlyBreakdown        []YearlyEntry `json:"yearlyBreakdown"`
}

// Project runs the month-by-month compounding simulation. Each month the
// contribution is added and the whole balance grows by the monthly rate;
// after each full year the contribution steps up by StepUpPct.
func Project(p Plan) Result {
	monthlyRate := p.AnnualRatePct / 12 / 100

	var totalInvested, value float64
	contribution := p.MonthlyAmount
	breakdown := make([]YearlyEntry, 0, p.Years)

	for year := 1; year <= p.Years; year++ {
		for month := 1; month <= 12; month++ {
			value = (value + contribution) * (1 + monthlyRate)
			totalInvested += contribution
		}

		inflationFactor := math.Pow(1+p.InflationPct/100, float64(year))
		breakdown = append(breakdown, YearlyEntry{
			Year:              year,
			Invested:          math.Round(totalInvested),
			Value:             math.Round(value),
			Returns:           math.Round(value - totalInvested),
			SIPAmount:         math.Round(contribution),
			InflationAdjusted: math.Round(value / inflationFactor),
		})

		contribution *= 1 + p.StepUpPct/100
	}

	futureValue := math.Round(value)
	totalReturns := futureValue - totalInvested
	inflationFactor := math.Pow(1+p.InflationPct/100, float64(p.Years))

	res := Result{
		FutureValue:            futureValue,
		TotalInvested:          totalInvested,
		TotalReturns:           totalReturns,
		InflationAdjustedValue: math.Round(futureValue / inflationFactor),
		PostTaxValue:           futureValue,
		YearlyBreakdown:        breakdown,
	}

	if p.ApplyTax && totalReturns > ltcgExemption {
		taxable := totalReturns - ltcgExemption
		tax := taxable * ltcgRate
		res.TaxableGains = math.Round(taxable)
		res.PostTaxValue = math.Round(futureValue - tax)
	}

	return res
}

// Returns is the closed-form plain-SIP calculator (no step-up, no
// inflation, no tax): FV = P * [((1+r)^n - 1) / r] * (1+r). It agrees with
// Project within rounding for the same inputs.
func Returns(monthlyAmount, annualRatePct float64, years int) (futureValue, totalInvested, totalReturns float64) {
	monthlyRate := annualRatePct / 12 / 100
	months := float64(years * 12)

	fv := monthlyAmount * ((math.Pow(1+monthlyRate, months) - 1) / monthlyRate) * (1 + monthlyRate)
	totalInvested = monthlyAmount * months

	return math.Round(fv), totalInvested, math.Round(fv - totalInvested)
}
