package analysis

import "github.com/vishalsinghrathore00/NiveshAi/internal/models"

// AnalyzeFund scores one mutual fund from its multi-horizon CAGR and NAV
// volatility. The three CAGR checks are deliberately independent: each
// defined field contributes through its own thresholds, and a nil field
// contributes nothing.
func AnalyzeFund(fund models.FundSnapshot) models.FundAnalysis {
	returns := 50.0

	if fund.CAGR1Y != nil {
		switch {
		case *fund.CAGR1Y > 20:
			returns += 20
		case *fund.CAGR1Y > 10:
			returns += 10
		case *fund.CAGR1Y < 0:
			returns -= 15
		}
	}
	if fund.CAGR3Y != nil {
		switch {
		case *fund.CAGR3Y > 15:
			returns += 15
		case *fund.CAGR3Y > 10:
			returns += 8
		}
	}
	if fund.CAGR5Y != nil {
		switch {
		case *fund.CAGR5Y > 12:
			returns += 15
		case *fund.CAGR5Y > 8:
			returns += 8
		}
	}
	returns = clamp(returns)

	volatility := Volatility(fund.NAVs())
	var stability float64
	switch {
	case volatility < 1:
		stability = 90
	case volatility < 2:
		stability = 75
	case volatility < 3:
		stability = 60
	default:
		stability = 40
	}

	total := returns*0.5 + stability*0.5

	return models.FundAnalysis{
		SchemeCode:     fund.SchemeCode,
		ReturnsScore:   returns,
		StabilityScore: stability,
		TotalScore:     total,
		Recommendation: mapRecommendation(total),
	}
}
