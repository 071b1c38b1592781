package analysis

import "github.com/vishalsinghrathore00/NiveshAi/internal/models"

// Score weights for the stock total. These are part of the scoring
// contract, not tunables.
const (
	technicalWeight   = 0.4
	fundamentalWeight = 0.4
	riskMatchWeight   = 0.2
)

// AnalyzeStock scores one stock snapshot for the given risk profile. Each
// component starts at a 50 baseline, takes fixed additive adjustments and
// is clamped to [0,100]. Missing fundamentals (zero PE or EPS) are valid
// "unknown" inputs handled by the branches, never errors.
func AnalyzeStock(stock models.StockSnapshot, risk models.RiskProfile) models.StockAnalysis {
	closes := stock.Closes()
	rsi := RSI(closes, 14)
	trend := TrendClassification(stock.Price, stock.FiftyDayMA, stock.TwoHundredDayMA)

	technical := 50.0
	switch trend {
	case models.TrendBullish:
		technical += 20
	case models.TrendBearish:
		technical -= 20
	}
	if rsi < 30 {
		technical += 15 // oversold
	} else if rsi > 70 {
		technical -= 15 // overbought
	} else if rsi >= 40 && rsi <= 60 {
		technical += 5
	}
	if stock.Price > stock.FiftyDayMA {
		technical += 10
	}
	if stock.Price > stock.TwoHundredDayMA {
		technical += 5
	}
	technical = clamp(technical)

	fundamental := 50.0
	switch {
	case stock.PE > 0 && stock.PE < 15:
		fundamental += 20
	case stock.PE >= 15 && stock.PE < 25:
		fundamental += 10
	case stock.PE >= 25 && stock.PE < 40:
		fundamental -= 5
	case stock.PE >= 40:
		fundamental -= 15
	}
	if stock.EPS > 0 {
		fundamental += 15
	} else {
		fundamental -= 10
	}
	// Large caps read as more stable: >1 lakh crore, then >10k crore.
	if stock.MarketCap > 1e12 {
		fundamental += 10
	} else if stock.MarketCap > 1e11 {
		fundamental += 5
	}
	fundamental = clamp(fundamental)

	riskMatch := riskMatchScore(Volatility(closes), risk)

	total := technical*technicalWeight + fundamental*fundamentalWeight + riskMatch*riskMatchWeight

	return models.StockAnalysis{
		Symbol:           stock.Symbol,
		TechnicalScore:   technical,
		FundamentalScore: fundamental,
		RiskMatchScore:   riskMatch,
		TotalScore:       total,
		Trend:            trend,
		RSI:              rsi,
		Recommendation:   mapRecommendation(total),
	}
}

func riskMatchScore(volatility float64, risk models.RiskProfile) float64 {
	switch risk {
	case models.RiskLow:
		if volatility < 2 {
			return 90
		}
		if volatility < 4 {
			return 60
		}
		return 30
	case models.RiskHigh:
		if volatility > 4 {
			return 80
		}
		return 60
	default: // medium
		if volatility >= 2 && volatility <= 5 {
			return 90
		}
		return 60
	}
}

// mapRecommendation partitions [0,100] into the five recommendation bands.
// Lower bounds are inclusive: exactly 65 is "buy".
func mapRecommendation(total float64) models.Recommendation {
	switch {
	case total >= 80:
		return models.StrongBuy
	case total >= 65:
		return models.Buy
	case total >= 45:
		return models.Hold
	case total >= 30:
		return models.Sell
	default:
		return models.StrongSell
	}
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
