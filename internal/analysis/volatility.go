package analysis

import "math"

// Volatility returns the population standard deviation of day-over-day
// percentage returns over at most the most recent 29 observations, with
// prices given newest-first. Fewer than two prices, or a window of only
// zero prices, yields 0.
func Volatility(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	limit := len(prices)
	if limit > 30 {
		limit = 30
	}

	returns := make([]float64, 0, limit-1)
	for i := 1; i < limit; i++ {
		if prices[i] == 0 {
			continue
		}
		returns = append(returns, (prices[i-1]-prices[i])/prices[i]*100)
	}
	if len(returns) == 0 {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		diff := r - mean
		variance += diff * diff
	}
	variance /= float64(len(returns))

	return math.Sqrt(variance)
}
