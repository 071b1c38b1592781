// Package analysis implements the pure scoring core: technical indicators,
// volatility, and the stock and mutual-fund scoring engines. Every function
// here is deterministic and side-effect free, so callers may invoke them
// concurrently without coordination.
//
// Ordering conventions differ by function and are load-bearing: RSI, SMA and
// Volatility take series newest-first (index 0 = today), while the EMA
// functions take series oldest-first, because chart data arrives in that
// order. Do not unify the two without auditing every call site.
package analysis

import "github.com/vishalsinghrathore00/NiveshAi/internal/models"

// RSI computes a single-window Relative Strength Index anchored at the most
// recent period+1 closes, with closes given newest-first. It is not the
// rolling Wilder-smoothed variant: average gain and loss are plain means
// over the first `period` deltas. Returns the neutral 50 when there is not
// enough history, and 100 when the window has no losses.
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 50
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := closes[i-1] - closes[i]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// SMA averages the first `period` closes of a newest-first series. With
// fewer points than the period it degrades to the latest close, or 0 for an
// empty series, so a short history still yields a usable moving average.
func SMA(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period {
		if len(closes) == 0 {
			return 0
		}
		return closes[0]
	}
	var sum float64
	for _, c := range closes[:period] {
		sum += c
	}
	return sum / float64(period)
}

// EMA computes an exponential moving average over an oldest-first series,
// seeding with the first value so every index is defined. This is the
// variant the EMA-alignment signal uses.
func EMA(values []float64, period int) []float64 {
	ema := make([]float64, len(values))
	if len(values) == 0 {
		return ema
	}
	multiplier := 2.0 / float64(period+1)
	ema[0] = values[0]
	for i := 1; i < len(values); i++ {
		ema[i] = (values[i]-ema[i-1])*multiplier + ema[i-1]
	}
	return ema
}

// PaddedEMA is the long-range charting variant of EMA: the first period-1
// entries are nil and the period-th entry is seeded with a plain SMA.
// It is intentionally a separate function from EMA; the two disagree on the
// early part of the series and serve different call sites.
func PaddedEMA(values []float64, period int) []*float64 {
	out := make([]*float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	multiplier := 2.0 / float64(period+1)

	var sum float64
	for _, v := range values[:period] {
		sum += v
	}
	seed := sum / float64(period)
	out[period-1] = &seed

	for i := period; i < len(values); i++ {
		prev := *out[i-1]
		v := (values[i]-prev)*multiplier + prev
		out[i] = &v
	}
	return out
}

// PaddedSMA computes a windowed simple moving average over an oldest-first
// series for chart overlays, with nil for indexes before the first full
// window.
func PaddedSMA(values []float64, period int) []*float64 {
	out := make([]*float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	var sum float64
	for _, v := range values[:period] {
		sum += v
	}
	first := sum / float64(period)
	out[period-1] = &first
	for i := period; i < len(values); i++ {
		sum += values[i] - values[i-period]
		v := sum / float64(period)
		out[i] = &v
	}
	return out
}

// TrendClassification labels price position against the 50- and 200-day
// moving averages. Bullish and bearish require full alignment; every other
// ordering is neutral.
func TrendClassification(price, ma50, ma200 float64) models.Trend {
	switch {
	case price > ma50 && ma50 > ma200:
		return models.TrendBullish
	case price < ma50 && ma50 < ma200:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}
