package analysis

import "github.com/vishalsinghrathore00/NiveshAi/internal/models"

// AlignmentSignal summarises how price sits against the 21/50/200 EMAs.
// Strength counts satisfied conditions on the dominant side, out of 5.
type AlignmentSignal struct {
	Type     models.Trend `json:"type"`
	Message  string       `json:"message"`
	Strength int          `json:"strength"`
}

// minAlignmentBars is the history needed for the 200-day EMA to be
// meaningful in the alignment check.
const minAlignmentBars = 200

// EMAAlignment evaluates five bullish conditions over the latest close and
// the 21/50/200 EMAs of an oldest-first close series: price above each EMA,
// EMA21 above EMA50, and EMA50 above EMA200. Four or more conditions read
// strongly bullish, one or fewer strongly bearish.
//
// Series shorter than 200 bars get a neutral insufficient-data signal
// instead of one computed from under-seeded EMAs: with so little history the
// 200-day EMA is dominated by its seed and the alignment would be noise.
func EMAAlignment(closes []float64) AlignmentSignal {
	if len(closes) < minAlignmentBars {
		return AlignmentSignal{
			Type:     models.TrendNeutral,
			Message:  "Insufficient data: Need at least 200 data points for full EMA analysis",
			Strength: 0,
		}
	}

	last := len(closes) - 1
	price := closes[last]
	ema21 := EMA(closes, 21)[last]
	ema50 := EMA(closes, 50)[last]
	ema200 := EMA(closes, 200)[last]

	bullish := 0
	for _, ok := range []bool{
		price > ema21,
		price > ema50,
		price > ema200,
		ema21 > ema50,
		ema50 > ema200,
	} {
		if ok {
			bullish++
		}
	}

	switch {
	case bullish >= 4:
		return AlignmentSignal{models.TrendBullish, "Strong Bullish: Price above all EMAs with bullish alignment", bullish}
	case bullish == 3:
		return AlignmentSignal{models.TrendBullish, "Bullish: Most indicators showing upward momentum", bullish}
	case bullish <= 1:
		return AlignmentSignal{models.TrendBearish, "Strong Bearish: Price below EMAs with bearish alignment", 5 - bullish}
	default:
		return AlignmentSignal{models.TrendBearish, "Bearish: Most indicators showing downward pressure", 5 - bullish}
	}
}
