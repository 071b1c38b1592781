package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vishalsinghrathore00/NiveshAi/internal/models"
)

func f(v float64) *float64 { return &v }

func navHistory(navs ...float64) []models.NAVPoint {
	points := make([]models.NAVPoint, len(navs))
	for i, n := range navs {
		points[i] = models.NAVPoint{NAV: n}
	}
	return points
}

func TestAnalyzeFund_AllHorizonsStrong(t *testing.T) {
	fund := models.FundSnapshot{
		SchemeCode: "120503",
		CAGR1Y:     f(25),
		CAGR3Y:     f(16),
		CAGR5Y:     f(13),
		NAVHistory: navHistory(100, 100, 100), // zero volatility
	}

	got := AnalyzeFund(fund)

	// Returns: 50 +20 +15 +15 = 100. Stability: vol < 1 so 90.
	assert.Equal(t, 100.0, got.ReturnsScore)
	assert.Equal(t, 90.0, got.StabilityScore)
	assert.InDelta(t, 95.0, got.TotalScore, 1e-9)
	assert.Equal(t, models.StrongBuy, got.Recommendation)
}

func TestAnalyzeFund_MidTierThresholds(t *testing.T) {
	fund := models.FundSnapshot{
		SchemeCode: "100033",
		CAGR1Y:     f(15), // +10
		CAGR3Y:     f(11), // +8
		CAGR5Y:     f(9),  // +8
		NAVHistory: navHistory(100, 100),
	}
	got := AnalyzeFund(fund)
	assert.Equal(t, 76.0, got.ReturnsScore)
}

func TestAnalyzeFund_NegativeYearPenalised(t *testing.T) {
	fund := models.FundSnapshot{
		SchemeCode: "100034",
		CAGR1Y:     f(-5),
		NAVHistory: navHistory(100, 100),
	}
	got := AnalyzeFund(fund)
	assert.Equal(t, 35.0, got.ReturnsScore)
}

// A nil horizon contributes nothing; it is neither a zero nor a penalty.
func TestAnalyzeFund_NilHorizonsIgnored(t *testing.T) {
	fund := models.FundSnapshot{
		SchemeCode: "152064",
		NAVHistory: navHistory(100, 100),
	}
	got := AnalyzeFund(fund)
	assert.Equal(t, 50.0, got.ReturnsScore)

	// A defined 3Y alone still moves the score.
	fund.CAGR3Y = f(18)
	assert.Equal(t, 65.0, AnalyzeFund(fund).ReturnsScore)
}

func TestAnalyzeFund_StabilityBands(t *testing.T) {
	cases := []struct {
		name string
		navs []float64
		want float64
	}{
		// Newest-first: +6% then 0% daily moves give std dev 3.
		{"choppy", []float64{106, 100, 100}, 40},
		// +2.4% then 0% gives std dev 1.2.
		{"moderate", []float64{102.4, 100, 100}, 75},
		{"calm", []float64{100.1, 100, 100}, 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fund := models.FundSnapshot{SchemeCode: "x", NAVHistory: navHistory(tc.navs...)}
			assert.Equal(t, tc.want, AnalyzeFund(fund).StabilityScore)
		})
	}
}

func TestAnalyzeFund_EmptyHistoryFailsSoft(t *testing.T) {
	got := AnalyzeFund(models.FundSnapshot{SchemeCode: "empty"})
	assert.Equal(t, 50.0, got.ReturnsScore)
	assert.Equal(t, 90.0, got.StabilityScore) // zero volatility
	assert.Equal(t, models.Buy, got.Recommendation)
}
