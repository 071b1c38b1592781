package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishalsinghrathore00/NiveshAi/internal/models"
)

func TestRSI_InsufficientHistory(t *testing.T) {
	assert.Equal(t, 50.0, RSI(nil, 14))
	assert.Equal(t, 50.0, RSI([]float64{100}, 14))

	// Exactly period closes is still one short of the period+1 needed.
	closes := make([]float64, 14)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	assert.Equal(t, 50.0, RSI(closes, 14))
	assert.Equal(t, 50.0, RSI(closes, 0))
	assert.Equal(t, 50.0, RSI(closes, -3))
}

func TestRSI_AllGainsReturns100(t *testing.T) {
	// Newest-first and strictly decreasing going back means every delta in
	// the window is a gain.
	closes := make([]float64, 16)
	for i := range closes {
		closes[i] = 115 - float64(i)
	}
	assert.Equal(t, 100.0, RSI(closes, 14))
}

func TestRSI_KnownValue(t *testing.T) {
	// Fourteen deltas alternating +2 gain and -1 loss:
	// avgGain = 1, avgLoss = 0.5, RS = 2, RSI = 100 - 100/3.
	closes := make([]float64, 15)
	closes[0] = 100
	for i := 1; i < 15; i++ {
		delta := 2.0
		if i%2 == 0 {
			delta = -1.0
		}
		closes[i] = closes[i-1] - delta
	}
	assert.InDelta(t, 100.0-100.0/3.0, RSI(closes, 14), 1e-9)
}

func TestRSI_WindowIgnoresOlderBars(t *testing.T) {
	closes := make([]float64, 15)
	closes[0] = 100
	for i := 1; i < 15; i++ {
		closes[i] = closes[i-1] - 1
	}
	withTail := append(append([]float64{}, closes...), 5000, 1, 5000, 1)
	assert.Equal(t, RSI(closes, 14), RSI(withTail, 14))
}

func TestSMA(t *testing.T) {
	assert.Equal(t, 15.0, SMA([]float64{10, 20, 30}, 2))
	assert.Equal(t, 20.0, SMA([]float64{10, 20, 30}, 3))

	// Short history degrades to the latest close, empty to zero.
	assert.Equal(t, 10.0, SMA([]float64{10, 20, 30}, 5))
	assert.Equal(t, 0.0, SMA(nil, 50))
	assert.Equal(t, 10.0, SMA([]float64{10, 20}, 0))
}

func TestEMA_SeededWithFirstValue(t *testing.T) {
	got := EMA([]float64{10, 11, 12, 13}, 3)
	require.Len(t, got, 4)
	assert.Equal(t, 10.0, got[0])
	assert.InDelta(t, 10.5, got[1], 1e-9)
	assert.InDelta(t, 11.25, got[2], 1e-9)
	assert.InDelta(t, 12.125, got[3], 1e-9)

	assert.Empty(t, EMA(nil, 21))
}

func TestPaddedEMA_NilPrefixAndSMASeed(t *testing.T) {
	got := PaddedEMA([]float64{10, 11, 12, 13}, 3)
	require.Len(t, got, 4)
	assert.Nil(t, got[0])
	assert.Nil(t, got[1])
	require.NotNil(t, got[2])
	assert.InDelta(t, 11.0, *got[2], 1e-9)
	require.NotNil(t, got[3])
	assert.InDelta(t, 12.0, *got[3], 1e-9)
}

func TestPaddedEMA_ShortSeriesAllNil(t *testing.T) {
	got := PaddedEMA([]float64{10, 11}, 3)
	require.Len(t, got, 2)
	for _, v := range got {
		assert.Nil(t, v)
	}
}

// The two EMA variants intentionally disagree early in the series; this
// pins the divergence so nobody "fixes" one in terms of the other.
func TestEMAVariantsDiverge(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}
	full := EMA(values, 3)
	padded := PaddedEMA(values, 3)
	require.NotNil(t, padded[2])
	assert.NotEqual(t, full[2], *padded[2])
}

func TestPaddedSMA(t *testing.T) {
	got := PaddedSMA([]float64{1, 2, 3}, 2)
	require.Len(t, got, 3)
	assert.Nil(t, got[0])
	require.NotNil(t, got[1])
	assert.InDelta(t, 1.5, *got[1], 1e-9)
	require.NotNil(t, got[2])
	assert.InDelta(t, 2.5, *got[2], 1e-9)
}

func TestTrendClassification(t *testing.T) {
	cases := []struct {
		name               string
		price, ma50, ma200 float64
		want               models.Trend
	}{
		{"fully aligned up", 110, 100, 90, models.TrendBullish},
		{"fully aligned down", 90, 100, 110, models.TrendBearish},
		{"price above short but short below long", 110, 100, 105, models.TrendNeutral},
		{"price below short but short above long", 95, 100, 90, models.TrendNeutral},
		{"all equal", 100, 100, 100, models.TrendNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TrendClassification(tc.price, tc.ma50, tc.ma200))
		})
	}
}

func TestVolatility(t *testing.T) {
	assert.Equal(t, 0.0, Volatility(nil))
	assert.Equal(t, 0.0, Volatility([]float64{100}))

	// Constant returns have zero deviation.
	assert.Equal(t, 0.0, Volatility([]float64{102, 100}))

	// Returns of +6% then 0%: mean 3, population std dev 3.
	assert.InDelta(t, 3.0, Volatility([]float64{106, 100, 100}), 1e-9)
}

func TestVolatility_WindowCappedAt29Returns(t *testing.T) {
	prices := make([]float64, 45)
	for i := range prices {
		prices[i] = 100 + float64(i%7)
	}
	// Make the old tail wild; it must not affect the result.
	wild := append(append([]float64{}, prices[:30]...), 10000, 1, 10000, 1)
	assert.Equal(t, Volatility(prices[:30]), Volatility(wild))
}
