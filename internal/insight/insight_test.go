package insight

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishalsinghrathore00/NiveshAi/internal/models"
)

type stubGenerator struct {
	prompt string
	reply  string
	err    error
}

func (s *stubGenerator) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

var stockAnalysis = models.StockAnalysis{
	Symbol:           "TCS.NS",
	TechnicalScore:   82.5,
	FundamentalScore: 70,
	RiskMatchScore:   90,
	TotalScore:       79,
	Trend:            models.TrendBullish,
	RSI:              55.2,
	Recommendation:   models.Buy,
}

var fundAnalysis = models.FundAnalysis{
	SchemeCode:     "122639",
	ReturnsScore:   85,
	StabilityScore: 75,
	TotalScore:     80,
	Recommendation: models.StrongBuy,
}

func TestStockInsight_NilGeneratorFallsBackToTemplate(t *testing.T) {
	svc := NewService(nil, testLogger())

	text, err := svc.StockInsight(context.Background(), "TCS", models.RiskMedium, stockAnalysis)
	require.NoError(t, err)

	assert.Contains(t, text, "TCS")
	assert.Contains(t, text, "medium-risk")
	assert.Contains(t, text, "bullish")
	assert.Contains(t, text, "82.5/100")
	assert.Contains(t, text, "consult with a financial advisor")
}

func TestFundInsight_NilGeneratorFallsBackToTemplate(t *testing.T) {
	svc := NewService(nil, testLogger())

	text, err := svc.FundInsight(context.Background(), "Parag Parikh Flexi Cap", fundAnalysis)
	require.NoError(t, err)

	assert.Contains(t, text, "Parag Parikh Flexi Cap")
	assert.Contains(t, text, "85.0/100")
	assert.Contains(t, text, "75.0/100")
	assert.Contains(t, text, "educational purposes")
}

func TestStockInsight_PromptCarriesAnalysis(t *testing.T) {
	gen := &stubGenerator{reply: "generated insight"}
	svc := NewService(gen, testLogger())

	text, err := svc.StockInsight(context.Background(), "TCS", models.RiskLow, stockAnalysis)
	require.NoError(t, err)
	assert.Equal(t, "generated insight", text)

	assert.Contains(t, gen.prompt, "Analyze TCS stock for a low-risk investor")
	assert.Contains(t, gen.prompt, "Trend: bullish")
	assert.Contains(t, gen.prompt, "RSI: 55.2")
	assert.Contains(t, gen.prompt, "Technical Score: 82.5/100")
	assert.Contains(t, gen.prompt, "Recommendation: buy")
}

func TestFundInsight_PromptCarriesAnalysis(t *testing.T) {
	gen := &stubGenerator{reply: "fund insight"}
	svc := NewService(gen, testLogger())

	text, err := svc.FundInsight(context.Background(), "Quant Small Cap", fundAnalysis)
	require.NoError(t, err)
	assert.Equal(t, "fund insight", text)

	assert.Contains(t, gen.prompt, "Analyze Quant Small Cap mutual fund for SIP investment")
	assert.Contains(t, gen.prompt, "Returns Score: 85.0/100")
	assert.Contains(t, gen.prompt, "Recommendation: strong_buy")
}

func TestStockInsight_GeneratorErrorPropagates(t *testing.T) {
	gen := &stubGenerator{err: errors.New("rate limited")}
	svc := NewService(gen, testLogger())

	_, err := svc.StockInsight(context.Background(), "TCS", models.RiskHigh, stockAnalysis)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
