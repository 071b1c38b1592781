package models

// RiskProfile is the caller-supplied appetite for volatility. It comes from
// stored user preferences and is never inferred by the analysis engine.
type RiskProfile string

const (
	RiskLow    RiskProfile = "low"
	RiskMedium RiskProfile = "medium"
	RiskHigh   RiskProfile = "high"
)

// ParseRiskProfile maps a string to a RiskProfile, defaulting to medium for
// anything unrecognised.
func ParseRiskProfile(s string) RiskProfile {
	switch RiskProfile(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskProfile(s)
	}
	return RiskMedium
}

// Trend classifies price position against the 50- and 200-day averages.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendNeutral Trend = "neutral"
	TrendBearish Trend = "bearish"
)

// Recommendation is the discrete label derived from a total score.
type Recommendation string

const (
	StrongBuy  Recommendation = "strong_buy"
	Buy        Recommendation = "buy"
	Hold       Recommendation = "hold"
	Sell       Recommendation = "sell"
	StrongSell Recommendation = "strong_sell"
)

// PriceBar is one day of OHLCV history.
type PriceBar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// StockSnapshot is an immutable view of one stock for a single analysis
// pass. HistoricalData is stored newest-first (index 0 = today), which is
// the convention the RSI, SMA and volatility functions expect.
type StockSnapshot struct {
	Symbol          string     `json:"symbol"`
	Name            string     `json:"name"`
	Price           float64    `json:"price"`
	Change          float64    `json:"change"`
	ChangePercent   float64    `json:"changePercent"`
	Open            float64    `json:"open"`
	High            float64    `json:"high"`
	Low             float64    `json:"low"`
	Volume          int64      `json:"volume"`
	MarketCap       float64    `json:"marketCap"`
	PE              float64    `json:"pe"`
	EPS             float64    `json:"eps"`
	FiftyDayMA      float64    `json:"fiftyDayMA"`
	TwoHundredDayMA float64    `json:"twoHundredDayMA"`
	HistoricalData  []PriceBar `json:"historicalData"`
}

// Closes returns the close series in stored (newest-first) order.
func (s *StockSnapshot) Closes() []float64 {
	closes := make([]float64, len(s.HistoricalData))
	for i, b := range s.HistoricalData {
		closes[i] = b.Close
	}
	return closes
}

// NAVPoint is one day of mutual-fund NAV history.
type NAVPoint struct {
	Date string  `json:"date"`
	NAV  float64 `json:"nav"`
}

// FundSnapshot is an immutable view of one mutual fund. The CAGR fields are
// nil when the scheme has too little history for the trading-day offsets
// they are derived from. NAVHistory is stored newest-first.
type FundSnapshot struct {
	SchemeCode string     `json:"schemeCode"`
	SchemeName string     `json:"schemeName"`
	NAV        float64    `json:"nav"`
	Date       string     `json:"date"`
	NAVHistory []NAVPoint `json:"navHistory"`
	CAGR1Y     *float64   `json:"cagr1Y,omitempty"`
	CAGR3Y     *float64   `json:"cagr3Y,omitempty"`
	CAGR5Y     *float64   `json:"cagr5Y,omitempty"`
}

// NAVs returns the NAV series in stored (newest-first) order.
func (f *FundSnapshot) NAVs() []float64 {
	navs := make([]float64, len(f.NAVHistory))
	for i, p := range f.NAVHistory {
		navs[i] = p.NAV
	}
	return navs
}

// StockAnalysis is the derived scoring output for one stock. It is a pure
// function of (StockSnapshot, RiskProfile) and is never persisted.
type StockAnalysis struct {
	Symbol           string         `json:"symbol"`
	TechnicalScore   float64        `json:"technicalScore"`
	FundamentalScore float64        `json:"fundamentalScore"`
	RiskMatchScore   float64        `json:"riskMatchScore"`
	TotalScore       float64        `json:"totalScore"`
	Trend            Trend          `json:"trend"`
	RSI              float64        `json:"rsi"`
	Recommendation   Recommendation `json:"recommendation"`
}

// FundAnalysis is the derived scoring output for one mutual fund.
type FundAnalysis struct {
	SchemeCode     string         `json:"schemeCode"`
	ReturnsScore   float64        `json:"returnsScore"`
	StabilityScore float64        `json:"stabilityScore"`
	TotalScore     float64        `json:"totalScore"`
	Recommendation Recommendation `json:"recommendation"`
}
