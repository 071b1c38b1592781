// Package marketdata fetches stock and mutual-fund snapshots from the
// public Yahoo Finance and mfapi.in APIs. These are the fallible, network
// bound collaborators of the pure analysis core; their errors surface to
// callers as "no data" for that asset.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vishalsinghrathore00/NiveshAi/internal/analysis"
	"github.com/vishalsinghrathore00/NiveshAi/internal/models"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// maxHistoryDays caps the historical window kept on a snapshot.
const maxHistoryDays = 365

// YahooClient fetches stock quotes and daily history from Yahoo Finance.
type YahooClient struct {
	BaseURL string
	Client  *http.Client
	log     *logrus.Logger
}

// NewYahooClient creates a Yahoo Finance client with a 30s timeout.
func NewYahooClient(log *logrus.Logger) *YahooClient {
	return &YahooClient{
		BaseURL: defaultYahooBaseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol              string  `json:"symbol"`
				ShortName           string  `json:"shortName"`
				RegularMarketPrice  float64 `json:"regularMarketPrice"`
				ChartPreviousClose  float64 `json:"chartPreviousClose"`
				RegularMarketVolume int64   `json:"regularMarketVolume"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				MarketCap struct {
					Raw float64 `json:"raw"`
				} `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE struct {
					Raw float64 `json:"raw"`
				} `json:"trailingPE"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				TrailingEps struct {
					Raw float64 `json:"raw"`
				} `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// FetchStock builds a full StockSnapshot for one symbol: a year of daily
// bars (stored newest-first), 50/200-day moving averages and, when the
// summary endpoint cooperates, PE, EPS and market cap. A failed summary
// call degrades those fields to zero rather than failing the snapshot.
func (c *YahooClient) FetchStock(ctx context.Context, symbol string) (*models.StockSnapshot, error) {
	var chart yahooChart
	chartURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1y", c.BaseURL, url.PathEscape(symbol))
	if err := c.getJSON(ctx, chartURL, &chart); err != nil {
		return nil, fmt.Errorf("yahoo chart: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart: no result for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart: no quote data for %s", symbol)
	}
	quote := result.Indicators.Quote[0]

	// Oldest-first from Yahoo; drop zero closes, then reverse to the
	// newest-first convention the indicator functions expect.
	history := make([]models.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bar := models.PriceBar{
			Date:   time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Open:   deref(quote.Open, i),
			High:   deref(quote.High, i),
			Low:    deref(quote.Low, i),
			Close:  deref(quote.Close, i),
			Volume: derefInt(quote.Volume, i),
		}
		if bar.Close > 0 {
			history = append(history, bar)
		}
	}
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	if len(history) > maxHistoryDays {
		history = history[:maxHistoryDays]
	}

	closes := make([]float64, len(history))
	for i, b := range history {
		closes[i] = b.Close
	}

	snap := &models.StockSnapshot{
		Symbol:          result.Meta.Symbol,
		Name:            result.Meta.ShortName,
		FiftyDayMA:      analysis.SMA(closes, 50),
		TwoHundredDayMA: analysis.SMA(closes, 200),
		HistoricalData:  history,
	}
	if snap.Symbol == "" {
		snap.Symbol = symbol
	}
	if snap.Name == "" {
		snap.Name = snap.Symbol
	}

	snap.Price = result.Meta.RegularMarketPrice
	if snap.Price == 0 && len(closes) > 0 {
		snap.Price = closes[0]
	}
	previousClose := result.Meta.ChartPreviousClose
	if previousClose == 0 {
		if len(closes) > 1 {
			previousClose = closes[1]
		} else {
			previousClose = snap.Price
		}
	}
	snap.Change = snap.Price - previousClose
	if previousClose > 0 {
		snap.ChangePercent = snap.Change / previousClose * 100
	}

	if len(history) > 0 {
		snap.Open = history[0].Open
		snap.High = history[0].High
		snap.Low = history[0].Low
		snap.Volume = history[0].Volume
	}
	if result.Meta.RegularMarketVolume > 0 {
		snap.Volume = result.Meta.RegularMarketVolume
	}

	var summary yahooSummary
	summaryURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price,summaryDetail,defaultKeyStatistics", c.BaseURL, url.PathEscape(symbol))
	if err := c.getJSON(ctx, summaryURL, &summary); err != nil {
		c.log.Warnf("yahoo summary for %s failed, fundamentals unavailable: %v", symbol, err)
	} else if len(summary.QuoteSummary.Result) > 0 {
		r := summary.QuoteSummary.Result[0]
		snap.MarketCap = r.Price.MarketCap.Raw
		snap.PE = r.SummaryDetail.TrailingPE.Raw
		snap.EPS = r.DefaultKeyStatistics.TrailingEps.Raw
	}

	return snap, nil
}

func (c *YahooClient) getJSON(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func deref(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}

func derefInt(values []*int64, i int) int64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}
