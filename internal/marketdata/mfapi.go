package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vishalsinghrathore00/NiveshAi/internal/models"
)

const defaultMFAPIBaseURL = "https://api.mfapi.in"

// Trading-day offsets into the NAV history used for CAGR references.
// mfapi.in publishes roughly 250 NAVs per year.
const (
	offset1Y = 250
	offset3Y = 750
	offset5Y = 1250
)

// MFAPIClient fetches mutual-fund NAV history from mfapi.in.
type MFAPIClient struct {
	BaseURL string
	Client  *http.Client
	log     *logrus.Logger
}

// NewMFAPIClient creates an mfapi.in client with a 30s timeout.
func NewMFAPIClient(log *logrus.Logger) *MFAPIClient {
	return &MFAPIClient{
		BaseURL: defaultMFAPIBaseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

type mfapiResponse struct {
	Meta struct {
		SchemeName string `json:"scheme_name"`
	} `json:"meta"`
	Data []struct {
		Date string `json:"date"`
		NAV  string `json:"nav"`
	} `json:"data"`
}

// FetchFund builds a FundSnapshot for one scheme code. The NAV history is
// newest-first as published; CAGR fields are derived from NAVs 250, 750 and
// 1250 trading days back and left nil when the scheme is too young or the
// reference NAV is zero.
func (c *MFAPIClient) FetchFund(ctx context.Context, schemeCode string) (*models.FundSnapshot, error) {
	var payload mfapiResponse
	u := fmt.Sprintf("%s/mf/%s", c.BaseURL, url.PathEscape(schemeCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mfapi fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mfapi fetch: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("mfapi decode: %w", err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("mfapi: no NAV data for scheme %s", schemeCode)
	}

	history := make([]models.NAVPoint, 0, maxHistoryDays)
	for i, item := range payload.Data {
		if i >= maxHistoryDays {
			break
		}
		nav, err := strconv.ParseFloat(item.NAV, 64)
		if err != nil {
			c.log.Warnf("mfapi: bad NAV %q for scheme %s: %v", item.NAV, schemeCode, err)
			nav = 0
		}
		history = append(history, models.NAVPoint{Date: item.Date, NAV: nav})
	}

	currentNAV := history[0].NAV
	snap := &models.FundSnapshot{
		SchemeCode: schemeCode,
		SchemeName: payload.Meta.SchemeName,
		NAV:        currentNAV,
		Date:       history[0].Date,
		NAVHistory: history,
	}

	if nav1Y := c.navAt(payload, offset1Y); nav1Y > 0 {
		cagr := (currentNAV/nav1Y - 1) * 100
		snap.CAGR1Y = &cagr
	}
	if nav3Y := c.navAt(payload, offset3Y); nav3Y > 0 {
		cagr := (math.Pow(currentNAV/nav3Y, 1.0/3) - 1) * 100
		snap.CAGR3Y = &cagr
	}
	if nav5Y := c.navAt(payload, offset5Y); nav5Y > 0 {
		cagr := (math.Pow(currentNAV/nav5Y, 1.0/5) - 1) * 100
		snap.CAGR5Y = &cagr
	}

	return snap, nil
}

func (c *MFAPIClient) navAt(payload mfapiResponse, offset int) float64 {
	if offset >= len(payload.Data) {
		return 0
	}
	nav, err := strconv.ParseFloat(payload.Data[offset].NAV, 64)
	if err != nil {
		return 0
	}
	return nav
}
