package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/vishalsinghrathore00/NiveshAi/internal/analysis"
	"github.com/vishalsinghrathore00/NiveshAi/internal/database"
	"github.com/vishalsinghrathore00/NiveshAi/internal/insight"
	"github.com/vishalsinghrathore00/NiveshAi/internal/models"
	"github.com/vishalsinghrathore00/NiveshAi/internal/service"
	"github.com/vishalsinghrathore00/NiveshAi/internal/sip"
)

// StockProvider fetches stock snapshots.
type StockProvider interface {
	FetchStock(ctx context.Context, symbol string) (*models.StockSnapshot, error)
}

// FundProvider fetches mutual-fund snapshots.
type FundProvider interface {
	FetchFund(ctx context.Context, schemeCode string) (*models.FundSnapshot, error)
}

type Handler struct {
	repo     *database.Repo
	stocks   StockProvider
	funds    FundProvider
	quotes   service.QuoteProvider
	insights *insight.Service
	log      *logrus.Logger
}

func NewHandler(r *database.Repo, stocks StockProvider, funds FundProvider, quotes service.QuoteProvider, insights *insight.Service, log *logrus.Logger) *Handler {
	return &Handler{repo: r, stocks: stocks, funds: funds, quotes: quotes, insights: insights, log: log}
}

// Register wires all routes onto the gin engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	r.GET("/stocks/:symbol", h.GetStock)
	r.GET("/stocks/:symbol/quote", h.GetQuote)
	r.GET("/stocks/:symbol/analysis", h.GetStockAnalysis)
	r.GET("/stocks/:symbol/indicators", h.GetStockIndicators)
	r.GET("/funds/:code", h.GetFund)
	r.GET("/funds/:code/analysis", h.GetFundAnalysis)

	r.POST("/sip/project", h.ProjectSIP)
	r.POST("/sip/goal", h.SolveGoalSIP)

	r.GET("/users/:userId/watchlist", h.GetWatchlist)
	r.POST("/users/:userId/watchlist", h.AddWatchlistItem)
	r.DELETE("/users/:userId/watchlist/:id", h.RemoveWatchlistItem)
	r.GET("/users/:userId/preferences", h.GetPreferences)
	r.POST("/users/:userId/preferences", h.SavePreferences)

	r.POST("/insights", h.GenerateInsight)
}

func (h *Handler) GetStock(c *gin.Context) {
	snap, err := h.stocks.FetchStock(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		h.log.Warnf("fetch stock failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch stock data"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetQuote serves the last-traded price through the DB-backed quote cache,
// so repeated polling does not hammer the upstream API.
func (h *Handler) GetQuote(c *gin.Context) {
	symbol := c.Param("symbol")
	price, ts, err := h.quotes.GetPrice(c.Request.Context(), symbol)
	if err != nil {
		h.log.Warnf("get quote for %s failed: %v", symbol, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch quote"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"symbol":    symbol,
		"price":     price.StringFixed(2),
		"fetchedAt": ts.UTC(),
	})
}

func (h *Handler) GetStockAnalysis(c *gin.Context) {
	snap, err := h.stocks.FetchStock(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		h.log.Warnf("fetch stock failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch stock data"})
		return
	}
	risk := models.ParseRiskProfile(c.DefaultQuery("risk", string(models.RiskMedium)))
	c.JSON(http.StatusOK, analysis.AnalyzeStock(*snap, risk))
}

// GetStockIndicators returns chart overlay series (null-padded EMAs and
// SMAs, oldest-first) plus the EMA alignment signal.
func (h *Handler) GetStockIndicators(c *gin.Context) {
	snap, err := h.stocks.FetchStock(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		h.log.Warnf("fetch stock failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch stock data"})
		return
	}

	// Reverse the stored newest-first history for the oldest-first EMA
	// convention.
	bars := snap.HistoricalData
	closes := make([]float64, len(bars))
	dates := make([]string, len(bars))
	for i, b := range bars {
		j := len(bars) - 1 - i
		closes[j] = b.Close
		dates[j] = b.Date
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol": snap.Symbol,
		"dates":  dates,
		"ema21":  analysis.PaddedEMA(closes, 21),
		"ema50":  analysis.PaddedEMA(closes, 50),
		"ema200": analysis.PaddedEMA(closes, 200),
		"ma50":   analysis.PaddedSMA(closes, 50),
		"ma200":  analysis.PaddedSMA(closes, 200),
		"signal": analysis.EMAAlignment(closes),
	})
}

func (h *Handler) GetFund(c *gin.Context) {
	snap, err := h.funds.FetchFund(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.log.Warnf("fetch fund failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch fund data"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) GetFundAnalysis(c *gin.Context) {
	snap, err := h.funds.FetchFund(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.log.Warnf("fetch fund failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch fund data"})
		return
	}
	c.JSON(http.StatusOK, analysis.AnalyzeFund(*snap))
}

type sipRequest struct {
	MonthlyAmount float64 `json:"monthlyAmount" binding:"required,gt=0"`
	ExpectedRate  float64 `json:"expectedRate" binding:"required,gt=0"`
	Years         int     `json:"years" binding:"required,gt=0"`
	StepUpPercent float64 `json:"stepUpPercent"`
	InflationRate float64 `json:"inflationRate"`
	IncludeTax    bool    `json:"includeTax"`
}

func (h *Handler) ProjectSIP(c *gin.Context) {
	var req sipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid sip request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sip.Project(sip.Plan{
		MonthlyAmount: req.MonthlyAmount,
		AnnualRatePct: req.ExpectedRate,
		Years:         req.Years,
		StepUpPct:     req.StepUpPercent,
		InflationPct:  req.InflationRate,
		ApplyTax:      req.IncludeTax,
	}))
}

type goalSIPRequest struct {
	TargetAmount  float64 `json:"targetAmount" binding:"required,gt=0"`
	ExpectedRate  float64 `json:"expectedRate" binding:"required,gt=0"`
	Years         int     `json:"years" binding:"required,gt=0"`
	StepUpPercent float64 `json:"stepUpPercent"`
}

func (h *Handler) SolveGoalSIP(c *gin.Context) {
	var req goalSIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid goal sip request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	monthly := sip.SolveForTarget(req.TargetAmount, req.ExpectedRate, req.Years, req.StepUpPercent)
	projection := sip.Project(sip.Plan{
		MonthlyAmount: monthly,
		AnnualRatePct: req.ExpectedRate,
		Years:         req.Years,
		StepUpPct:     req.StepUpPercent,
	})
	c.JSON(http.StatusOK, gin.H{"requiredMonthlyAmount": monthly, "projection": projection})
}

func (h *Handler) GetWatchlist(c *gin.Context) {
	items, err := h.repo.GetWatchlist(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.log.Errorf("get watchlist failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type watchlistRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Name   string `json:"name"`
}

func (h *Handler) AddWatchlistItem(c *gin.Context) {
	var req watchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	userID := c.Param("userId")
	ctx := c.Request.Context()
	if err := h.repo.EnsureUserExists(ctx, userID, ""); err != nil {
		h.log.Errorf("ensure user failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	item, err := h.repo.AddWatchlistItem(ctx, userID, req.Symbol, req.Name)
	if err != nil {
		h.log.Errorf("add watchlist item failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "insert failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h *Handler) RemoveWatchlistItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.repo.RemoveWatchlistItem(c.Request.Context(), c.Param("userId"), id); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		h.log.Errorf("remove watchlist item failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) GetPreferences(c *gin.Context) {
	prefs, err := h.repo.GetPreferences(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.log.Errorf("get preferences failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

type preferencesRequest struct {
	RiskTolerance     string   `json:"riskTolerance"`
	MonthlyInvestment string   `json:"monthlyInvestment"`
	InvestmentGoals   []string `json:"investmentGoals"`
	PreferredSectors  []string `json:"preferredSectors"`
}

func (h *Handler) SavePreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := c.Param("userId")
	ctx := c.Request.Context()
	if err := h.repo.EnsureUserExists(ctx, userID, ""); err != nil {
		h.log.Errorf("ensure user failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
		return
	}
	err := h.repo.SavePreferences(ctx, database.Preferences{
		UserID:            userID,
		RiskTolerance:     string(models.ParseRiskProfile(req.RiskTolerance)),
		MonthlyInvestment: req.MonthlyInvestment,
		InvestmentGoals:   pq.StringArray(req.InvestmentGoals),
		PreferredSectors:  pq.StringArray(req.PreferredSectors),
	})
	if err != nil {
		h.log.Errorf("save preferences failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type insightRequest struct {
	AssetType string `json:"assetType" binding:"required,oneof=stock fund"`
	Symbol    string `json:"symbol"`
	RiskLevel string `json:"riskLevel"`
}

// GenerateInsight recomputes the analysis server-side and feeds it to the
// LLM collaborator. The scoring core is cheap enough that nothing is
// cached.
func (h *Handler) GenerateInsight(c *gin.Context) {
	var req insightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	var text string
	switch req.AssetType {
	case "stock":
		snap, err := h.stocks.FetchStock(ctx, req.Symbol)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch stock data"})
			return
		}
		risk := models.ParseRiskProfile(req.RiskLevel)
		text, err = h.insights.StockInsight(ctx, snap.Name, risk, analysis.AnalyzeStock(*snap, risk))
		if err != nil {
			h.log.Errorf("stock insight failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate insight"})
			return
		}
	case "fund":
		snap, err := h.funds.FetchFund(ctx, req.Symbol)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch fund data"})
			return
		}
		text, err = h.insights.FundInsight(ctx, snap.SchemeName, analysis.AnalyzeFund(*snap))
		if err != nil {
			h.log.Errorf("fund insight failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate insight"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"insight": text})
}
