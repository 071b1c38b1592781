package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vishalsinghrathore00/NiveshAi/internal/database"
	"github.com/vishalsinghrathore00/NiveshAi/internal/models"
)

// StockFetcher is the slice of the market-data client the quote service
// needs.
type StockFetcher interface {
	FetchStock(ctx context.Context, symbol string) (*models.StockSnapshot, error)
}

// QuoteProvider serves last-traded prices with a DB-backed cache. The HTTP
// layer consumes it for the quote endpoint.
type QuoteProvider interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, time.Time, error)
	Start(ctx context.Context, interval time.Duration)
}

// quoteTTL is how long a cached quote stays fresh before a live fetch.
const quoteTTL = 15 * time.Minute

// QuoteService caches last-traded prices in postgres and refreshes them
// from the market-data fetcher, both on demand and periodically for every
// watched symbol.
type QuoteService struct {
	repo    *database.Repo
	fetcher StockFetcher
	log     *logrus.Logger
}

func NewQuoteService(r *database.Repo, f StockFetcher, log *logrus.Logger) *QuoteService {
	return &QuoteService{repo: r, fetcher: f, log: log}
}

// GetPrice returns a cached quote when fresh, otherwise fetches live and
// caches the result. A failed live fetch falls back to a stale cached
// quote when one exists.
func (q *QuoteService) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, time.Time, error) {
	price, ts, err := q.repo.GetLatestQuote(ctx, symbol)
	if err == nil && time.Since(ts) < quoteTTL {
		return price, ts, nil
	}
	cached := err == nil

	snap, fetchErr := q.fetcher.FetchStock(ctx, symbol)
	if fetchErr != nil {
		if cached {
			q.log.Warnf("live quote for %s failed, serving stale cache: %v", symbol, fetchErr)
			return price, ts, nil
		}
		return decimal.Zero, time.Time{}, fetchErr
	}

	live := decimal.NewFromFloat(snap.Price)
	now := time.Now().UTC()
	if err := q.repo.UpsertQuote(ctx, symbol, live, now); err != nil {
		q.log.Warnf("cache quote for %s failed: %v", symbol, err)
	}
	return live, now, nil
}

// Start launches the background refresher for all watched symbols. It
// stops when ctx is cancelled.
func (q *QuoteService) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				q.log.Info("quote refresher stopping")
				return
			case <-ticker.C:
				symbols, err := q.repo.WatchedSymbols(ctx)
				if err != nil {
					q.log.Warnf("failed to list watched symbols: %v", err)
					continue
				}
				for _, s := range symbols {
					snap, err := q.fetcher.FetchStock(ctx, s)
					if err != nil {
						q.log.Warnf("refresh quote for %s failed: %v", s, err)
						continue
					}
					_ = q.repo.UpsertQuote(ctx, s, decimal.NewFromFloat(snap.Price), time.Now().UTC())
				}
			}
		}
	}()
}
