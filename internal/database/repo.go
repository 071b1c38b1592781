package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Repo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func New(db *sqlx.DB, log *logrus.Logger) *Repo {
	return &Repo{db: db, log: log}
}

func (r *Repo) EnsureUserExists(ctx context.Context, userID, email string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (id, email) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, userID, email)
	return err
}

// GetPreferences returns the stored preferences for a user, or nil when the
// user has never saved any.
func (r *Repo) GetPreferences(ctx context.Context, userID string) (*Preferences, error) {
	var p Preferences
	err := r.db.GetContext(ctx, &p, `SELECT user_id, risk_tolerance, monthly_investment, investment_goals, preferred_sectors, updated_at FROM user_preferences WHERE user_id = $1`, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePreferences upserts the full preferences row for a user.
func (r *Repo) SavePreferences(ctx context.Context, p Preferences) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, risk_tolerance, monthly_investment, investment_goals, preferred_sectors, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (user_id) DO UPDATE SET
			risk_tolerance = $2,
			monthly_investment = $3,
			investment_goals = $4,
			preferred_sectors = $5,
			updated_at = now()`,
		p.UserID, p.RiskTolerance, p.MonthlyInvestment, p.InvestmentGoals, p.PreferredSectors)
	return err
}

func (r *Repo) GetWatchlist(ctx context.Context, userID string) ([]WatchlistItem, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT id, user_id, symbol, name, added_at FROM watchlist WHERE user_id = $1 ORDER BY added_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []WatchlistItem{}
	for rows.Next() {
		var w WatchlistItem
		if err := rows.StructScan(&w); err != nil {
			r.log.Warnf("scan watchlist row failed: %v", err)
			continue
		}
		res = append(res, w)
	}
	return res, nil
}

// AddWatchlistItem inserts one symbol for a user. Re-adding an existing
// symbol returns the existing row unchanged.
func (r *Repo) AddWatchlistItem(ctx context.Context, userID, symbol, name string) (WatchlistItem, error) {
	var w WatchlistItem
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO watchlist (user_id, symbol, name, added_at) VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, symbol) DO UPDATE SET symbol = EXCLUDED.symbol
		RETURNING id, user_id, symbol, name, added_at`,
		userID, symbol, name).StructScan(&w)
	return w, err
}

func (r *Repo) RemoveWatchlistItem(ctx context.Context, userID string, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM watchlist WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// WatchedSymbols lists the distinct symbols across all watchlists, used by
// the background quote refresher.
func (r *Repo) WatchedSymbols(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT DISTINCT symbol FROM watchlist`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			r.log.Warnf("scan symbol failed: %v", err)
			continue
		}
		res = append(res, s)
	}
	return res, nil
}

func (r *Repo) GetLatestQuote(ctx context.Context, symbol string) (decimal.Decimal, time.Time, error) {
	var priceStr string
	var ts time.Time
	if err := r.db.QueryRowContext(ctx, `SELECT price_inr, fetched_at FROM quote_cache WHERE symbol = $1 ORDER BY fetched_at DESC LIMIT 1`, symbol).Scan(&priceStr, &ts); err != nil {
		return decimal.Zero, time.Time{}, err
	}
	p, err := decimal.NewFromString(priceStr)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	return p, ts, nil
}

func (r *Repo) UpsertQuote(ctx context.Context, symbol string, price decimal.Decimal, ts time.Time) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO quote_cache (symbol, price_inr, fetched_at) VALUES ($1, $2::numeric, $3)`, symbol, price.StringFixed(4), ts)
	return err
}
