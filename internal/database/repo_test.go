package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		t.Skip("POSTGRES_URL not set, skipping integration test")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../migrations/0001_init.up.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(db, log)
}

func newTestUserID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestPreferencesRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	userID := newTestUserID("prefs")

	require.NoError(t, repo.EnsureUserExists(ctx, userID, "prefs@example.com"))

	// Never saved: nil, not an error.
	got, err := repo.GetPreferences(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = repo.SavePreferences(ctx, Preferences{
		UserID:            userID,
		RiskTolerance:     "high",
		MonthlyInvestment: "25000",
		InvestmentGoals:   pq.StringArray{"retirement", "house"},
		PreferredSectors:  pq.StringArray{"IT"},
	})
	require.NoError(t, err)

	got, err = repo.GetPreferences(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "high", got.RiskTolerance)
	assert.Equal(t, "25000", got.MonthlyInvestment)
	assert.Equal(t, pq.StringArray{"retirement", "house"}, got.InvestmentGoals)

	// Saving again replaces the whole row.
	err = repo.SavePreferences(ctx, Preferences{
		UserID:            userID,
		RiskTolerance:     "low",
		MonthlyInvestment: "5000",
		InvestmentGoals:   pq.StringArray{},
		PreferredSectors:  pq.StringArray{"Banking", "FMCG"},
	})
	require.NoError(t, err)

	got, err = repo.GetPreferences(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "low", got.RiskTolerance)
	assert.Equal(t, pq.StringArray{"Banking", "FMCG"}, got.PreferredSectors)
	assert.Empty(t, got.InvestmentGoals)
}

func TestWatchlistLifecycle(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	userID := newTestUserID("watch")

	require.NoError(t, repo.EnsureUserExists(ctx, userID, ""))

	items, err := repo.GetWatchlist(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)

	first, err := repo.AddWatchlistItem(ctx, userID, "RELIANCE.NS", "Reliance Industries")
	require.NoError(t, err)
	assert.Equal(t, "RELIANCE.NS", first.Symbol)
	assert.NotZero(t, first.ID)

	// Re-adding the same symbol returns the existing row.
	again, err := repo.AddWatchlistItem(ctx, userID, "RELIANCE.NS", "Reliance Industries")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = repo.AddWatchlistItem(ctx, userID, "TCS.NS", "Tata Consultancy Services")
	require.NoError(t, err)

	items, err = repo.GetWatchlist(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	symbols, err := repo.WatchedSymbols(ctx)
	require.NoError(t, err)
	assert.Contains(t, symbols, "RELIANCE.NS")
	assert.Contains(t, symbols, "TCS.NS")

	require.NoError(t, repo.RemoveWatchlistItem(ctx, userID, first.ID))
	items, err = repo.GetWatchlist(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "TCS.NS", items[0].Symbol)

	// Deleting an absent row reports ErrNoRows.
	assert.Equal(t, sql.ErrNoRows, repo.RemoveWatchlistItem(ctx, userID, first.ID))
}

func TestRemoveWatchlistItem_OtherUsersRowUntouched(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	owner := newTestUserID("owner")
	intruder := newTestUserID("intruder")

	require.NoError(t, repo.EnsureUserExists(ctx, owner, ""))
	require.NoError(t, repo.EnsureUserExists(ctx, intruder, ""))

	item, err := repo.AddWatchlistItem(ctx, owner, "INFY.NS", "Infosys")
	require.NoError(t, err)

	assert.Equal(t, sql.ErrNoRows, repo.RemoveWatchlistItem(ctx, intruder, item.ID))

	items, err := repo.GetWatchlist(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestQuoteCache(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	symbol := fmt.Sprintf("TEST-%d.NS", time.Now().UnixNano())

	_, _, err := repo.GetLatestQuote(ctx, symbol)
	assert.Equal(t, sql.ErrNoRows, err)

	older := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	newer := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.UpsertQuote(ctx, symbol, decimal.RequireFromString("2450.75"), older))
	require.NoError(t, repo.UpsertQuote(ctx, symbol, decimal.RequireFromString("2460.10"), newer))

	price, ts, err := repo.GetLatestQuote(ctx, symbol)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("2460.10")), "got %s", price)
	assert.WithinDuration(t, newer, ts, time.Second)
}
