package database

import (
	"time"

	"github.com/lib/pq"
)

type Preferences struct {
	UserID            string         `db:"user_id" json:"userId"`
	RiskTolerance     string         `db:"risk_tolerance" json:"riskTolerance"`
	MonthlyInvestment string         `db:"monthly_investment" json:"monthlyInvestment"`
	InvestmentGoals   pq.StringArray `db:"investment_goals" json:"investmentGoals"`
	PreferredSectors  pq.StringArray `db:"preferred_sectors" json:"preferredSectors"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updatedAt"`
}

type WatchlistItem struct {
	ID      int64     `db:"id" json:"id"`
	UserID  string    `db:"user_id" json:"userId"`
	Symbol  string    `db:"symbol" json:"symbol"`
	Name    string    `db:"name" json:"name"`
	AddedAt time.Time `db:"added_at" json:"addedAt"`
}
