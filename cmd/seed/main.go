package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

// Seeds a demo user with preferences and a starter watchlist of popular
// NSE symbols so a fresh deployment has something to show.
func main() {
	godotenv.Load()
	dbURL := os.Getenv("POSTGRES_URL")
	if dbURL == "" {
		log.Fatal("POSTGRES_URL is required")
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	userID := "demo-user"

	if _, err := db.ExecContext(ctx, `INSERT INTO users (id, email) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, userID, "demo@example.com"); err != nil {
		log.Fatalf("insert user: %v", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, risk_tolerance, monthly_investment, investment_goals, preferred_sectors, updated_at)
		VALUES ($1, 'medium', '10000', $2, $3, now())
		ON CONFLICT (user_id) DO NOTHING`,
		userID, pq.Array([]string{"retirement", "wealth-creation"}), pq.Array([]string{"IT", "Banking"}))
	if err != nil {
		fmt.Printf("Warning: could not insert preferences: %v\n", err)
	}

	watchlist := map[string]string{
		"RELIANCE.NS": "Reliance Industries",
		"TCS.NS":      "Tata Consultancy Services",
		"HDFCBANK.NS": "HDFC Bank",
		"INFY.NS":     "Infosys",
		"SBIN.NS":     "State Bank of India",
	}
	for sym, name := range watchlist {
		_, err := db.ExecContext(ctx, `
			INSERT INTO watchlist (user_id, symbol, name, added_at) VALUES ($1, $2, $3, now())
			ON CONFLICT (user_id, symbol) DO NOTHING`, userID, sym, name)
		if err != nil {
			fmt.Printf("Warning: could not insert watchlist item %s: %v\n", sym, err)
		}
	}

	fmt.Println("Seeded demo user, preferences and watchlist.")
}
