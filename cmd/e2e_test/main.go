package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const baseURL = "http://localhost:8080"

// Smoke test for a locally running server. Exercises the SIP engine and the
// watchlist/preferences CRUD; stock and fund endpoints are skipped because
// they need the upstream market-data APIs.
func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	userID := fmt.Sprintf("e2e-user-%d", time.Now().UnixNano())

	// 1. Health check
	checkEndpoint("GET", "/health", nil, 200)

	// 2. SIP projection
	checkEndpoint("POST", "/sip/project", map[string]interface{}{
		"monthlyAmount": 10000,
		"expectedRate":  12,
		"years":         10,
		"stepUpPercent": 10,
		"inflationRate": 6,
		"includeTax":    true,
	}, 200)

	// 3. Goal solver
	checkEndpoint("POST", "/sip/goal", map[string]interface{}{
		"targetAmount": 10000000,
		"expectedRate": 12,
		"years":        10,
	}, 200)

	// 4. Save and read preferences
	checkEndpoint("POST", "/users/"+userID+"/preferences", map[string]interface{}{
		"riskTolerance":     "medium",
		"monthlyInvestment": "15000",
		"investmentGoals":   []string{"retirement"},
		"preferredSectors":  []string{"IT", "Banking"},
	}, 200)
	checkEndpoint("GET", "/users/"+userID+"/preferences", nil, 200)

	// 5. Watchlist add, list, remove
	itemID := addWatchlistItem(userID)
	fmt.Printf("Created watchlist item ID: %d\n", itemID)
	checkEndpoint("GET", "/users/"+userID+"/watchlist", nil, 200)
	checkEndpoint("DELETE", fmt.Sprintf("/users/%s/watchlist/%d", userID, itemID), nil, 200)
	checkEndpoint("DELETE", fmt.Sprintf("/users/%s/watchlist/%d", userID, itemID), nil, 404)

	fmt.Println("ALL TESTS PASSED")
}

func checkEndpoint(method, path string, body interface{}, expectedStatus int) {
	fmt.Printf("Testing %s %s...\n", method, path)
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, _ := http.NewRequest(method, baseURL+path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(respBody))
	}
	fmt.Printf("Response: %s\n", string(respBody))
}

func addWatchlistItem(userID string) int64 {
	fmt.Println("Adding watchlist item...")
	reqBody := map[string]interface{}{
		"symbol": "INFY.NS",
		"name":   "Infosys",
	}
	jsonBody, _ := json.Marshal(reqBody)
	resp, err := http.Post(baseURL+"/users/"+userID+"/watchlist", "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Fatalf("Add watchlist item failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 201 {
		body, _ := io.ReadAll(resp.Body)
		log.Fatalf("Add watchlist item failed with status %d: %s", resp.StatusCode, string(body))
	}

	var res struct {
		Item struct {
			ID int64 `json:"id"`
		} `json:"item"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		log.Fatalf("Decode add response failed: %v", err)
	}
	return res.Item.ID
}
