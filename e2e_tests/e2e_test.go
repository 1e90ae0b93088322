//go:build e2e

// The e2e suite runs against a live API started with APP_ENV=DEV seed data
// (users 1..3). Point E2E_BASE_URL at it when it is not on localhost:8080.
package e2etests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

const (
	timeout   = 5 * time.Second
	waitReady = 20 * time.Second
)

var httpClient = &http.Client{Timeout: timeout}

func baseURL() string {
	if u := os.Getenv("E2E_BASE_URL"); u != "" {
		return u
	}

	return "http://localhost:8080"
}

type balance struct {
	UserID  uint64 `json:"userId"`
	Balance int64  `json:"balance"`
}

type result struct {
	SessionID  string `json:"sessionId"`
	Game       string `json:"game"`
	Outcome    string `json:"outcome"`
	Stake      int64  `json:"stake"`
	Payout     int64  `json:"payout"`
	Delta      int64  `json:"delta"`
	NewBalance int64  `json:"newBalance"`
}

type round struct {
	RoundID string  `json:"roundId"`
	Phase   string  `json:"phase"`
	Result  *result `json:"result"`
}

func TestE2E_FundingFlow(t *testing.T) {
	waitUntilReady(t, 3)

	start := getBalance(t, 3)

	tid := uniqTxID("u3-dep")
	code, body := post(t, "/user/3/transaction", map[string]any{"state": "deposit", "amount": 250, "transactionId": tid}, nil)
	if code != http.StatusOK {
		t.Fatalf("deposit: want 200, got %d (%s)", code, body)
	}

	code, body = post(t, "/user/3/transaction", map[string]any{"state": "deposit", "amount": 250, "transactionId": tid}, nil)
	if code != http.StatusConflict {
		t.Fatalf("duplicate: want 409, got %d (%s)", code, body)
	}

	if got := getBalance(t, 3); got != start+250 {
		t.Fatalf("after duplicate: want %d, got %d", start+250, got)
	}

	code, body = post(t, "/user/3/transaction", map[string]any{
		"state": "withdraw", "amount": start + 251, "transactionId": uniqTxID("u3-wd"),
	}, nil)
	if code != http.StatusConflict {
		t.Fatalf("overdraw: want 409, got %d (%s)", code, body)
	}

	code, _ = post(t, "/user/3/transaction", map[string]any{"state": "win", "amount": 1, "transactionId": uniqTxID("u3-bad")}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("bad state: want 400, got %d", code)
	}
}

func TestE2E_InstantGamesKeepBalanceIdentity(t *testing.T) {
	waitUntilReady(t, 1)

	games := []struct {
		path string
		body map[string]any
	}{
		{path: "/user/1/games/dice", body: map[string]any{"stake": 50}},
		{path: "/user/1/games/slots", body: map[string]any{"stake": 10}},
		{path: "/user/1/games/roulette", body: map[string]any{"stake": 20, "bet": map[string]any{"type": "red"}}},
	}

	for _, g := range games {
		t.Run(g.path, func(t *testing.T) {
			before := getBalance(t, 1)
			if before < 50 {
				fund(t, 1, 1000)
				before = getBalance(t, 1)
			}

			var res result

			code, body := post(t, g.path, g.body, &res)
			if code != http.StatusOK {
				t.Fatalf("play: want 200, got %d (%s)", code, body)
			}

			if res.Delta != res.Payout-res.Stake {
				t.Fatalf("delta %d != payout %d - stake %d", res.Delta, res.Payout, res.Stake)
			}
			if res.NewBalance != before+res.Delta {
				t.Fatalf("new balance %d != %d%+d", res.NewBalance, before, res.Delta)
			}
			if got := getBalance(t, 1); got != res.NewBalance {
				t.Fatalf("stored balance %d != reported %d", got, res.NewBalance)
			}
		})
	}
}

func TestE2E_Validation(t *testing.T) {
	waitUntilReady(t, 2)

	before := getBalance(t, 2)

	code, _ := post(t, "/user/2/games/dice", map[string]any{"stake": 1}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("stake below minimum: want 400, got %d", code)
	}

	code, _ = post(t, "/user/2/games/roulette", map[string]any{"stake": 20, "bet": map[string]any{"type": "number", "number": 40}}, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("bad bet: want 400, got %d", code)
	}

	code, _ = post(t, "/user/2/games/poker", map[string]any{"stake": 20}, nil)
	if code != http.StatusNotFound {
		t.Fatalf("unknown game: want 404, got %d", code)
	}

	if got := getBalance(t, 2); got != before {
		t.Fatalf("rejections moved the balance: %d -> %d", before, got)
	}
}

func TestE2E_BlackjackStandSettles(t *testing.T) {
	waitUntilReady(t, 1)

	if getBalance(t, 1) < 100 {
		fund(t, 1, 1000)
	}

	var r round

	code, body := post(t, "/user/1/games/blackjack", map[string]any{"stake": 100}, &r)
	if code != http.StatusOK {
		t.Fatalf("start: want 200, got %d (%s)", code, body)
	}

	if r.Phase == "player_turn" {
		code, body = post(t, "/user/1/rounds/"+r.RoundID+"/stand", nil, &r)
		if code != http.StatusOK {
			t.Fatalf("stand: want 200, got %d (%s)", code, body)
		}
	}

	if r.Phase != "finished" || r.Result == nil {
		t.Fatalf("round not settled: %+v", r)
	}

	code, _ = post(t, "/user/1/rounds/"+r.RoundID+"/hit", nil, nil)
	if code != http.StatusConflict {
		t.Fatalf("hit after finish: want 409, got %d", code)
	}
}

/* -------------------- helpers -------------------- */

func getBalance(t *testing.T, userID uint64) int64 {
	t.Helper()

	u := fmt.Sprintf("%s/user/%d/balance", baseURL(), userID)

	resp, err := httpClient.Get(u)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s: want 200, got %d (%s)", u, resp.StatusCode, string(b))
	}

	var payload balance

	err = json.NewDecoder(resp.Body).Decode(&payload)
	if err != nil {
		t.Fatalf("decode json: %v", err)
	}

	if payload.UserID != userID {
		t.Fatalf("userId mismatch: want %d, got %d", userID, payload.UserID)
	}

	return payload.Balance
}

func fund(t *testing.T, userID uint64, amount int64) {
	t.Helper()

	code, body := post(t, fmt.Sprintf("/user/%d/transaction", userID), map[string]any{
		"state": "deposit", "amount": amount, "transactionId": uniqTxID("fund"),
	}, nil)
	if code != http.StatusOK {
		t.Fatalf("fund: want 200, got %d (%s)", code, body)
	}
}

// post sends body as JSON and decodes a 200 response into out when out is
// not nil.
func post(t *testing.T, path string, body any, out any) (int, string) {
	t.Helper()

	var rd io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL()+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)

	if out != nil && resp.StatusCode == http.StatusOK {
		err = json.Unmarshal(b, out)
		if err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}

	return resp.StatusCode, string(b)
}

// waitUntilReady waits until GET /user/{userID}/balance responds or times out.
func waitUntilReady(t *testing.T, userID uint64) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), waitReady)
	defer cancel()

	u := fmt.Sprintf("%s/user/%d/balance", baseURL(), userID)

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("service not ready at %s within %s", u, waitReady)
		case <-tick.C:
			resp, err := httpClient.Get(u)
			if err != nil {
				// not listening yet
				continue
			}
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound {
				return
			}
		}
	}
}

func uniqTxID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
