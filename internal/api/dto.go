package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/fastprodman/wagerhouse/internal/games/blackjack"
	"github.com/fastprodman/wagerhouse/internal/repos/rounds"
	"github.com/fastprodman/wagerhouse/internal/repos/transactions"
	"github.com/fastprodman/wagerhouse/internal/services/casino"
	"github.com/fastprodman/wagerhouse/internal/wager"
)

type txRequest struct {
	State         string `json:"state"`
	Amount        int64  `json:"amount"`
	TransactionID string `json:"transactionId"`
}

func parseTxState(s string) (transactions.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return transactions.KindDeposit, nil
	case "withdraw":
		return transactions.KindWithdraw, nil
	default:
		return "", fmt.Errorf("invalid state")
	}
}

type balanceResponse struct {
	UserID  uint64 `json:"userId"`
	Balance int64  `json:"balance"`
}

type statsResponse struct {
	UserID      uint64 `json:"userId"`
	GamesPlayed int64  `json:"gamesPlayed"`
	Wins        int64  `json:"wins"`
	Losses      int64  `json:"losses"`
}

type betRequest struct {
	Type   string `json:"type"`
	Number int    `json:"number"`
}

type playRequest struct {
	Stake int64       `json:"stake"`
	Bet   *betRequest `json:"bet,omitempty"`
}

type resultResponse struct {
	SessionID  string    `json:"sessionId"`
	Game       string    `json:"game"`
	Outcome    string    `json:"outcome"`
	Stake      int64     `json:"stake"`
	Multiplier string    `json:"multiplier"`
	Payout     int64     `json:"payout"`
	Delta      int64     `json:"delta"`
	NewBalance int64     `json:"newBalance"`
	SettledAt  time.Time `json:"settledAt"`
}

func newResultResponse(res wager.Result) resultResponse {
	return resultResponse{
		SessionID:  res.SessionID,
		Game:       string(res.Kind),
		Outcome:    string(res.Outcome),
		Stake:      res.Stake,
		Multiplier: res.Multiplier.String(),
		Payout:     res.Payout,
		Delta:      res.Delta,
		NewBalance: res.NewBalance,
		SettledAt:  res.SettledAt,
	}
}

type diceDraw struct {
	Player int `json:"player"`
	House  int `json:"house"`
}

type slotsDraw struct {
	Reels []string `json:"reels"`
	Line  string   `json:"line"`
}

type rouletteDraw struct {
	Number int    `json:"number"`
	Color  string `json:"color"`
}

type playResponse struct {
	resultResponse
	Dice     *diceDraw     `json:"dice,omitempty"`
	Slots    *slotsDraw    `json:"slots,omitempty"`
	Roulette *rouletteDraw `json:"roulette,omitempty"`
}

func newPlayResponse(p casino.Play) playResponse {
	out := playResponse{resultResponse: newResultResponse(p.Result)}

	if p.Dice != nil {
		out.Dice = &diceDraw{Player: p.Dice.Player, House: p.Dice.House}
	}
	if p.Slots != nil {
		out.Slots = &slotsDraw{Reels: p.Slots.Reels, Line: string(p.Slots.Line)}
	}
	if p.Roulette != nil {
		out.Roulette = &rouletteDraw{Number: p.Roulette.Number, Color: string(p.Roulette.Color)}
	}

	return out
}

type blackjackResponse struct {
	RoundID     string           `json:"roundId"`
	Phase       string           `json:"phase"`
	Stake       int64            `json:"stake"`
	Player      []blackjack.Card `json:"player"`
	Dealer      []blackjack.Card `json:"dealer"`
	PlayerScore int              `json:"playerScore"`
	DealerScore int              `json:"dealerScore"`
	Result      *resultResponse  `json:"result,omitempty"`
}

// newBlackjackResponse keeps the dealer's hole card face down until the
// player's turn is over.
func newBlackjackResponse(v blackjack.View) blackjackResponse {
	out := blackjackResponse{
		RoundID:     v.SessionID,
		Phase:       string(v.Phase),
		Stake:       v.Stake,
		Player:      v.Player,
		Dealer:      v.Dealer,
		PlayerScore: v.PlayerScore,
		DealerScore: v.DealerScore,
	}

	if v.Phase == blackjack.PhasePlayerTurn && len(v.Dealer) > 0 {
		out.Dealer = v.Dealer[:1]
		out.DealerScore = blackjack.Score(v.Dealer[:1])
	}

	if v.Result != nil {
		res := newResultResponse(*v.Result)
		out.Result = &res
	}

	return out
}

type roundResponse struct {
	RoundID    string     `json:"roundId"`
	Game       string     `json:"game"`
	Stake      int64      `json:"stake"`
	State      string     `json:"state"`
	Outcome    string     `json:"outcome,omitempty"`
	Multiplier string     `json:"multiplier,omitempty"`
	Payout     int64      `json:"payout"`
	Delta      int64      `json:"delta"`
	NewBalance int64      `json:"newBalance"`
	CreatedAt  time.Time  `json:"createdAt"`
	SettledAt  *time.Time `json:"settledAt,omitempty"`
}

func newRoundResponse(r rounds.Round) roundResponse {
	out := roundResponse{
		RoundID:    r.ID,
		Game:       string(r.Kind),
		Stake:      r.Stake,
		State:      string(r.State),
		Outcome:    string(r.Outcome),
		Payout:     r.Payout,
		Delta:      r.Delta,
		NewBalance: r.NewBalance,
		CreatedAt:  r.CreatedAt,
		SettledAt:  r.SettledAt,
	}

	if r.State == wager.StateSettled {
		out.Multiplier = r.Multiplier.String()
	}

	return out
}
