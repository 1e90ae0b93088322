// Package roulette is a single-zero wheel with colour, zero and straight-up
// number bets.
package roulette

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fastprodman/wagerhouse/internal/wager"
)

type BetType string

const (
	BetRed    BetType = "red"
	BetBlack  BetType = "black"
	BetGreen  BetType = "green"
	BetNumber BetType = "number"
)

// Bet is the player's choice made before the spin. Number is only read for
// BetNumber.
type Bet struct {
	Type   BetType
	Number int
}

func ParseBetType(s string) (BetType, error) {
	switch t := BetType(strings.ToLower(strings.TrimSpace(s))); t {
	case BetRed, BetBlack, BetGreen, BetNumber:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown bet type %q", wager.ErrInvalidBet, s)
	}
}

func (b Bet) Validate() error {
	switch b.Type {
	case BetRed, BetBlack, BetGreen:
		return nil
	case BetNumber:
		if b.Number < 0 || b.Number >= len(Wheel) {
			return fmt.Errorf("%w: number %d outside 0..36", wager.ErrInvalidBet, b.Number)
		}

		return nil
	default:
		return fmt.Errorf("%w: unknown bet type %q", wager.ErrInvalidBet, b.Type)
	}
}

// Wins reports whether the bet is paid for the pocket.
func (b Bet) Wins(p Pocket) bool {
	switch b.Type {
	case BetRed:
		return p.Color == Red
	case BetBlack:
		return p.Color == Black
	case BetGreen:
		return p.Number == 0
	case BetNumber:
		return p.Number == b.Number
	default:
		return false
	}
}

type Payouts struct {
	Color  decimal.Decimal
	Green  decimal.Decimal
	Number decimal.Decimal
}

func DefaultPayouts() Payouts {
	return Payouts{
		Color:  decimal.NewFromInt(2),
		Green:  decimal.NewFromInt(36),
		Number: decimal.NewFromInt(36),
	}
}

func (p Payouts) For(t BetType) decimal.Decimal {
	switch t {
	case BetRed, BetBlack:
		return p.Color
	case BetGreen:
		return p.Green
	case BetNumber:
		return p.Number
	default:
		return decimal.Zero
	}
}

type Game struct {
	src     wager.Source
	payouts Payouts
}

func New(src wager.Source, payouts Payouts) *Game {
	return &Game{src: src, payouts: payouts}
}

func (g *Game) Spin() (Pocket, error) {
	i, err := wager.Draw(g.src, len(Wheel))
	if err != nil {
		return Pocket{}, fmt.Errorf("spin wheel: %w", err)
	}

	p, _ := PocketOf(Wheel[i])

	return p, nil
}

func (g *Game) Play(ctx context.Context, s *wager.Session, pocket Pocket, bet Bet, stake int64) (wager.Result, error) {
	if s.Kind() != wager.KindRoulette {
		return wager.Result{}, fmt.Errorf("%w: %s session in roulette", wager.ErrInvalidTransition, s.Kind())
	}

	err := bet.Validate()
	if err != nil {
		return wager.Result{}, err
	}

	if p, ok := PocketOf(pocket.Number); !ok || p != pocket {
		return wager.Result{}, fmt.Errorf("%w: pocket %+v", wager.ErrRandomSource, pocket)
	}

	_, err = s.Commit(stake)
	if err != nil {
		return wager.Result{}, fmt.Errorf("commit: %w", err)
	}

	if bet.Wins(pocket) {
		return s.Resolve(ctx, wager.OutcomeWin, g.payouts.For(bet.Type))
	}

	return s.Resolve(ctx, wager.OutcomeLoss, decimal.Zero)
}
