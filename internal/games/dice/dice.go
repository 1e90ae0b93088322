// Package dice is a two-dice duel against the house: the higher face wins,
// equal faces push.
package dice

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fastprodman/wagerhouse/internal/wager"
)

const Faces = 6

type Payouts struct {
	Win  decimal.Decimal
	Push decimal.Decimal
}

func DefaultPayouts() Payouts {
	return Payouts{
		Win:  decimal.NewFromInt(2),
		Push: decimal.NewFromInt(1),
	}
}

// Roll holds both faces, each in 1..6.
type Roll struct {
	Player int
	House  int
}

func (r Roll) Valid() bool {
	return r.Player >= 1 && r.Player <= Faces && r.House >= 1 && r.House <= Faces
}

func (r Roll) Outcome() wager.Outcome {
	switch {
	case r.Player > r.House:
		return wager.OutcomeWin
	case r.Player < r.House:
		return wager.OutcomeLoss
	default:
		return wager.OutcomePush
	}
}

type Game struct {
	src     wager.Source
	payouts Payouts
}

func New(src wager.Source, payouts Payouts) *Game {
	return &Game{src: src, payouts: payouts}
}

// Roll throws both dice. It has no effect on any balance.
func (g *Game) Roll() (Roll, error) {
	faces, err := wager.DrawN(g.src, Faces, 2)
	if err != nil {
		return Roll{}, fmt.Errorf("roll dice: %w", err)
	}

	return Roll{Player: faces[0] + 1, House: faces[1] + 1}, nil
}

// Play commits stake on s and settles it against a roll made beforehand.
func (g *Game) Play(ctx context.Context, s *wager.Session, roll Roll, stake int64) (wager.Result, error) {
	if s.Kind() != wager.KindDice {
		return wager.Result{}, fmt.Errorf("%w: %s session in dice", wager.ErrInvalidTransition, s.Kind())
	}

	if !roll.Valid() {
		return wager.Result{}, fmt.Errorf("%w: faces %d/%d", wager.ErrRandomSource, roll.Player, roll.House)
	}

	_, err := s.Commit(stake)
	if err != nil {
		return wager.Result{}, fmt.Errorf("commit: %w", err)
	}

	outcome := roll.Outcome()

	return s.Resolve(ctx, outcome, g.multiplier(outcome))
}

func (g *Game) multiplier(o wager.Outcome) decimal.Decimal {
	switch o {
	case wager.OutcomeWin:
		return g.payouts.Win
	case wager.OutcomePush:
		return g.payouts.Push
	default:
		return decimal.Zero
	}
}
