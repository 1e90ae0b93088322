// Package slots is a three-reel machine: three matching symbols hit the
// jackpot, an adjacent matching pair is a small win.
package slots

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fastprodman/wagerhouse/internal/wager"
)

// Symbols is the reel alphabet; a reel value is an index into it.
var Symbols = []string{"sparkles", "fire", "crown", "dizzy", "star", "gem", "clover", "bolt"}

const ReelCount = 3

type Line string

const (
	LineJackpot Line = "jackpot"
	LinePair    Line = "pair"
	LineMiss    Line = "miss"
)

type Payouts struct {
	Jackpot decimal.Decimal
	Pair    decimal.Decimal
}

func DefaultPayouts() Payouts {
	return Payouts{
		Jackpot: decimal.NewFromInt(5),
		Pair:    decimal.NewFromInt(2),
	}
}

type Reels [ReelCount]int

func (r Reels) Valid() bool {
	for _, v := range r {
		if v < 0 || v >= len(Symbols) {
			return false
		}
	}

	return true
}

// Line classifies the reels; the jackpot takes precedence over a pair.
func (r Reels) Line() Line {
	switch {
	case r[0] == r[1] && r[1] == r[2]:
		return LineJackpot
	case r[0] == r[1] || r[1] == r[2]:
		return LinePair
	default:
		return LineMiss
	}
}

func (r Reels) Names() []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = Symbols[v]
	}

	return out
}

type Game struct {
	src     wager.Source
	payouts Payouts
}

func New(src wager.Source, payouts Payouts) *Game {
	return &Game{src: src, payouts: payouts}
}

func (g *Game) Spin() (Reels, error) {
	vals, err := wager.DrawN(g.src, len(Symbols), ReelCount)
	if err != nil {
		return Reels{}, fmt.Errorf("spin reels: %w", err)
	}

	var r Reels
	copy(r[:], vals)

	return r, nil
}

func (g *Game) Play(ctx context.Context, s *wager.Session, reels Reels, stake int64) (wager.Result, error) {
	if s.Kind() != wager.KindSlots {
		return wager.Result{}, fmt.Errorf("%w: %s session in slots", wager.ErrInvalidTransition, s.Kind())
	}

	if !reels.Valid() {
		return wager.Result{}, fmt.Errorf("%w: reels %v", wager.ErrRandomSource, reels)
	}

	_, err := s.Commit(stake)
	if err != nil {
		return wager.Result{}, fmt.Errorf("commit: %w", err)
	}

	switch reels.Line() {
	case LineJackpot:
		return s.Resolve(ctx, wager.OutcomeWin, g.payouts.Jackpot)
	case LinePair:
		return s.Resolve(ctx, wager.OutcomeWin, g.payouts.Pair)
	default:
		return s.Resolve(ctx, wager.OutcomeLoss, decimal.Zero)
	}
}
