package roulette

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastprodman/wagerhouse/internal/wager"
	"github.com/fastprodman/wagerhouse/internal/wager/wagertest"
)

var limits = wager.Limits{Min: 20, Max: 5000}

func wheelIndex(t *testing.T, n int) int {
	t.Helper()

	for i, v := range Wheel {
		if v == n {
			return i
		}
	}

	t.Fatalf("number %d not on wheel", n)

	return -1
}

func TestWheel_Colors(t *testing.T) {
	t.Parallel()

	seen := make(map[int]bool)
	reds, blacks := 0, 0

	for i, n := range Wheel {
		require.False(t, seen[n], "duplicate pocket %d", n)
		seen[n] = true

		p, ok := PocketOf(n)
		require.True(t, ok)

		if i == 0 {
			assert.Equal(t, Pocket{Number: 0, Color: Green}, p)
			continue
		}

		prev, _ := PocketOf(Wheel[i-1])
		if i > 1 {
			assert.NotEqual(t, prev.Color, p.Color, "pockets %d and %d", prev.Number, n)
		}

		switch p.Color {
		case Red:
			reds++
		case Black:
			blacks++
		default:
			t.Fatalf("pocket %d is %s", n, p.Color)
		}
	}

	assert.Len(t, seen, 37)
	assert.Equal(t, 18, reds)
	assert.Equal(t, 18, blacks)

	for _, n := range []int{1, 3, 5, 7, 9, 12, 14, 16, 18, 19, 21, 23, 25, 27, 30, 32, 34, 36} {
		p, _ := PocketOf(n)
		assert.Equal(t, Red, p.Color, "pocket %d", n)
	}

	p, _ := PocketOf(17)
	assert.Equal(t, Black, p.Color)

	_, ok := PocketOf(37)
	assert.False(t, ok)
}

func TestBet_Wins(t *testing.T) {
	t.Parallel()

	zero, _ := PocketOf(0)
	seventeen, _ := PocketOf(17)
	thirtyTwo, _ := PocketOf(32)

	tests := []struct {
		bet    Bet
		pocket Pocket
		want   bool
	}{
		{Bet{Type: BetGreen}, zero, true},
		{Bet{Type: BetNumber, Number: 0}, zero, true},
		{Bet{Type: BetRed}, zero, false},
		{Bet{Type: BetBlack}, zero, false},
		{Bet{Type: BetNumber, Number: 17}, zero, false},
		{Bet{Type: BetBlack}, seventeen, true},
		{Bet{Type: BetRed}, seventeen, false},
		{Bet{Type: BetGreen}, seventeen, false},
		{Bet{Type: BetNumber, Number: 17}, seventeen, true},
		{Bet{Type: BetRed}, thirtyTwo, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.bet.Wins(tt.pocket), "%+v on %+v", tt.bet, tt.pocket)
	}
}

func TestGame_Play(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		number      int
		bet         Bet
		balance     int64
		stake       int64
		wantOutcome wager.Outcome
		wantDelta   int64
		wantBalance int64
	}{
		{
			name:        "black_on_17",
			number:      17,
			bet:         Bet{Type: BetBlack},
			balance:     500,
			stake:       50,
			wantOutcome: wager.OutcomeWin,
			wantDelta:   50,
			wantBalance: 550,
		},
		{
			name:        "red_on_17",
			number:      17,
			bet:         Bet{Type: BetRed},
			balance:     500,
			stake:       50,
			wantOutcome: wager.OutcomeLoss,
			wantDelta:   -50,
			wantBalance: 450,
		},
		{
			name:        "green_on_zero",
			number:      0,
			bet:         Bet{Type: BetGreen},
			balance:     500,
			stake:       20,
			wantOutcome: wager.OutcomeWin,
			wantDelta:   700,
			wantBalance: 1200,
		},
		{
			name:        "straight_up_hit",
			number:      26,
			bet:         Bet{Type: BetNumber, Number: 26},
			balance:     100,
			stake:       100,
			wantOutcome: wager.OutcomeWin,
			wantDelta:   3500,
			wantBalance: 3600,
		},
		{
			name:        "straight_up_miss",
			number:      3,
			bet:         Bet{Type: BetNumber, Number: 26},
			balance:     100,
			stake:       100,
			wantOutcome: wager.OutcomeLoss,
			wantDelta:   -100,
			wantBalance: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := wagertest.NewScript(wheelIndex(t, tt.number))
			g := New(src, DefaultPayouts())

			pocket, err := g.Spin()
			require.NoError(t, err)
			require.Equal(t, tt.number, pocket.Number)
			assert.Equal(t, []int{37}, src.Spaces())

			s := wager.NewSession(wager.KindRoulette, limits, wagertest.Account(tt.balance))
			res, err := g.Play(context.Background(), s, pocket, tt.bet, tt.stake)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.Equal(t, tt.wantDelta, res.Delta)
			assert.Equal(t, tt.wantBalance, res.NewBalance)
		})
	}
}

func TestGame_InvalidBetNoChange(t *testing.T) {
	t.Parallel()

	acc := wagertest.Account(500)
	s := wager.NewSession(wager.KindRoulette, limits, acc)
	pocket, _ := PocketOf(5)

	_, err := New(wagertest.NewScript(), DefaultPayouts()).Play(
		context.Background(), s, pocket, Bet{Type: BetNumber, Number: 37}, 50,
	)
	require.ErrorIs(t, err, wager.ErrInvalidBet)
	assert.Equal(t, int64(500), acc.Balance())
	assert.Equal(t, wager.StateIdle, s.State())

	_, err = ParseBetType("odd")
	assert.ErrorIs(t, err, wager.ErrInvalidBet)
}

func TestPayouts_For(t *testing.T) {
	t.Parallel()

	p := DefaultPayouts()
	assert.True(t, p.For(BetRed).Equal(decimal.NewFromInt(2)))
	assert.True(t, p.For(BetBlack).Equal(decimal.NewFromInt(2)))
	assert.True(t, p.For(BetGreen).Equal(decimal.NewFromInt(36)))
	assert.True(t, p.For(BetNumber).Equal(decimal.NewFromInt(36)))
}
