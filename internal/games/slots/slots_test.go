package slots

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastprodman/wagerhouse/internal/wager"
	"github.com/fastprodman/wagerhouse/internal/wager/wagertest"
)

var limits = wager.Limits{Min: 10, Max: 5000}

func TestReels_Line(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reels Reels
		want  Line
	}{
		{Reels{2, 2, 2}, LineJackpot},
		{Reels{2, 2, 5}, LinePair},
		{Reels{5, 2, 2}, LinePair},
		{Reels{2, 5, 2}, LineMiss},
		{Reels{0, 1, 2}, LineMiss},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.reels.Line(), "%v", tt.reels)
	}
}

func TestGame_Play(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		draws       []int
		wantOutcome wager.Outcome
		wantMult    int64
		wantBalance int64
	}{
		{name: "jackpot", draws: []int{6, 6, 6}, wantOutcome: wager.OutcomeWin, wantMult: 5, wantBalance: 1400},
		{name: "left_pair", draws: []int{1, 1, 3}, wantOutcome: wager.OutcomeWin, wantMult: 2, wantBalance: 1100},
		{name: "right_pair", draws: []int{3, 7, 7}, wantOutcome: wager.OutcomeWin, wantMult: 2, wantBalance: 1100},
		{name: "split_is_miss", draws: []int{4, 0, 4}, wantOutcome: wager.OutcomeLoss, wantMult: 0, wantBalance: 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := wagertest.NewScript(tt.draws...)
			g := New(src, DefaultPayouts())

			reels, err := g.Spin()
			require.NoError(t, err)
			assert.Equal(t, []int{len(Symbols), len(Symbols), len(Symbols)}, src.Spaces())

			s := wager.NewSession(wager.KindSlots, limits, wagertest.Account(1000))
			res, err := g.Play(context.Background(), s, reels, 100)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.True(t, res.Multiplier.Equal(decimal.NewFromInt(tt.wantMult)))
			assert.Equal(t, tt.wantBalance, res.NewBalance)
		})
	}
}

func TestGame_ConfiguredPayouts(t *testing.T) {
	t.Parallel()

	g := New(wagertest.NewScript(0, 0, 0), Payouts{
		Jackpot: decimal.NewFromInt(3),
		Pair:    decimal.RequireFromString("1.5"),
	})

	reels, err := g.Spin()
	require.NoError(t, err)

	s := wager.NewSession(wager.KindSlots, limits, wagertest.Account(100))
	res, err := g.Play(context.Background(), s, reels, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(30), res.Payout)
	assert.Equal(t, int64(120), res.NewBalance)
}

func TestGame_SpinFailure(t *testing.T) {
	t.Parallel()

	_, err := New(wagertest.NewScript(1, 1), DefaultPayouts()).Spin()
	require.ErrorIs(t, err, wager.ErrRandomSource)
}

func TestReels_Names(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"sparkles", "crown", "bolt"}, Reels{0, 2, 7}.Names())
	assert.False(t, Reels{0, 8, 1}.Valid())
}
