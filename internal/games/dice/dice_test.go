package dice

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastprodman/wagerhouse/internal/wager"
	"github.com/fastprodman/wagerhouse/internal/wager/wagertest"
)

var limits = wager.Limits{Min: 50, Max: 5000}

func TestGame_Play(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		draws       []int // zero-based faces: player, house
		balance     int64
		stake       int64
		wantOutcome wager.Outcome
		wantDelta   int64
		wantBalance int64
	}{
		{
			name:        "player_5_house_3_wins",
			draws:       []int{4, 2},
			balance:     1000,
			stake:       100,
			wantOutcome: wager.OutcomeWin,
			wantDelta:   100,
			wantBalance: 1100,
		},
		{
			name:        "player_2_house_6_loses",
			draws:       []int{1, 5},
			balance:     1000,
			stake:       100,
			wantOutcome: wager.OutcomeLoss,
			wantDelta:   -100,
			wantBalance: 900,
		},
		{
			name:        "equal_faces_push",
			draws:       []int{3, 3},
			balance:     1000,
			stake:       100,
			wantOutcome: wager.OutcomePush,
			wantDelta:   0,
			wantBalance: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := wagertest.NewScript(tt.draws...)
			g := New(src, DefaultPayouts())

			roll, err := g.Roll()
			require.NoError(t, err)
			assert.Equal(t, []int{Faces, Faces}, src.Spaces())

			s := wager.NewSession(wager.KindDice, limits, wagertest.Account(tt.balance))
			res, err := g.Play(context.Background(), s, roll, tt.stake)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.Equal(t, tt.wantDelta, res.Delta)
			assert.Equal(t, tt.wantBalance, res.NewBalance)
			assert.Equal(t, wager.KindDice, res.Kind)
		})
	}
}

func TestGame_BalanceIdentity(t *testing.T) {
	t.Parallel()

	g := New(wager.NewSeededSource(7), DefaultPayouts())
	acc := wagertest.Account(10_000)

	for range 500 {
		before := acc.Balance()
		if before < limits.Min {
			break
		}

		roll, err := g.Roll()
		require.NoError(t, err)

		s := wager.NewSession(wager.KindDice, limits, acc)
		res, err := g.Play(context.Background(), s, roll, limits.Min)
		require.NoError(t, err)

		want := before - limits.Min + wager.Payout(limits.Min, res.Multiplier)
		require.Equal(t, want, res.NewBalance)
		require.GreaterOrEqual(t, res.NewBalance, int64(0))

		switch res.Outcome {
		case wager.OutcomeWin:
			require.True(t, res.Multiplier.Equal(decimal.NewFromInt(2)))
		case wager.OutcomePush:
			require.True(t, res.Multiplier.Equal(decimal.NewFromInt(1)))
		default:
			require.True(t, res.Multiplier.IsZero())
		}
	}
}

func TestGame_RollFailureLeavesBalance(t *testing.T) {
	t.Parallel()

	g := New(wagertest.NewScript(3), DefaultPayouts())

	_, err := g.Roll()
	require.ErrorIs(t, err, wager.ErrRandomSource)
}

func TestGame_InvalidStakeNoChange(t *testing.T) {
	t.Parallel()

	acc := wagertest.Account(1000)
	s := wager.NewSession(wager.KindDice, limits, acc)

	_, err := New(wagertest.NewScript(), DefaultPayouts()).Play(context.Background(), s, Roll{Player: 6, House: 1}, 10)
	require.ErrorIs(t, err, wager.ErrInvalidStake)
	assert.Equal(t, int64(1000), acc.Balance())
	assert.Equal(t, wager.StateIdle, s.State())
}

func TestGame_RejectsForeignSession(t *testing.T) {
	t.Parallel()

	s := wager.NewSession(wager.KindSlots, limits, wagertest.Account(1000))

	_, err := New(wagertest.NewScript(), DefaultPayouts()).Play(context.Background(), s, Roll{Player: 6, House: 1}, 100)
	require.ErrorIs(t, err, wager.ErrInvalidTransition)
}
