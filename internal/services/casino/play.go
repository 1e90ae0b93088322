package casino

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastprodman/wagerhouse/internal/games/dice"
	"github.com/fastprodman/wagerhouse/internal/games/roulette"
	"github.com/fastprodman/wagerhouse/internal/games/slots"
	"github.com/fastprodman/wagerhouse/internal/infra/pgutils"
	"github.com/fastprodman/wagerhouse/internal/wager"
)

// PlayRequest is one instant round. Bet is only read for roulette.
type PlayRequest struct {
	UserID uint64
	Kind   wager.Kind
	Stake  int64
	Bet    roulette.Bet
}

// SlotsSpin is the visible reel line of a slots round.
type SlotsSpin struct {
	Reels []string
	Line  slots.Line
}

// Play is a settled instant round together with what was drawn for it.
type Play struct {
	Result   wager.Result
	Dice     *dice.Roll
	Slots    *SlotsSpin
	Roulette *roulette.Pocket
}

type resolveFunc func(ctx context.Context, s *wager.Session) (wager.Result, error)

// Play draws the outcome first and only then opens the transaction that
// commits the stake and settles, so a failing random source leaves no trace.
func (s *CasinoService) Play(ctx context.Context, req PlayRequest) (Play, error) {
	err := s.checkStake(req.Kind, req.Stake)
	if err != nil {
		s.fail(req.Kind, err)
		return Play{}, fmt.Errorf("play %s: %w", req.Kind, err)
	}

	play, resolve, err := s.draw(req)
	if err != nil {
		s.fail(req.Kind, err)
		return Play{}, fmt.Errorf("play %s: %w", req.Kind, err)
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		balance, err := s.users.LockAndGetBalance(ctx, tx, req.UserID)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		account, err := wager.NewAccount(balance)
		if err != nil {
			return fmt.Errorf("open account: %w", err)
		}

		sess, led, err := s.newSession(req.Kind, req.UserID, account)
		if err != nil {
			return err
		}

		led.tx = tx

		play.Result, err = resolve(ctx, sess)

		return err
	})
	if err != nil {
		s.fail(req.Kind, err)
		return Play{}, fmt.Errorf("play %s: %w", req.Kind, err)
	}

	s.observe(ctx, play.Result)

	return play, nil
}

// checkStake rejects out-of-range stakes before anything is drawn. The
// session checks again on commit.
func (s *CasinoService) checkStake(kind wager.Kind, stake int64) error {
	limits, err := s.games.Limits(kind)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownGame, err)
	}

	if !limits.Contains(stake) {
		return fmt.Errorf("stake %d outside [%d, %d]: %w", stake, limits.Min, limits.Max, wager.ErrInvalidStake)
	}

	return nil
}

func (s *CasinoService) draw(req PlayRequest) (Play, resolveFunc, error) {
	var play Play

	switch req.Kind {
	case wager.KindDice:
		roll, err := s.dice.Roll()
		if err != nil {
			return Play{}, nil, err
		}

		play.Dice = &roll

		return play, func(ctx context.Context, sess *wager.Session) (wager.Result, error) {
			return s.dice.Play(ctx, sess, roll, req.Stake)
		}, nil

	case wager.KindSlots:
		reels, err := s.slots.Spin()
		if err != nil {
			return Play{}, nil, err
		}

		play.Slots = &SlotsSpin{Reels: reels.Names(), Line: reels.Line()}

		return play, func(ctx context.Context, sess *wager.Session) (wager.Result, error) {
			return s.slots.Play(ctx, sess, reels, req.Stake)
		}, nil

	case wager.KindRoulette:
		// an invalid bet must not consume a spin
		err := req.Bet.Validate()
		if err != nil {
			return Play{}, nil, err
		}

		pocket, err := s.roulette.Spin()
		if err != nil {
			return Play{}, nil, err
		}

		play.Roulette = &pocket

		return play, func(ctx context.Context, sess *wager.Session) (wager.Result, error) {
			return s.roulette.Play(ctx, sess, pocket, req.Bet, req.Stake)
		}, nil

	case wager.KindBlackjack:
		return Play{}, nil, fmt.Errorf("%w: blackjack is played through StartBlackjack", ErrUnknownGame)

	default:
		return Play{}, nil, fmt.Errorf("%w: %q", ErrUnknownGame, req.Kind)
	}
}
