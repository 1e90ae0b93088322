package casino

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fastprodman/wagerhouse/internal/games/blackjack"
	"github.com/fastprodman/wagerhouse/internal/infra/pgutils"
	"github.com/fastprodman/wagerhouse/internal/repos/rounds"
	"github.com/fastprodman/wagerhouse/internal/wager"
)

// seat is a blackjack round waiting for the player's next move.
type seat struct {
	mu      sync.Mutex
	userID  uint64
	round   *blackjack.Round
	account *wager.Account
	ledger  *ledger

	// unix nanos of the deal or the last move; read without mu
	lastMove atomic.Int64
}

func (st *seat) touch(at time.Time) { st.lastMove.Store(at.UnixNano()) }

// table keeps open blackjack rounds in memory. Rounds left open when the
// process stops stay in the resolving state in storage; idle ones are stood
// by StandIdle.
type table struct {
	mu    sync.Mutex
	seats map[string]*seat
}

func newTable() *table {
	return &table{seats: make(map[string]*seat)}
}

func (t *table) put(id string, st *seat) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seats[id] = st
}

func (t *table) get(userID uint64, id string) (*seat, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.seats[id]
	if !ok || st.userID != userID {
		return nil, rounds.ErrRoundNotFound
	}

	return st, nil
}

func (t *table) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.seats, id)
}

// idle returns the ids and owners of seats untouched since cutoff.
func (t *table) idle(cutoff time.Time) map[string]uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]uint64)
	for id, st := range t.seats {
		if st.lastMove.Load() < cutoff.UnixNano() {
			out[id] = st.userID
		}
	}

	return out
}

func (t *table) open() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.seats)
}

// StartBlackjack deals, commits the stake and either returns the open round
// or, on a natural 21, the settled one.
func (s *CasinoService) StartBlackjack(ctx context.Context, userID uint64, stake int64) (blackjack.View, error) {
	err := s.checkStake(wager.KindBlackjack, stake)
	if err != nil {
		s.fail(wager.KindBlackjack, err)
		return blackjack.View{}, fmt.Errorf("start blackjack: %w", err)
	}

	deal, err := s.blackjack.Deal()
	if err != nil {
		s.fail(wager.KindBlackjack, err)
		return blackjack.View{}, fmt.Errorf("start blackjack: %w", err)
	}

	st := &seat{userID: userID}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		balance, err := s.users.LockAndGetBalance(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		st.account, err = wager.NewAccount(balance)
		if err != nil {
			return fmt.Errorf("open account: %w", err)
		}

		sess, led, err := s.newSession(wager.KindBlackjack, userID, st.account)
		if err != nil {
			return err
		}

		st.ledger = led
		led.tx = tx
		defer func() { led.tx = nil }()

		st.round, err = s.blackjack.Start(ctx, sess, deal, stake)
		if err != nil {
			return err
		}

		return led.reserve(ctx)
	})
	if err != nil {
		s.fail(wager.KindBlackjack, err)
		return blackjack.View{}, fmt.Errorf("start blackjack: %w", err)
	}

	view := st.round.View()
	if view.Result != nil {
		s.observe(ctx, *view.Result)
		return view, nil
	}

	st.touch(s.now())
	s.table.put(view.SessionID, st)

	return view, nil
}

func (s *CasinoService) Hit(ctx context.Context, userID uint64, roundID string) (blackjack.View, error) {
	return s.move(ctx, userID, roundID, "hit", func(ctx context.Context, r *blackjack.Round) error {
		_, err := r.Hit(ctx)
		return err
	})
}

func (s *CasinoService) Stand(ctx context.Context, userID uint64, roundID string) (blackjack.View, error) {
	return s.move(ctx, userID, roundID, "stand", func(ctx context.Context, r *blackjack.Round) error {
		return r.Stand(ctx)
	})
}

// move applies one player action under the user's row lock. The seat's
// account is resynced to the stored balance first, since other plays may
// have moved it since the deal.
func (s *CasinoService) move(
	ctx context.Context, userID uint64, roundID, name string,
	fn func(ctx context.Context, r *blackjack.Round) error,
) (blackjack.View, error) {
	st, err := s.table.get(userID, roundID)
	if err != nil {
		return blackjack.View{}, fmt.Errorf("%s: %w", name, s.closedRound(ctx, userID, roundID))
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.touch(s.now())
	wasFinished := st.round.Phase() == blackjack.PhaseFinished

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		balance, err := s.users.LockAndGetBalance(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		_, err = st.account.Apply(balance - st.account.Balance())
		if err != nil {
			return fmt.Errorf("sync account: %w", err)
		}

		st.ledger.tx = tx
		defer func() { st.ledger.tx = nil }()

		return fn(ctx, st.round)
	})

	view := st.round.View()

	if view.Phase == blackjack.PhaseFinished {
		s.table.remove(roundID)
	}

	if err != nil {
		s.fail(wager.KindBlackjack, err)

		if !wasFinished && view.Phase == blackjack.PhaseFinished {
			slog.ErrorContext(ctx, "blackjack round finished but not stored",
				"round_id", roundID, "user_id", userID, "error", err)
		}

		return view, fmt.Errorf("%s: %w", name, err)
	}

	if view.Result != nil {
		s.observe(ctx, *view.Result)
	}

	return view, nil
}

// closedRound explains a move on a round that is not open. A stored round
// of the player can no longer be played; anything else is unknown.
func (s *CasinoService) closedRound(ctx context.Context, userID uint64, roundID string) error {
	rnd, err := s.rounds.Get(ctx, userID, roundID)
	if err != nil {
		return err
	}

	return fmt.Errorf("%w: round %s is %s", wager.ErrInvalidTransition, rnd.ID, rnd.State)
}

// StandIdle stands every open round whose last move is older than maxIdle
// and reports how many it settled. Rounds whose dealer draw fails stay open
// for the next pass.
func (s *CasinoService) StandIdle(ctx context.Context, maxIdle time.Duration) int {
	settled := 0

	for id, userID := range s.table.idle(s.now().Add(-maxIdle)) {
		_, err := s.Stand(ctx, userID, id)
		if err != nil {
			slog.WarnContext(ctx, "stand idle blackjack round", "round_id", id, "user_id", userID, "error", err)
			continue
		}

		settled++
	}

	return settled
}

// SweepIdle runs StandIdle every interval until ctx is done.
func (s *CasinoService) SweepIdle(ctx context.Context, interval, maxIdle time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			n := s.StandIdle(ctx, maxIdle)
			if n > 0 {
				slog.InfoContext(ctx, "idle blackjack rounds stood", "count", n)
			}
		}
	}
}

// Blackjack returns the live view of an open round.
func (s *CasinoService) Blackjack(userID uint64, roundID string) (blackjack.View, error) {
	st, err := s.table.get(userID, roundID)
	if err != nil {
		return blackjack.View{}, err
	}

	return st.round.View(), nil
}
