package casino

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/wagerhouse/internal/repos/rounds"
	"github.com/fastprodman/wagerhouse/internal/wager"
)

var errNoTx = errors.New("no open transaction")

// ledger is the session reporter that writes a round to the database. It
// works inside whatever transaction the service has bound to it, so the
// stake, the payout and the stats land in the same commit as the row lock
// that guarded them.
type ledger struct {
	svc      *CasinoService
	userID   uint64
	session  *wager.Session
	tx       *sql.Tx
	reserved bool
}

var _ wager.ResultReporter = (*ledger)(nil)

func (s *CasinoService) newSession(kind wager.Kind, userID uint64, account *wager.Account) (*wager.Session, *ledger, error) {
	limits, err := s.games.Limits(kind)
	if err != nil {
		return nil, nil, err
	}

	l := &ledger{svc: s, userID: userID}
	l.session = wager.NewSession(kind, limits, account, wager.WithReporter(l), wager.WithClock(s.now))

	return l.session, l, nil
}

// reserve debits the committed stake and opens the round row. It runs once
// per session.
func (l *ledger) reserve(ctx context.Context) error {
	if l.reserved {
		return nil
	}

	if l.tx == nil {
		return errNoTx
	}

	stake := l.session.Stake()

	_, err := l.svc.users.DecreaseBalance(ctx, l.tx, l.userID, stake)
	if err != nil {
		return fmt.Errorf("debit stake: %w", err)
	}

	state := l.session.State()
	if state == wager.StateSettled {
		state = wager.StateResolving
	}

	err = l.svc.rounds.Insert(ctx, l.tx, rounds.Round{
		ID:        l.session.ID(),
		UserID:    l.userID,
		Kind:      l.session.Kind(),
		Stake:     stake,
		State:     state,
		CreatedAt: l.session.CreatedAt(),
	})
	if err != nil {
		return fmt.Errorf("open round: %w", err)
	}

	l.reserved = true

	return nil
}

func (l *ledger) Report(ctx context.Context, res wager.Result) error {
	if l.tx == nil {
		return errNoTx
	}

	err := l.reserve(ctx)
	if err != nil {
		return err
	}

	balance, err := l.svc.users.IncreaseBalance(ctx, l.tx, l.userID, res.Payout)
	if err != nil {
		return fmt.Errorf("credit payout: %w", err)
	}

	if balance != res.NewBalance {
		return fmt.Errorf("stored balance %d does not match session balance %d", balance, res.NewBalance)
	}

	err = l.svc.rounds.Settle(ctx, l.tx, res)
	if err != nil {
		return fmt.Errorf("settle round: %w", err)
	}

	err = l.svc.users.RecordOutcome(ctx, l.tx, l.userID, res.Outcome)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}

	return nil
}
