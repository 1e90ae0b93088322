package casino

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastprodman/wagerhouse/internal/infra/pgutils"
	"github.com/fastprodman/wagerhouse/internal/repos/transactions"
	"github.com/fastprodman/wagerhouse/internal/repos/users"
)

// ProcessTransaction runs a deposit or withdrawal in a single DB transaction:
//
// 1) Ensure user exists.
// 2) Lock user row (FOR UPDATE).
// 3) Apply the amount.
// 4) Insert the record (unique violation -> ErrDuplicateTransaction).
//
// A replayed transaction id is rejected and the balance changes once.
func (s *CasinoService) ProcessTransaction(ctx context.Context, t transactions.Transaction) (int64, error) {
	if t.Amount <= 0 {
		return 0, fmt.Errorf("process transaction: amount %d: %w", t.Amount, ErrInvalidAmount)
	}

	var balance int64

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.users.Exists(ctx, tx, t.UserID)
		if err != nil {
			return fmt.Errorf("check user exists: %w", err)
		}

		balance, err = s.users.LockAndGetBalance(ctx, tx, t.UserID)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		switch t.Kind {
		case transactions.KindDeposit:
			balance, err = s.users.IncreaseBalance(ctx, tx, t.UserID, t.Amount)
			if err != nil {
				return fmt.Errorf("increase balance: %w", err)
			}

		case transactions.KindWithdraw:
			if balance < t.Amount {
				return fmt.Errorf("pre-check decrease: %w", users.ErrInsufficientFunds)
			}

			balance, err = s.users.DecreaseBalance(ctx, tx, t.UserID, t.Amount)
			if err != nil {
				return fmt.Errorf("decrease balance: %w", err)
			}

		default:
			return fmt.Errorf("%w: %q", ErrInvalidKind, t.Kind)
		}

		err = s.txns.Insert(ctx, tx, t)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("process transaction: %w", err)
	}

	return balance, nil
}
