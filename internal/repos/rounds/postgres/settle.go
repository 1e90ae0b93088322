package rounds

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastprodman/wagerhouse/internal/repos/rounds"
	"github.com/fastprodman/wagerhouse/internal/wager"
)

// Settle only matches rounds that are not settled yet, so a result is stored
// at most once.
func (r *roundsRepo) Settle(ctx context.Context, tx *sql.Tx, res wager.Result) error {
	out, err := tx.ExecContext(ctx, `
		UPDATE rounds
		SET state = $2,
		    outcome = $3,
		    multiplier = $4,
		    payout = $5,
		    delta = $6,
		    new_balance = $7,
		    settled_at = $8
		WHERE id = $1
		  AND state <> $2
	`, res.SessionID, string(wager.StateSettled), string(res.Outcome), res.Multiplier,
		res.Payout, res.Delta, res.NewBalance, res.SettledAt)
	if err != nil {
		return fmt.Errorf("settle round: %w", err)
	}

	affected, err := out.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 1 {
		return nil
	}

	var exists bool

	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rounds WHERE id = $1)`, res.SessionID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check round: %w", err)
	}

	if exists {
		return rounds.ErrRoundAlreadySettled
	}

	return rounds.ErrRoundNotFound
}
