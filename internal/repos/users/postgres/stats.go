package users

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fastprodman/wagerhouse/internal/repos/users"
	"github.com/fastprodman/wagerhouse/internal/wager"
)

// RecordOutcome bumps games_played and, for wins and losses, the matching
// counter. A push only counts as played.
func (r *usersRepo) RecordOutcome(ctx context.Context, tx *sql.Tx, userID uint64, outcome wager.Outcome) error {
	var win, loss int

	switch outcome {
	case wager.OutcomeWin:
		win = 1
	case wager.OutcomeLoss:
		loss = 1
	case wager.OutcomePush:
	default:
		return fmt.Errorf("record outcome %q: unknown outcome", outcome)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE users
		SET games_played = games_played + 1,
		    wins = wins + $2,
		    losses = losses + $3
		WHERE id = $1
	`, userID, win, loss)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return users.ErrUserNotFound
	}

	return nil
}
