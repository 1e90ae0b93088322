package rounds

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fastprodman/wagerhouse/internal/repos/rounds"
	"github.com/fastprodman/wagerhouse/internal/wager"
)

const selectColumns = `
	SELECT id, user_id, game_kind, stake, state, outcome, multiplier,
	       payout, delta, new_balance, created_at, settled_at
	FROM rounds
`

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(s scanner) (rounds.Round, error) {
	var (
		rnd        rounds.Round
		kind       string
		state      string
		outcome    sql.NullString
		multiplier decimal.NullDecimal
		payout     sql.NullInt64
		delta      sql.NullInt64
		newBalance sql.NullInt64
		settledAt  sql.NullTime
	)

	err := s.Scan(&rnd.ID, &rnd.UserID, &kind, &rnd.Stake, &state, &outcome, &multiplier,
		&payout, &delta, &newBalance, &rnd.CreatedAt, &settledAt)
	if err != nil {
		return rounds.Round{}, err
	}

	rnd.Kind = wager.Kind(kind)
	rnd.State = wager.State(state)
	rnd.Outcome = wager.Outcome(outcome.String)
	rnd.Multiplier = multiplier.Decimal
	rnd.Payout = payout.Int64
	rnd.Delta = delta.Int64
	rnd.NewBalance = newBalance.Int64

	if settledAt.Valid {
		at := settledAt.Time.UTC()
		rnd.SettledAt = &at
	}

	rnd.CreatedAt = rnd.CreatedAt.UTC()

	return rnd, nil
}

// Get only returns rounds owned by userID. An id that is not a UUID names no
// round.
func (r *roundsRepo) Get(ctx context.Context, userID uint64, roundID string) (rounds.Round, error) {
	if uuid.Validate(roundID) != nil {
		return rounds.Round{}, rounds.ErrRoundNotFound
	}

	row := r.db.QueryRowContext(ctx, selectColumns+`
		WHERE id = $1
		  AND user_id = $2
	`, roundID, userID)

	rnd, err := scanRound(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rounds.Round{}, rounds.ErrRoundNotFound
		}

		return rounds.Round{}, fmt.Errorf("get round: %w", err)
	}

	return rnd, nil
}
