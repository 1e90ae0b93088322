package rounds

import (
	"context"
	"fmt"

	"github.com/fastprodman/wagerhouse/internal/repos/rounds"
)

// List returns the newest rounds of a user first.
func (r *roundsRepo) List(ctx context.Context, userID uint64, limit int) ([]rounds.Round, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+`
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	//nolint:errcheck
	defer rows.Close()

	out := make([]rounds.Round, 0, limit)

	for rows.Next() {
		rnd, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}

		out = append(out, rnd)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate rounds: %w", err)
	}

	return out, nil
}
