package rounds

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastprodman/wagerhouse/internal/repos/rounds"
	"github.com/fastprodman/wagerhouse/internal/repos/users"
)

func (r *roundsRepo) Insert(ctx context.Context, tx *sql.Tx, rnd rounds.Round) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO rounds (id, user_id, game_kind, stake, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rnd.ID, rnd.UserID, string(rnd.Kind), rnd.Stake, string(rnd.State), rnd.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return users.ErrUserNotFound
		}

		return fmt.Errorf("insert round: %w", err)
	}

	return nil
}
