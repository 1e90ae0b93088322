package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/wagerhouse/internal/repos/users"
)

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanUser runs a single-row query keyed by user id and maps a missing row
// to ErrUserNotFound.
func scanUser(ctx context.Context, q rowQuerier, op, query string, userID uint64, dest ...any) error {
	err := q.QueryRowContext(ctx, query, userID).Scan(dest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.ErrUserNotFound
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *usersRepo) Exists(ctx context.Context, tx *sql.Tx, userID uint64) error {
	var id uint64

	return scanUser(ctx, tx, "check exists", `
		SELECT id FROM users WHERE id = $1
	`, userID, &id)
}

func (r *usersRepo) GetBalance(ctx context.Context, userID uint64) (int64, error) {
	var balance int64

	err := scanUser(ctx, r.db, "get balance", `
		SELECT balance FROM users WHERE id = $1
	`, userID, &balance)
	if err != nil {
		return 0, err
	}

	return balance, nil
}

func (r *usersRepo) GetStats(ctx context.Context, userID uint64) (users.Stats, error) {
	var st users.Stats

	err := scanUser(ctx, r.db, "get stats", `
		SELECT games_played, wins, losses FROM users WHERE id = $1
	`, userID, &st.GamesPlayed, &st.Wins, &st.Losses)
	if err != nil {
		return users.Stats{}, err
	}

	return st, nil
}

// LockAndGetBalance takes the row lock that serializes every balance change
// of the user until tx ends.
func (r *usersRepo) LockAndGetBalance(ctx context.Context, tx *sql.Tx, userID uint64) (int64, error) {
	var balance int64

	err := scanUser(ctx, tx, "lock and get balance", `
		SELECT balance FROM users WHERE id = $1 FOR UPDATE
	`, userID, &balance)
	if err != nil {
		return 0, err
	}

	return balance, nil
}
