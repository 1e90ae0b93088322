package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastprodman/wagerhouse/internal/repos/transactions"
	"github.com/fastprodman/wagerhouse/internal/repos/users"
)

var _ transactions.Transactions = (*transactionsRepo)(nil)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

type transactionsRepo struct{ db *sql.DB }

func New(db *sql.DB) *transactionsRepo {
	return &transactionsRepo{db: db}
}

func (r *transactionsRepo) Insert(ctx context.Context, tx *sql.Tx, t transactions.Transaction) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (transaction_id, user_id, kind, amount)
		VALUES ($1, $2, $3, $4)
	`, t.ID, t.UserID, string(t.Kind), t.Amount)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case codeUniqueViolation:
				return transactions.ErrDuplicateTransaction
			case codeForeignKeyViolation:
				return users.ErrUserNotFound
			}
		}

		return fmt.Errorf("insert transaction: %w", err)
	}

	return nil
}
