package transactions

import (
	"context"
	"database/sql"
	"errors"
)

var ErrDuplicateTransaction = errors.New("duplicate transaction")

type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
)

// Transaction is one funding movement. ID is chosen by the caller and makes
// retries idempotent.
type Transaction struct {
	ID     string
	UserID uint64
	Kind   Kind
	Amount int64
}

type Transactions interface {
	Insert(ctx context.Context, tx *sql.Tx, t Transaction) error
}
