package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fastprodman/wagerhouse/internal/wager"
)

var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrUserNotFound = errors.New("user not found")

// Stats are the aggregate counters shown on a player's profile.
type Stats struct {
	GamesPlayed int64
	Wins        int64
	Losses      int64
}

type Users interface {
	Exists(ctx context.Context, tx *sql.Tx, userID uint64) error
	GetBalance(ctx context.Context, userID uint64) (int64, error)
	GetStats(ctx context.Context, userID uint64) (Stats, error)
	LockAndGetBalance(ctx context.Context, tx *sql.Tx, userID uint64) (int64, error)
	IncreaseBalance(ctx context.Context, tx *sql.Tx, userID uint64, amount int64) (int64, error)
	DecreaseBalance(ctx context.Context, tx *sql.Tx, userID uint64, amount int64) (int64, error)
	RecordOutcome(ctx context.Context, tx *sql.Tx, userID uint64, outcome wager.Outcome) error
}
