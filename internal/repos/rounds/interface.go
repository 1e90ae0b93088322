package rounds

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fastprodman/wagerhouse/internal/wager"
)

var (
	ErrRoundNotFound       = errors.New("round not found")
	ErrRoundAlreadySettled = errors.New("round already settled")
)

// Round is the stored history of one session. Settlement fields are zero
// until State is settled.
type Round struct {
	ID         string
	UserID     uint64
	Kind       wager.Kind
	Stake      int64
	State      wager.State
	Outcome    wager.Outcome
	Multiplier decimal.Decimal
	Payout     int64
	Delta      int64
	NewBalance int64
	CreatedAt  time.Time
	SettledAt  *time.Time
}

type Rounds interface {
	// Insert records a round whose stake has been reserved.
	Insert(ctx context.Context, tx *sql.Tx, r Round) error
	// Settle stores res on a round that is still open.
	Settle(ctx context.Context, tx *sql.Tx, res wager.Result) error
	Get(ctx context.Context, userID uint64, roundID string) (Round, error)
	List(ctx context.Context, userID uint64, limit int) ([]Round, error)
}
