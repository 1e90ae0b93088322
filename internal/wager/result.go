package wager

import (
	"time"

	"github.com/shopspring/decimal"
)

// Result is the settled outcome of one session. It is produced exactly once
// and never modified afterwards.
type Result struct {
	SessionID  string
	Kind       Kind
	Outcome    Outcome
	Multiplier decimal.Decimal // gross, stake included
	Stake      int64
	Payout     int64 // credited at settlement
	Delta      int64 // net change against the balance before commit
	NewBalance int64
	SettledAt  time.Time
}

// Payout is the gross amount credited for stake at multiplier, rounded down
// to whole points.
func Payout(stake int64, multiplier decimal.Decimal) int64 {
	if multiplier.IsNegative() {
		return 0
	}

	return decimal.NewFromInt(stake).Mul(multiplier).Floor().IntPart()
}
