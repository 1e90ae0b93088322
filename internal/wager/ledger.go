package wager

import (
	"fmt"
	"sync/atomic"
)

// Apply returns balance+delta. It fails with ErrInsufficientFunds when the
// result would be negative and never has side effects.
func Apply(balance, delta int64) (int64, error) {
	next := balance + delta
	if next < 0 {
		return balance, fmt.Errorf("apply %d to %d: %w", delta, balance, ErrInsufficientFunds)
	}

	return next, nil
}

// Reserve takes stake out of balance ahead of resolution.
func Reserve(balance, stake int64) (int64, error) {
	if stake <= 0 {
		return balance, fmt.Errorf("reserve %d: %w", stake, ErrInvalidStake)
	}

	return Apply(balance, -stake)
}

// Account is a single balance that is safe to mutate from many goroutines.
// Every mutation goes through Apply inside a compare-and-swap loop, so
// concurrent deltas are neither lost nor allowed to overdraw.
type Account struct {
	balance atomic.Int64
}

func NewAccount(balance int64) (*Account, error) {
	if balance < 0 {
		return nil, fmt.Errorf("open account with %d: %w", balance, ErrInsufficientFunds)
	}

	a := new(Account)
	a.balance.Store(balance)

	return a, nil
}

func (a *Account) Balance() int64 {
	return a.balance.Load()
}

// Apply adds delta to the account and returns the new balance.
func (a *Account) Apply(delta int64) (int64, error) {
	for {
		cur := a.balance.Load()

		next, err := Apply(cur, delta)
		if err != nil {
			return cur, err
		}

		if a.balance.CompareAndSwap(cur, next) {
			return next, nil
		}
	}
}
