package wager

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindDice      Kind = "dice"
	KindSlots     Kind = "slots"
	KindBlackjack Kind = "blackjack"
	KindRoulette  Kind = "roulette"
)

// ParseKind maps a case-insensitive game name to its Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindDice, KindSlots, KindBlackjack, KindRoulette:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomePush Outcome = "push"
)

// Limits bounds the stake of a single round, both ends inclusive.
type Limits struct {
	Min int64
	Max int64
}

func (l Limits) Contains(stake int64) bool {
	return stake > 0 && stake >= l.Min && stake <= l.Max
}
