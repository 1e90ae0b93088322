package wager

import "errors"

var (
	ErrInvalidStake      = errors.New("invalid stake")
	ErrInvalidBet        = errors.New("invalid bet")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrRandomSource      = errors.New("random source failure")
	ErrReport            = errors.New("report result")
	ErrUnknownKind       = errors.New("unknown game kind")
)
