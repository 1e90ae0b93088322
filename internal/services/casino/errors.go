package casino

import "errors"

var (
	ErrUnknownGame   = errors.New("unknown game")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid transaction kind")
)
