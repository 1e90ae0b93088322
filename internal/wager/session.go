package wager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type State string

const (
	StateIdle      State = "idle"
	StateCommitted State = "committed"
	StateResolving State = "resolving"
	StateSettled   State = "settled"
)

// successor holds the single legal transition out of each state.
var successor = map[State]State{
	StateIdle:      StateCommitted,
	StateCommitted: StateResolving,
	StateResolving: StateSettled,
}

// Session is the lifecycle of one bet: idle -> committed -> resolving ->
// settled. It is single-use; a new Session is required for the next round.
// All methods are safe to call concurrently, but every transition is
// accepted at most once.
type Session struct {
	mu sync.Mutex

	id        string
	kind      Kind
	limits    Limits
	account   *Account
	reporter  ResultReporter
	now       func() time.Time
	createdAt time.Time

	state  State
	stake  int64
	result *Result
}

type Option func(*Session)

func WithReporter(r ResultReporter) Option {
	return func(s *Session) { s.reporter = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

func NewSession(kind Kind, limits Limits, account *Account, opts ...Option) *Session {
	s := &Session{
		id:      uuid.NewString(),
		kind:    kind,
		limits:  limits,
		account: account,
		now:     time.Now,
		state:   StateIdle,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.createdAt = s.now().UTC()

	return s
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Kind() Kind           { return s.kind }
func (s *Session) Limits() Limits       { return s.limits }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
func (s *Session) Balance() int64       { return s.account.Balance() }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) Stake() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stake
}

// Result returns the settled result, if any.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return Result{}, false
	}

	return *s.result, true
}

// Commit validates stake and reserves it on the account. On error nothing
// changes and the session stays idle.
func (s *Session) Commit(stake int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.check(StateIdle)
	if err != nil {
		return s.account.Balance(), err
	}

	if !s.limits.Contains(stake) {
		return s.account.Balance(), fmt.Errorf(
			"stake %d outside [%d, %d]: %w", stake, s.limits.Min, s.limits.Max, ErrInvalidStake,
		)
	}

	balance, err := s.account.Apply(-stake)
	if err != nil {
		return balance, fmt.Errorf("reserve stake: %w", err)
	}

	s.stake = stake
	s.state = StateCommitted

	return balance, nil
}

// Begin moves a committed session into resolution.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.check(StateCommitted)
	if err != nil {
		return err
	}

	s.state = StateResolving

	return nil
}

// Settle credits stake*multiplier, freezes the Result and hands it to the
// reporter. A reporter failure is returned wrapped in ErrReport together with
// the already settled Result.
func (s *Session) Settle(ctx context.Context, outcome Outcome, multiplier decimal.Decimal) (Result, error) {
	res, err := s.settle(outcome, multiplier)
	if err != nil {
		return Result{}, err
	}

	if s.reporter == nil {
		return res, nil
	}

	err = s.reporter.Report(ctx, res)
	if err != nil {
		return res, fmt.Errorf("%w: session %s: %w", ErrReport, s.id, err)
	}

	return res, nil
}

func (s *Session) settle(outcome Outcome, multiplier decimal.Decimal) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.check(StateResolving)
	if err != nil {
		return Result{}, err
	}

	if multiplier.IsNegative() {
		return Result{}, fmt.Errorf("negative multiplier %s: %w", multiplier, ErrInvalidTransition)
	}

	payout := Payout(s.stake, multiplier)

	balance, err := s.account.Apply(payout)
	if err != nil {
		return Result{}, fmt.Errorf("credit payout: %w", err)
	}

	s.result = &Result{
		SessionID:  s.id,
		Kind:       s.kind,
		Outcome:    outcome,
		Multiplier: multiplier,
		Stake:      s.stake,
		Payout:     payout,
		Delta:      payout - s.stake,
		NewBalance: balance,
		SettledAt:  s.now().UTC(),
	}
	s.state = StateSettled

	return *s.result, nil
}

func (s *Session) check(want State) error {
	if s.state != want {
		return fmt.Errorf("%w: session %s is %s, want %s -> %s",
			ErrInvalidTransition, s.id, s.state, want, successor[want])
	}

	return nil
}

// Resolve runs Begin and Settle back to back for games whose outcome is
// fully known at commit time.
func (s *Session) Resolve(ctx context.Context, outcome Outcome, multiplier decimal.Decimal) (Result, error) {
	err := s.Begin()
	if err != nil {
		return Result{}, err
	}

	return s.Settle(ctx, outcome, multiplier)
}
