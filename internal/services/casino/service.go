// Package casino runs wagers against persisted player balances. Every play
// locks the player's row, settles inside the same database transaction and
// only then notifies observers such as metrics and logs.
package casino

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fastprodman/wagerhouse/internal/config"
	"github.com/fastprodman/wagerhouse/internal/games/blackjack"
	"github.com/fastprodman/wagerhouse/internal/games/dice"
	"github.com/fastprodman/wagerhouse/internal/games/roulette"
	"github.com/fastprodman/wagerhouse/internal/games/slots"
	"github.com/fastprodman/wagerhouse/internal/repos/rounds"
	pgrounds "github.com/fastprodman/wagerhouse/internal/repos/rounds/postgres"
	"github.com/fastprodman/wagerhouse/internal/repos/transactions"
	pgtransactions "github.com/fastprodman/wagerhouse/internal/repos/transactions/postgres"
	"github.com/fastprodman/wagerhouse/internal/repos/users"
	pgusers "github.com/fastprodman/wagerhouse/internal/repos/users/postgres"
	"github.com/fastprodman/wagerhouse/internal/wager"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// FailureRecorder is told about plays that were rejected or failed.
type FailureRecorder interface {
	Failure(kind wager.Kind, reason string)
}

type CasinoService struct {
	db     *sql.DB
	users  users.Users
	txns   transactions.Transactions
	rounds rounds.Rounds

	games     config.GamesConfig
	dice      *dice.Game
	slots     *slots.Game
	roulette  *roulette.Game
	blackjack *blackjack.Game
	table     *table

	observer wager.ResultReporter
	failures FailureRecorder
	now      func() time.Time
}

type Option func(*CasinoService)

// WithObservers adds reporters that see every result after it is committed.
// Their errors are logged, never returned to the player.
func WithObservers(rs ...wager.ResultReporter) Option {
	return func(s *CasinoService) { s.observer = wager.Reporters(append([]wager.ResultReporter{s.observer}, rs...)...) }
}

func WithFailureRecorder(f FailureRecorder) Option {
	return func(s *CasinoService) { s.failures = f }
}

func WithClock(now func() time.Time) Option {
	return func(s *CasinoService) { s.now = now }
}

func New(db *sql.DB, games config.GamesConfig, src wager.Source, opts ...Option) (*CasinoService, error) {
	err := games.Validate()
	if err != nil {
		return nil, fmt.Errorf("games config: %w", err)
	}

	s := &CasinoService{
		db:        db,
		users:     pgusers.New(db),
		txns:      pgtransactions.New(db),
		rounds:    pgrounds.New(db),
		games:     games,
		dice:      dice.New(src, games.DicePayouts()),
		slots:     slots.New(src, games.SlotsPayouts()),
		roulette:  roulette.New(src, games.RoulettePayouts()),
		blackjack: blackjack.New(src, games.BlackjackPayouts()),
		table:     newTable(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// GetBalance returns the user's balance (no locks; suitable for the GET endpoint).
func (s *CasinoService) GetBalance(ctx context.Context, userID uint64) (int64, error) {
	balance, err := s.users.GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

func (s *CasinoService) GetStats(ctx context.Context, userID uint64) (users.Stats, error) {
	st, err := s.users.GetStats(ctx, userID)
	if err != nil {
		return users.Stats{}, fmt.Errorf("get stats: %w", err)
	}

	return st, nil
}

func (s *CasinoService) GetRound(ctx context.Context, userID uint64, roundID string) (rounds.Round, error) {
	rnd, err := s.rounds.Get(ctx, userID, roundID)
	if err != nil {
		return rounds.Round{}, fmt.Errorf("get round: %w", err)
	}

	return rnd, nil
}

// ListRounds returns the newest rounds first. A non-positive limit means
// DefaultHistoryLimit; larger values are capped at MaxHistoryLimit.
func (s *CasinoService) ListRounds(ctx context.Context, userID uint64, limit int) ([]rounds.Round, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	out, err := s.rounds.List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}

	return out, nil
}

func (s *CasinoService) observe(ctx context.Context, res wager.Result) {
	if s.observer == nil {
		return
	}

	err := s.observer.Report(ctx, res)
	if err != nil {
		slog.WarnContext(ctx, "observe result", "session_id", res.SessionID, "error", err)
	}
}

func (s *CasinoService) fail(kind wager.Kind, err error) {
	if s.failures == nil || err == nil {
		return
	}

	s.failures.Failure(kind, failureReason(err))
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, wager.ErrInvalidStake):
		return "invalid_stake"
	case errors.Is(err, wager.ErrInvalidBet):
		return "invalid_bet"
	case errors.Is(err, wager.ErrInsufficientFunds), errors.Is(err, users.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, wager.ErrRandomSource):
		return "random_source"
	case errors.Is(err, wager.ErrReport):
		return "report"
	case errors.Is(err, wager.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, users.ErrUserNotFound):
		return "user_not_found"
	default:
		return "internal"
	}
}
