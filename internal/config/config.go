package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"

	"github.com/fastprodman/wagerhouse/internal/games/blackjack"
	"github.com/fastprodman/wagerhouse/internal/games/dice"
	"github.com/fastprodman/wagerhouse/internal/games/roulette"
	"github.com/fastprodman/wagerhouse/internal/games/slots"
	"github.com/fastprodman/wagerhouse/internal/wager"
)

type PostgresConfig struct {
	DSN             string        `env:"PG_DSN,required"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// GamesConfig carries bet limits and payout tables. Multipliers are gross:
// a multiplier of 2 returns the stake plus an equal win.
type GamesConfig struct {
	DiceMin int64           `env:"DICE_MIN_STAKE" envDefault:"50"`
	DiceMax int64           `env:"DICE_MAX_STAKE" envDefault:"5000"`
	DiceWin decimal.Decimal `env:"DICE_WIN_MULTIPLIER" envDefault:"2"`

	SlotsMin     int64           `env:"SLOTS_MIN_STAKE" envDefault:"10"`
	SlotsMax     int64           `env:"SLOTS_MAX_STAKE" envDefault:"5000"`
	SlotsJackpot decimal.Decimal `env:"SLOTS_JACKPOT_MULTIPLIER" envDefault:"5"`
	SlotsPair    decimal.Decimal `env:"SLOTS_PAIR_MULTIPLIER" envDefault:"2"`

	BlackjackMin int64           `env:"BLACKJACK_MIN_STAKE" envDefault:"100"`
	BlackjackMax int64           `env:"BLACKJACK_MAX_STAKE" envDefault:"5000"`
	BlackjackWin decimal.Decimal `env:"BLACKJACK_WIN_MULTIPLIER" envDefault:"2"`

	RouletteMin    int64           `env:"ROULETTE_MIN_STAKE" envDefault:"20"`
	RouletteMax    int64           `env:"ROULETTE_MAX_STAKE" envDefault:"5000"`
	RouletteColor  decimal.Decimal `env:"ROULETTE_COLOR_MULTIPLIER" envDefault:"2"`
	RouletteGreen  decimal.Decimal `env:"ROULETTE_GREEN_MULTIPLIER" envDefault:"36"`
	RouletteNumber decimal.Decimal `env:"ROULETTE_NUMBER_MULTIPLIER" envDefault:"36"`

	// Seed makes every draw reproducible when non-zero.
	Seed uint64 `env:"GAMES_RANDOM_SEED" envDefault:"0"`
}

// DefaultGames returns the envDefault values, ignoring the process
// environment.
func DefaultGames() GamesConfig {
	var g GamesConfig

	err := env.ParseWithOptions(&g, env.Options{Environment: map[string]string{}})
	if err != nil {
		panic(fmt.Sprintf("default games config: %v", err))
	}

	return g
}

func (g GamesConfig) Limits(k wager.Kind) (wager.Limits, error) {
	switch k {
	case wager.KindDice:
		return wager.Limits{Min: g.DiceMin, Max: g.DiceMax}, nil
	case wager.KindSlots:
		return wager.Limits{Min: g.SlotsMin, Max: g.SlotsMax}, nil
	case wager.KindBlackjack:
		return wager.Limits{Min: g.BlackjackMin, Max: g.BlackjackMax}, nil
	case wager.KindRoulette:
		return wager.Limits{Min: g.RouletteMin, Max: g.RouletteMax}, nil
	default:
		return wager.Limits{}, fmt.Errorf("limits for %q: %w", k, wager.ErrUnknownKind)
	}
}

func (g GamesConfig) DicePayouts() dice.Payouts {
	return dice.Payouts{Win: g.DiceWin, Push: decimal.NewFromInt(1)}
}

func (g GamesConfig) SlotsPayouts() slots.Payouts {
	return slots.Payouts{Jackpot: g.SlotsJackpot, Pair: g.SlotsPair}
}

func (g GamesConfig) BlackjackPayouts() blackjack.Payouts {
	return blackjack.Payouts{Win: g.BlackjackWin, Push: decimal.NewFromInt(1)}
}

func (g GamesConfig) RoulettePayouts() roulette.Payouts {
	return roulette.Payouts{Color: g.RouletteColor, Green: g.RouletteGreen, Number: g.RouletteNumber}
}

// Validate rejects limits that no stake can satisfy and multipliers that
// would take points away on a win.
func (g GamesConfig) Validate() error {
	for _, k := range []wager.Kind{wager.KindDice, wager.KindSlots, wager.KindBlackjack, wager.KindRoulette} {
		l, _ := g.Limits(k)
		if l.Min <= 0 || l.Max < l.Min {
			return fmt.Errorf("%s limits [%d, %d]: %w", k, l.Min, l.Max, wager.ErrInvalidStake)
		}
	}

	one := decimal.NewFromInt(1)
	for name, m := range map[string]decimal.Decimal{
		"dice win":        g.DiceWin,
		"slots jackpot":   g.SlotsJackpot,
		"slots pair":      g.SlotsPair,
		"blackjack win":   g.BlackjackWin,
		"roulette color":  g.RouletteColor,
		"roulette green":  g.RouletteGreen,
		"roulette number": g.RouletteNumber,
	} {
		if m.LessThan(one) {
			return fmt.Errorf("%s multiplier %s below 1", name, m)
		}
	}

	return nil
}

// Load parses environment variables into dst.
func Load(dst any) error {
	err := env.Parse(dst)
	if err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}
