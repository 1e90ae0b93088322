package config

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fastprodman/wagerhouse/internal/wager"
)

func TestDefaultGames(t *testing.T) {
	g := DefaultGames()

	err := g.Validate()
	if err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	want := map[wager.Kind]wager.Limits{
		wager.KindDice:      {Min: 50, Max: 5000},
		wager.KindSlots:     {Min: 10, Max: 5000},
		wager.KindBlackjack: {Min: 100, Max: 5000},
		wager.KindRoulette:  {Min: 20, Max: 5000},
	}
	for k, w := range want {
		got, err := g.Limits(k)
		if err != nil {
			t.Fatalf("limits %s: %v", k, err)
		}
		if got != w {
			t.Fatalf("limits %s: want %+v, got %+v", k, w, got)
		}
	}

	if !g.SlotsPayouts().Jackpot.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("jackpot: got %s", g.SlotsPayouts().Jackpot)
	}
	if !g.RoulettePayouts().Number.Equal(decimal.NewFromInt(36)) {
		t.Fatalf("number: got %s", g.RoulettePayouts().Number)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SLOTS_JACKPOT_MULTIPLIER", "3.5")
	t.Setenv("DICE_MIN_STAKE", "1")

	var g GamesConfig

	err := Load(&g)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !g.SlotsJackpot.Equal(decimal.RequireFromString("3.5")) {
		t.Fatalf("jackpot: got %s", g.SlotsJackpot)
	}
	if g.DiceMin != 1 {
		t.Fatalf("dice min: got %d", g.DiceMin)
	}
}

func TestLoad_Error(t *testing.T) {
	t.Setenv("DICE_MAX_STAKE", "lots")

	var g GamesConfig

	err := Load(&g)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestGamesConfig_Validate(t *testing.T) {
	g := DefaultGames()
	g.RouletteMax = 5

	err := g.Validate()
	if err == nil {
		t.Fatal("expected limits error")
	}

	g = DefaultGames()
	g.SlotsPair = decimal.RequireFromString("0.5")

	err = g.Validate()
	if err == nil {
		t.Fatal("expected multiplier error")
	}
}

func TestGamesConfig_UnknownKind(t *testing.T) {
	_, err := DefaultGames().Limits("poker")
	if err == nil {
		t.Fatal("expected error")
	}
}
