package blackjack

import (
	"fmt"

	"github.com/fastprodman/wagerhouse/internal/wager"
)

type Rank string

// Ranks is the draw order of ranks; a rank draw is an index into it.
var Ranks = []Rank{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

var rankValues = map[Rank]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9,
	"10": 10, "J": 10, "Q": 10, "K": 10, "A": 11,
}

type Suit string

var Suits = []Suit{"♠", "♥", "♦", "♣"}

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string { return string(c.Rank) + string(c.Suit) }

// value counts an ace as 11. Unknown ranks count 0.
func (c Card) value() int { return rankValues[c.Rank] }

// drawCard picks a rank and a suit independently. The shoe is infinite, so
// nothing is removed.
func drawCard(src wager.Source) (Card, error) {
	r, err := wager.Draw(src, len(Ranks))
	if err != nil {
		return Card{}, fmt.Errorf("draw rank: %w", err)
	}

	s, err := wager.Draw(src, len(Suits))
	if err != nil {
		return Card{}, fmt.Errorf("draw suit: %w", err)
	}

	return Card{Rank: Ranks[r], Suit: Suits[s]}, nil
}
