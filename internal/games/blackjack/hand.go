package blackjack

const (
	Blackjack     = 21
	DealerStandOn = 17
)

type Hand []Card

// Score is the best total not above 21 if one exists, otherwise the lowest
// (bust) total. Aces start at 11 and drop to 1 one at a time.
func Score(h Hand) int {
	total, _ := score(h)
	return total
}

// Soft reports whether an ace still counts as 11 in the scored total.
func Soft(h Hand) bool {
	_, soft := score(h)
	return soft > 0
}

func score(h Hand) (total, soft int) {
	for _, c := range h {
		total += c.value()
		if c.Rank == "A" {
			soft++
		}
	}

	for total > Blackjack && soft > 0 {
		total -= 10
		soft--
	}

	return total, soft
}

func (h Hand) Score() int  { return Score(h) }
func (h Hand) Bust() bool  { return Score(h) > Blackjack }
func (h Hand) Clone() Hand { return append(Hand(nil), h...) }
