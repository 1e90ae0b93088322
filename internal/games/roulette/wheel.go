package roulette

type Color string

const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

// Wheel is the single-zero European wheel in physical order. Colours
// alternate red and black clockwise from the zero.
var Wheel = [37]int{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10,
	5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26,
}

var colors = func() map[int]Color {
	m := make(map[int]Color, len(Wheel))
	for i, n := range Wheel {
		switch {
		case i == 0:
			m[n] = Green
		case i%2 == 1:
			m[n] = Red
		default:
			m[n] = Black
		}
	}

	return m
}()

type Pocket struct {
	Number int
	Color  Color
}

// PocketOf returns the pocket for a number in 0..36.
func PocketOf(n int) (Pocket, bool) {
	c, ok := colors[n]
	if !ok {
		return Pocket{}, false
	}

	return Pocket{Number: n, Color: c}, true
}
