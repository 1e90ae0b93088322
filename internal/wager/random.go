package wager

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/rand"
)

// Source produces uniformly distributed discrete draws: die faces, reel
// symbols, wheel pockets, card ranks and suits.
type Source interface {
	// Draw returns an integer in [0, n).
	Draw(n int) (int, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(n int) (int, error)

func (f SourceFunc) Draw(n int) (int, error) { return f(n) }

type processSource struct{}

// NewSource returns a Source backed by the process-wide generator.
// It is safe for concurrent use.
func NewSource() Source { return processSource{} }

func (processSource) Draw(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: space size %d", ErrRandomSource, n)
	}

	return rand.Intn(n), nil
}

type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a reproducible Source. Two sources created with
// the same seed yield the same sequence of draws.
func NewSeededSource(seed uint64) Source {
	return &seededSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) Draw(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: space size %d", ErrRandomSource, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.Intn(n), nil
}

// DrawN performs count independent draws from the same space.
func DrawN(src Source, n, count int) ([]int, error) {
	out := make([]int, count)

	for i := range out {
		v, err := Draw(src, n)
		if err != nil {
			return nil, fmt.Errorf("draw %d of %d: %w", i+1, count, err)
		}

		out[i] = v
	}

	return out, nil
}

// Draw is a checked single draw: it wraps failures in ErrRandomSource and
// rejects values outside [0, n).
func Draw(src Source, n int) (int, error) {
	v, err := src.Draw(n)
	if err != nil {
		return 0, wrapSource(err)
	}

	if v < 0 || v >= n {
		return 0, fmt.Errorf("%w: draw %d outside [0, %d)", ErrRandomSource, v, n)
	}

	return v, nil
}

func wrapSource(err error) error {
	if errors.Is(err, ErrRandomSource) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrRandomSource, err)
}
