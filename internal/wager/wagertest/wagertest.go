// Package wagertest provides scripted random sources and recording reporters
// for deterministic game tests.
package wagertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/fastprodman/wagerhouse/internal/wager"
)

// Script is a Source that returns the given values in order and fails with
// wager.ErrRandomSource once they run out.
type Script struct {
	mu     sync.Mutex
	values []int
	spaces []int
}

func NewScript(values ...int) *Script {
	return &Script{values: values}
}

func (s *Script) Draw(n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) == 0 {
		return 0, fmt.Errorf("%w: script exhausted", wager.ErrRandomSource)
	}

	v := s.values[0]
	s.values = s.values[1:]
	s.spaces = append(s.spaces, n)

	return v, nil
}

// Push appends further values to the script.
func (s *Script) Push(values ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = append(s.values, values...)
}

// Remaining reports how many scripted values are unused.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.values)
}

// Spaces returns the space sizes requested so far, in call order.
func (s *Script) Spaces() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]int(nil), s.spaces...)
}

// Recorder is a ResultReporter that keeps every Result it receives and
// optionally fails with Err.
type Recorder struct {
	mu      sync.Mutex
	results []wager.Result
	Err     error
}

func (r *Recorder) Report(_ context.Context, res wager.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results = append(r.results, res)

	return r.Err
}

func (r *Recorder) Results() []wager.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]wager.Result(nil), r.results...)
}

// Account opens an account or fails the test setup by panicking; balances in
// tests are literals.
func Account(balance int64) *wager.Account {
	acc, err := wager.NewAccount(balance)
	if err != nil {
		panic(err)
	}

	return acc
}
