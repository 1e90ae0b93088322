// Package blackjack plays one hand against a dealer from an infinite shoe.
//
// A round starts once the stake is committed and stays inside the session's
// resolving state while the player acts:
//
//	player_turn --stand--> dealer_turn --> finished
//	player_turn --hit (bust)--> finished
//
// A natural 21 on the deal finishes the round immediately.
package blackjack

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/fastprodman/wagerhouse/internal/wager"
)

type Phase string

const (
	PhasePlayerTurn Phase = "player_turn"
	PhaseDealerTurn Phase = "dealer_turn"
	PhaseFinished   Phase = "finished"
)

type Payouts struct {
	Win  decimal.Decimal
	Push decimal.Decimal
}

func DefaultPayouts() Payouts {
	return Payouts{
		Win:  decimal.NewFromInt(2),
		Push: decimal.NewFromInt(1),
	}
}

// Deal is the opening two cards each, drawn before the stake is committed.
type Deal struct {
	Player Hand
	Dealer Hand
}

type Game struct {
	src     wager.Source
	payouts Payouts
}

func New(src wager.Source, payouts Payouts) *Game {
	return &Game{src: src, payouts: payouts}
}

// Deal draws player, dealer, player, dealer.
func (g *Game) Deal() (Deal, error) {
	var d Deal

	for range 2 {
		c, err := drawCard(g.src)
		if err != nil {
			return Deal{}, fmt.Errorf("deal player: %w", err)
		}

		d.Player = append(d.Player, c)

		c, err = drawCard(g.src)
		if err != nil {
			return Deal{}, fmt.Errorf("deal dealer: %w", err)
		}

		d.Dealer = append(d.Dealer, c)
	}

	return d, nil
}

// Round is one hand in play. Its methods are safe for concurrent use; moves
// made from the wrong phase fail with wager.ErrInvalidTransition.
type Round struct {
	mu sync.Mutex

	game    *Game
	session *wager.Session
	phase   Phase
	player  Hand
	dealer  Hand
	result  *wager.Result
}

// Start commits stake and opens the player's turn with the given deal.
func (g *Game) Start(ctx context.Context, s *wager.Session, d Deal, stake int64) (*Round, error) {
	if s.Kind() != wager.KindBlackjack {
		return nil, fmt.Errorf("%w: %s session in blackjack", wager.ErrInvalidTransition, s.Kind())
	}

	if len(d.Player) != 2 || len(d.Dealer) != 2 {
		return nil, fmt.Errorf("%w: deal needs two cards each", wager.ErrRandomSource)
	}

	_, err := s.Commit(stake)
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	err = s.Begin()
	if err != nil {
		return nil, err
	}

	r := &Round{
		game:    g,
		session: s,
		phase:   PhasePlayerTurn,
		player:  d.Player.Clone(),
		dealer:  d.Dealer.Clone(),
	}

	if Score(r.player) != Blackjack {
		return r, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if Score(r.dealer) == Blackjack {
		return r, r.finish(ctx, wager.OutcomePush)
	}

	return r, r.finish(ctx, wager.OutcomeWin)
}

// Hit draws one card for the player. A bust loses at once; reaching exactly
// 21 stands automatically. If the dealer's draws then fail, the round waits
// in the dealer's turn and only Stand can finish it.
func (r *Round) Hit(ctx context.Context) (Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.expect(PhasePlayerTurn)
	if err != nil {
		return Card{}, err
	}

	c, err := drawCard(r.game.src)
	if err != nil {
		return Card{}, fmt.Errorf("hit: %w", err)
	}

	r.player = append(r.player, c)

	switch score := Score(r.player); {
	case score > Blackjack:
		return c, r.finish(ctx, wager.OutcomeLoss)
	case score == Blackjack:
		r.phase = PhaseDealerTurn
		return c, r.stand(ctx)
	default:
		return c, nil
	}
}

// Stand ends the player's turn; the dealer then draws to 17 or more and the
// round is settled. It also retries a dealer turn whose draws failed.
func (r *Round) Stand(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseDealerTurn {
		err := r.expect(PhasePlayerTurn)
		if err != nil {
			return err
		}
	}

	return r.stand(ctx)
}

func (r *Round) stand(ctx context.Context) error {
	dealer := r.dealer.Clone()

	for Score(dealer) < DealerStandOn {
		c, err := drawCard(r.game.src)
		if err != nil {
			// phase is unchanged and no card has been revealed
			return fmt.Errorf("dealer draw: %w", err)
		}

		dealer = append(dealer, c)
	}

	r.phase = PhaseDealerTurn
	r.dealer = dealer

	return r.finish(ctx, Compare(r.player, r.dealer))
}

// Compare decides a finished hand from the player's side.
func Compare(player, dealer Hand) wager.Outcome {
	p, d := Score(player), Score(dealer)

	switch {
	case p > Blackjack:
		return wager.OutcomeLoss
	case d > Blackjack:
		return wager.OutcomeWin
	case p > d:
		return wager.OutcomeWin
	case p < d:
		return wager.OutcomeLoss
	default:
		return wager.OutcomePush
	}
}

func (r *Round) finish(ctx context.Context, outcome wager.Outcome) error {
	mult := decimal.Zero

	switch outcome {
	case wager.OutcomeWin:
		mult = r.game.payouts.Win
	case wager.OutcomePush:
		mult = r.game.payouts.Push
	}

	res, err := r.session.Settle(ctx, outcome, mult)
	if res.SessionID != "" {
		r.result = &res
		r.phase = PhaseFinished
	}

	if err != nil {
		return fmt.Errorf("settle: %w", err)
	}

	return nil
}

func (r *Round) expect(p Phase) error {
	if r.phase != p {
		return fmt.Errorf("%w: round %s is %s, want %s", wager.ErrInvalidTransition, r.session.ID(), r.phase, p)
	}

	return nil
}

// View is a point-in-time copy of the round.
type View struct {
	SessionID   string
	Phase       Phase
	Stake       int64
	Player      Hand
	Dealer      Hand
	PlayerScore int
	DealerScore int
	Result      *wager.Result
}

func (r *Round) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := View{
		SessionID:   r.session.ID(),
		Phase:       r.phase,
		Stake:       r.session.Stake(),
		Player:      r.player.Clone(),
		Dealer:      r.dealer.Clone(),
		PlayerScore: Score(r.player),
		DealerScore: Score(r.dealer),
	}

	if r.result != nil {
		res := *r.result
		v.Result = &res
	}

	return v
}

func (r *Round) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.phase
}

func (r *Round) Session() *wager.Session { return r.session }
