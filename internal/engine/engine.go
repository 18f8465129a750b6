package engine

import (
	"errors"

	"github.com/lox/axiomind/internal/cards"
)

// DefaultSeed seeds a new Engine's deck when no explicit seed is given.
const DefaultSeed uint64 = 0xA1A2_A3A4

// ErrPlayerStackZero is returned by DealHand when either player has no
// chips left to play for.
var ErrPlayerStackZero = errors.New("engine: player stack is zero")

// Engine orchestrates one heads-up hand: the deck, the two seats, the
// community board, and the blind level.
type Engine struct {
	deck    *cards.Deck
	players [2]*Player
	level   uint8
	board   []cards.Card
}

// New builds an Engine with a fresh deck and two players at
// StartingStack, Button/BigBlind respectively. A nil seed falls back
// to DefaultSeed.
func New(seed *uint64, level uint8) *Engine {
	s := DefaultSeed
	if seed != nil {
		s = *seed
	}
	return &Engine{
		deck: cards.NewDeck(s),
		players: [2]*Player{
			NewPlayer(0, StartingStack, Button),
			NewPlayer(1, StartingStack, BigBlind),
		},
		level: level,
		board: make([]cards.Card, 0, 5),
	}
}

// Players returns the two seats in id order.
func (e *Engine) Players() [2]*Player { return e.players }

// Level returns the current blind level.
func (e *Engine) Level() uint8 { return e.level }

// Shuffle reshuffles the deck in place.
func (e *Engine) Shuffle() { e.deck.Shuffle() }

// DrawN deals up to n cards from the deck, stopping early if the deck
// runs out.
func (e *Engine) DrawN(n int) []cards.Card {
	out := make([]cards.Card, 0, n)
	for i := 0; i < n; i++ {
		c, err := e.deck.Deal()
		if err != nil {
			break
		}
		out = append(out, c)
	}
	return out
}

// DealHand runs the full Hold'em dealing procedure: two hole cards
// each, burn-flop, burn-turn, burn-river. It refuses to start if
// either player's stack is zero, and fails with the deck's error if
// the deck runs out partway through - neither should happen with a
// freshly shuffled 52-card deck and two live stacks.
func (e *Engine) DealHand() error {
	for _, p := range e.players {
		if p.Stack() == 0 {
			return ErrPlayerStackZero
		}
	}

	e.board = e.board[:0]
	for _, p := range e.players {
		p.ClearCards()
	}

	for round := 0; round < 2; round++ {
		for _, p := range e.players {
			c, err := e.deck.Deal()
			if err != nil {
				return err
			}
			if err := p.GiveCard(c); err != nil {
				return err
			}
		}
	}

	if err := e.deck.Burn(); err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		c, err := e.deck.Deal()
		if err != nil {
			return err
		}
		e.board = append(e.board, c)
	}

	if err := e.deck.Burn(); err != nil {
		return err
	}
	c, err := e.deck.Deal()
	if err != nil {
		return err
	}
	e.board = append(e.board, c)

	if err := e.deck.Burn(); err != nil {
		return err
	}
	c, err = e.deck.Deal()
	if err != nil {
		return err
	}
	e.board = append(e.board, c)

	return nil
}

// Board returns the community cards dealt so far (0, 3, 4, or 5 long).
func (e *Engine) Board() []cards.Card { return e.board }

// IsHandComplete reports whether all five community cards are out.
func (e *Engine) IsHandComplete() bool { return len(e.board) == 5 }

// DeckRemaining reports how many cards are left undealt.
func (e *Engine) DeckRemaining() int { return e.deck.Remaining() }
