// Package engine orchestrates a single heads-up poker hand: the deck,
// the two players, the community board, and the deal procedure that
// strings them together.
package engine

import (
	"errors"

	"github.com/lox/axiomind/internal/cards"
)

// Position identifies a player's seat in heads-up play. Button posts
// the small blind and acts first preflop; BigBlind posts the big blind
// and acts first on every later street.
type Position int

const (
	Button Position = iota
	BigBlind
)

func (p Position) String() string {
	switch p {
	case Button:
		return "Button"
	case BigBlind:
		return "BigBlind"
	default:
		return "Unknown"
	}
}

// StartingStack is the default chip stack dealt to each player at the
// start of a session.
const StartingStack uint32 = 20_000

// ErrHoleCardsFull is returned by GiveCard once a player already holds
// two hole cards.
var ErrHoleCardsFull = errors.New("engine: hole cards already full")

// ErrInsufficientChips is returned by Bet when the amount exceeds the
// player's stack.
var ErrInsufficientChips = errors.New("engine: insufficient chips")

// Player is one of the two heads-up seats: an id, a chip stack, a
// table position, and up to two hole cards.
type Player struct {
	id       int
	stack    uint32
	position Position
	hole     [2]*cards.Card
}

// NewPlayer creates a player with an empty hole-card slate.
func NewPlayer(id int, stack uint32, position Position) *Player {
	return &Player{id: id, stack: stack, position: position}
}

// ID returns the player's seat identifier (0 or 1).
func (p *Player) ID() int { return p.id }

// Stack returns the player's current chip count.
func (p *Player) Stack() uint32 { return p.stack }

// Position returns the player's current table position.
func (p *Player) Position() Position { return p.position }

// SetPosition reassigns the player's table position, used when the
// button rotates between hands.
func (p *Player) SetPosition(pos Position) { p.position = pos }

// HoleCards returns the player's hole cards; an unset slot is nil.
func (p *Player) HoleCards() [2]*cards.Card { return p.hole }

// GiveCard deals one card into the first empty hole-card slot.
func (p *Player) GiveCard(c cards.Card) error {
	if p.hole[0] == nil {
		p.hole[0] = &c
		return nil
	}
	if p.hole[1] == nil {
		p.hole[1] = &c
		return nil
	}
	return ErrHoleCardsFull
}

// ClearCards empties both hole-card slots, ready for a new hand.
func (p *Player) ClearCards() {
	p.hole[0] = nil
	p.hole[1] = nil
}

// AddChips credits the player's stack, saturating at the uint32 max
// rather than overflowing.
func (p *Player) AddChips(amount uint32) {
	if amount > ^uint32(0)-p.stack {
		p.stack = ^uint32(0)
		return
	}
	p.stack += amount
}

// Bet debits amount from the player's stack, or fails if the stack
// can't cover it. A zero-amount bet is always a no-op success.
func (p *Player) Bet(amount uint32) error {
	if amount == 0 {
		return nil
	}
	if amount > p.stack {
		return ErrInsufficientChips
	}
	p.stack -= amount
	return nil
}
