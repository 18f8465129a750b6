package main

import (
	"fmt"

	"github.com/lox/axiomind/internal/engine"
)

// DealCmd deals one hand and prints hole cards and board as three
// plain-text lines, grounded on original_source/rust/cli/src/commands/deal.rs.
// The canonical tagged JSON card form is reserved for the hand log;
// this display format is purely for terminal inspection.
type DealCmd struct {
	Seed  *uint64 `help:"RNG seed (defaults to the engine's built-in constant)"`
	Level uint8   `default:"1" help:"Blind level"`
}

func (c *DealCmd) Run() error {
	eng := engine.New(c.Seed, c.Level)
	eng.Shuffle()
	if err := eng.DealHand(); err != nil {
		return err
	}

	players := eng.Players()
	p1 := players[0].HoleCards()
	p2 := players[1].HoleCards()

	fmt.Printf("Hole P1: %s %s\n", p1[0], p1[1])
	fmt.Printf("Hole P2: %s %s\n", p2[0], p2[1])

	board := eng.Board()
	fmt.Printf("Board: %s %s %s %s %s\n", board[0], board[1], board[2], board[3], board[4])
	return nil
}
