package main

import (
	"fmt"

	"github.com/lox/axiomind/internal/cards"
	"github.com/lox/axiomind/internal/evalhand"
)

// EvalCmd classifies a 7-card hand given as space-separated shorthand
// notation ("As Kd Qh Jc Ts 2c 2d").
type EvalCmd struct {
	Cards string `arg:"" help:"Seven cards, e.g. \"As Kd Qh Jc Ts 2c 2d\""`
}

func (c *EvalCmd) Run() error {
	hand, err := cards.ParseCards(c.Cards)
	if err != nil {
		return err
	}
	if len(hand) != 7 {
		return fmt.Errorf("eval: expected 7 cards, got %d", len(hand))
	}

	strength := evalhand.Evaluate(hand)
	fmt.Printf("%s %v\n", strength.Category, strength.Kickers)
	return nil
}
