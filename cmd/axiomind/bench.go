package main

import (
	"fmt"
	"time"

	"github.com/lox/axiomind/internal/cards"
	"github.com/lox/axiomind/internal/evalhand"
)

// benchIterations is the fixed evaluation count bench.rs used.
const benchIterations = 200

// BenchCmd times benchIterations seven-card evaluations dealt from a
// seed-1 shuffled deck, grounded on
// original_source/rust/cli/src/commands/bench.rs.
type BenchCmd struct{}

func (c *BenchCmd) Run() error {
	deck := cards.NewDeck(1)
	deck.Shuffle()

	start := time.Now()
	for i := 0; i < benchIterations; i++ {
		if deck.Remaining() < 7 {
			deck.Reset()
		}
		hand := make([]cards.Card, 0, 7)
		for j := 0; j < 7; j++ {
			card, err := deck.Deal()
			if err != nil {
				return err
			}
			hand = append(hand, card)
		}
		evalhand.Evaluate(hand)
	}
	elapsed := time.Since(start)

	fmt.Printf("Benchmark: %d iters in %s\n", benchIterations, elapsed)
	return nil
}
