package main

import (
	"fmt"

	"github.com/lox/axiomind/internal/cards"
)

// rngSamples is the fixed sample count rng.rs printed.
const rngSamples = 5

// RngCmd samples rngSamples uint64s from the seeded RNG for
// inspection, grounded on original_source/rust/cli/src/commands/rng.rs.
type RngCmd struct {
	Seed uint64 `default:"0" help:"RNG seed"`
}

func (c *RngCmd) Run() error {
	rng := cards.NewChaCha8(c.Seed)
	samples := make([]uint64, rngSamples)
	for i := range samples {
		samples[i] = rng.Uint64()
	}
	fmt.Printf("RNG sample: %v\n", samples)
	return nil
}
