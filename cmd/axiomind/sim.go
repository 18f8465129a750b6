package main

import (
	"fmt"

	"github.com/lox/axiomind/cmd/axiomind/shared"
	"github.com/lox/axiomind/internal/simulate"
)

// SimCmd runs headless bot-vs-bot hands and appends them to a hand log,
// per SPEC_FULL.md §8 scenario 6.
type SimCmd struct {
	Hands  uint64 `required:"" help:"Number of hands to simulate"`
	Seed   uint64 `default:"0" help:"Seed for the simulation's hand stream"`
	Level  uint8  `default:"1" help:"Blind level (small=level*50, big=level*100)"`
	Output string `required:"" help:"Hand log to write to (JSONL)"`
	Resume bool   `default:"false" help:"Resume from the hands already in Output"`
}

func (c *SimCmd) Run() error {
	logger := shared.SetupLogger(false)
	ctx := shared.SetupSignalHandlerWithLogger(logger)

	result, err := simulate.Run(ctx, logger, simulate.Options{
		Hands:  c.Hands,
		Seed:   c.Seed,
		Level:  c.Level,
		Output: c.Output,
		Resume: c.Resume,
	})
	if err != nil {
		return err
	}

	if c.Resume && result.ResumedFrom > 0 {
		fmt.Printf("Resumed from %d\n", result.ResumedFrom)
	}

	if result.Interrupted {
		fmt.Printf("Interrupted: saved %d/%d\n", result.Saved, c.Hands)
		return shared.ErrInterrupted
	}

	fmt.Printf("Simulated: %d hands\n", result.Simulated)
	return nil
}
