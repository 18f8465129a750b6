package main

import (
	"fmt"
	"os"

	"github.com/lox/axiomind/internal/handlog"
)

// ReplayCmd prints each hand in a hand log as a readable line-by-line
// action sequence, in the spirit of the teacher's PHH render command
// but against this module's own JSONL schema.
type ReplayCmd struct {
	Input string `arg:"" help:"Hand log to replay (JSONL)"`
	Limit int    `default:"0" help:"Maximum number of hands to render (0 = all)"`
}

func (c *ReplayCmd) Run() error {
	f, err := os.Open(c.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := handlog.ReadAll(f)
	if err != nil {
		return err
	}

	limit := c.Limit
	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}

	for i := 0; i < limit; i++ {
		rec := records[i]
		fmt.Printf("=== hand %s ===\n", rec.HandID)
		if rec.Seed != nil {
			fmt.Printf("seed: %d\n", *rec.Seed)
		}
		for _, a := range rec.Actions {
			fmt.Printf("  %s p%d %s %d\n", a.Street, a.PlayerID, a.Action, a.Amount)
		}
		if len(rec.Board) > 0 {
			fmt.Printf("board: %v\n", rec.Board)
		}
		fmt.Printf("result: %s\n", rec.Result)
		if rec.Showdown != nil {
			fmt.Printf("winners: %v\n", rec.Showdown.Winners)
		}
		for player, net := range rec.NetResult {
			fmt.Printf("  p%s net: %+d\n", player, net)
		}
	}

	fmt.Printf("Replayed: %d hands\n", limit)
	return nil
}
