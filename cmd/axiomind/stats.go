package main

import (
	"fmt"

	"github.com/lox/axiomind/internal/httpapi"
)

// StatsCmd prints aggregate statistics over a hand log, reusing the
// same aggregation the HTTP API's /stats endpoint serves.
type StatsCmd struct {
	Input string `arg:"" help:"Hand log to summarize (JSONL)"`
}

func (c *StatsCmd) Run() error {
	stats, err := httpapi.NewHistory(c.Input).Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Hands: %d\n", stats.Count)
	for result, count := range stats.HandsPerResult {
		fmt.Printf("  %s: %d\n", result, count)
	}
	return nil
}
