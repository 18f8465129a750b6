package main

import (
	"fmt"
	"os"

	"github.com/lox/axiomind/internal/handlog"
)

// VerifyCmd checks every record in a hand log against the writer/
// reader contract's structural invariants (hand id format, board
// length, card distinctness, street-monotonic actions).
type VerifyCmd struct {
	Input string `arg:"" help:"Hand log to verify (JSONL)"`
}

func (c *VerifyCmd) Run() error {
	f, err := os.Open(c.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := handlog.ReadAll(f)
	if err != nil {
		return err
	}

	failures := 0
	for _, rec := range records {
		if err := handlog.Verify(rec); err != nil {
			fmt.Printf("fail: %v\n", err)
			failures++
			continue
		}
		fmt.Printf("ok: %s\n", rec.HandID)
	}

	if failures > 0 {
		return fmt.Errorf("verify: %d of %d hands failed", failures, len(records))
	}
	fmt.Printf("Verified: %d hands\n", len(records))
	return nil
}
