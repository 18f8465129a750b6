package main

import (
	"fmt"

	"github.com/lox/axiomind/internal/sqlexport"
)

// ExportCmd writes a hand log's records into a SQLite flat table, per
// SPEC_FULL.md §4.14/§6.4.
type ExportCmd struct {
	Input  string `arg:"" help:"Input hand log (JSONL)"`
	Output string `arg:"" help:"Output SQLite database path"`
}

func (c *ExportCmd) Run() error {
	if err := sqlexport.Export(c.Input, c.Output); err != nil {
		return err
	}
	fmt.Printf("Exported %s to %s\n", c.Input, c.Output)
	return nil
}
