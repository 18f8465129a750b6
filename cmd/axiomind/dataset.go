package main

import (
	"fmt"

	"github.com/lox/axiomind/internal/dataset"
)

// DatasetCmd splits a hand log into deterministic train/val/test JSONL
// files, per SPEC_FULL.md §8 property 7.
type DatasetCmd struct {
	Input  string  `required:"" help:"Input hand log (JSONL)"`
	Outdir string  `required:"" help:"Directory to write train.jsonl/val.jsonl/test.jsonl to"`
	Train  float64 `default:"70" help:"Train split fraction or percentage"`
	Val    float64 `default:"20" help:"Validation split fraction or percentage"`
	Test   float64 `default:"10" help:"Test split fraction or percentage"`
	Seed   uint64  `default:"0" help:"RNG seed for the split permutation"`
}

func (c *DatasetCmd) Run() error {
	if err := dataset.Split(c.Input, c.Outdir, c.Train, c.Val, c.Test, c.Seed); err != nil {
		return err
	}
	fmt.Printf("Split %s into %s (train=%.2f val=%.2f test=%.2f seed=%d)\n",
		c.Input, c.Outdir, c.Train, c.Val, c.Test, c.Seed)
	return nil
}
