package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lox/axiomind/cmd/axiomind/shared"
)

// version is set by ldflags during build.
var version = "dev"

// CLI is the top-level command surface: play, replay, sim, eval,
// stats, verify, deal, bench, rng, cfg, doctor, export, dataset.
type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`

	Play    PlayCmd    `cmd:"" help:"Run the REST/SSE session service"`
	Replay  ReplayCmd  `cmd:"" help:"Replay hands from a hand log"`
	Sim     SimCmd     `cmd:"" help:"Simulate bot-vs-bot hands to a hand log"`
	Eval    EvalCmd    `cmd:"" help:"Evaluate a 7-card hand"`
	Stats   StatsCmd   `cmd:"" help:"Summarize a hand log"`
	Verify  VerifyCmd  `cmd:"" help:"Verify a hand log's structural invariants"`
	Deal    DealCmd    `cmd:"" help:"Deal one hand and print hole cards and board"`
	Bench   BenchCmd   `cmd:"" help:"Benchmark the hand evaluator"`
	Rng     RngCmd     `cmd:"" help:"Sample the seeded RNG"`
	Cfg     CfgCmd     `cmd:"" help:"Print resolved configuration with sources"`
	Doctor  DoctorCmd  `cmd:"" help:"Check the environment is ready to run"`
	Export  ExportCmd  `cmd:"" help:"Export a hand log to SQLite"`
	Dataset DatasetCmd `cmd:"" help:"Split a hand log into train/val/test sets"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("axiomind"),
		kong.Description("Deterministic heads-up Texas Hold'em engine, session service, and CLI"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)

	err := ctx.Run()
	if err == nil {
		os.Exit(shared.ExitOK)
	}

	fmt.Fprintln(os.Stderr, err)
	if errors.Is(err, shared.ErrInterrupted) {
		os.Exit(shared.ExitInterrupted)
	}
	os.Exit(shared.ExitError)
}
