package main

import (
	"encoding/json"
	"fmt"

	"github.com/lox/axiomind/internal/config"
)

// CfgCmd resolves Settings from defaults, the CONFIG-named file, and
// environment overrides, and prints each field alongside which layer
// won, grounded on original_source/rust/cli/src/commands/cfg.rs.
type CfgCmd struct{}

type cfgField struct {
	Value  any                `json:"value"`
	Source config.ValueSource `json:"source"`
}

type cfgReport struct {
	StartingStack cfgField `json:"starting_stack"`
	Level         cfgField `json:"level"`
	Seed          cfgField `json:"seed"`
	Adaptive      cfgField `json:"adaptive"`
	AIVersion     cfgField `json:"ai_version"`
}

func (c *CfgCmd) Run() error {
	resolved, err := config.Load()
	if err != nil {
		return err
	}

	report := cfgReport{
		StartingStack: cfgField{Value: resolved.Settings.StartingStack, Source: resolved.Sources.StartingStack},
		Level:         cfgField{Value: resolved.Settings.Level, Source: resolved.Sources.Level},
		Seed:          cfgField{Value: resolved.Settings.Seed, Source: resolved.Sources.Seed},
		Adaptive:      cfgField{Value: resolved.Settings.Adaptive, Source: resolved.Sources.Adaptive},
		AIVersion:     cfgField{Value: resolved.Settings.AIVersion, Source: resolved.Sources.AIVersion},
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
