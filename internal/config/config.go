// Package config resolves Settings from defaults, an optional TOML
// file, and environment overrides, tracking which source won for each
// field.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Settings is the fully-resolved configuration for a CLI invocation.
type Settings struct {
	StartingStack uint32  `toml:"starting_stack"`
	Level         uint8   `toml:"level"`
	Seed          *uint64 `toml:"seed"`
	Adaptive      bool    `toml:"adaptive"`
	AIVersion     string  `toml:"ai_version"`
}

// DefaultSettings mirrors the CLI's built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		StartingStack: 20_000,
		Level:         1,
		Seed:          nil,
		Adaptive:      true,
		AIVersion:     "latest",
	}
}

// ValueSource names which layer supplied a field's final value.
type ValueSource string

const (
	SourceDefault ValueSource = "default"
	SourceFile    ValueSource = "file"
	SourceEnv     ValueSource = "env"
)

// Sources records, per field, which layer won.
type Sources struct {
	StartingStack ValueSource
	Level         ValueSource
	Seed          ValueSource
	Adaptive      ValueSource
	AIVersion     ValueSource
}

func defaultSources() Sources {
	return Sources{SourceDefault, SourceDefault, SourceDefault, SourceDefault, SourceDefault}
}

// Resolved pairs the final Settings with the Sources that produced
// them, for the `cfg` command's provenance display.
type Resolved struct {
	Settings Settings
	Sources  Sources
}

// Error wraps a configuration-loading failure: an I/O error, a TOML
// parse error, or a validation failure, matching the three failure
// modes the CLI distinguishes.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

type fileConfig struct {
	StartingStack *uint32 `toml:"starting_stack"`
	Level         *uint8  `toml:"level"`
	Seed          *uint64 `toml:"seed"`
	Adaptive      *bool   `toml:"adaptive"`
	AIVersion     *string `toml:"ai_version"`
}

// Load resolves Settings from defaults, then the file named by
// CONFIG (if set), then AXIOMIND_SEED/AXIOMIND_LEVEL/
// AXIOMIND_ADAPTIVE/AXIOMIND_AI_VERSION environment overrides, and
// finally validates the result.
func Load() (Resolved, error) {
	cfg := DefaultSettings()
	sources := defaultSources()

	if path := os.Getenv("CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Resolved{}, &Error{Reason: "reading config file", Err: err}
		}
		var fc fileConfig
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return Resolved{}, &Error{Reason: "parsing config file", Err: err}
		}
		if fc.StartingStack != nil {
			cfg.StartingStack = *fc.StartingStack
			sources.StartingStack = SourceFile
		}
		if fc.Level != nil {
			cfg.Level = *fc.Level
			sources.Level = SourceFile
		}
		if fc.Seed != nil {
			cfg.Seed = fc.Seed
			sources.Seed = SourceFile
		}
		if fc.Adaptive != nil {
			cfg.Adaptive = *fc.Adaptive
			sources.Adaptive = SourceFile
		}
		if fc.AIVersion != nil {
			cfg.AIVersion = *fc.AIVersion
			sources.AIVersion = SourceFile
		}
	}

	if v := os.Getenv("AXIOMIND_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Resolved{}, &Error{Reason: "invalid AXIOMIND_SEED"}
		}
		cfg.Seed = &seed
		sources.Seed = SourceEnv
	}
	if v := os.Getenv("AXIOMIND_LEVEL"); v != "" {
		level, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return Resolved{}, &Error{Reason: "invalid AXIOMIND_LEVEL"}
		}
		cfg.Level = uint8(level)
		sources.Level = SourceEnv
	}
	if v := os.Getenv("AXIOMIND_ADAPTIVE"); v != "" {
		adaptive, ok := ParseBool(v)
		if !ok {
			return Resolved{}, &Error{Reason: "invalid AXIOMIND_ADAPTIVE"}
		}
		cfg.Adaptive = adaptive
		sources.Adaptive = SourceEnv
	}
	if v := os.Getenv("AXIOMIND_AI_VERSION"); v != "" {
		cfg.AIVersion = v
		sources.AIVersion = SourceEnv
	}

	if err := validate(cfg); err != nil {
		return Resolved{}, err
	}
	return Resolved{Settings: cfg, Sources: sources}, nil
}

func validate(cfg Settings) error {
	if cfg.Level == 0 {
		return &Error{Reason: "invalid configuration: level must be >=1"}
	}
	if cfg.StartingStack == 0 {
		return &Error{Reason: "invalid configuration: starting_stack must be >0"}
	}
	return nil
}

// ParseBool accepts the same case-insensitive truthy/falsy tokens the
// CLI's environment overrides do: "1"/"true"/"on"/"yes" and
// "0"/"false"/"off"/"no".
func ParseBool(s string) (bool, bool) {
	switch toLower(s) {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no":
		return false, true
	default:
		return false, false
	}
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
