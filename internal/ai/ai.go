// Package ai defines the pluggable opponent-strategy interface and a
// baseline placeholder implementation.
package ai

import (
	"github.com/lox/axiomind/internal/engine"
	"github.com/lox/axiomind/internal/rules"
)

// Opponent is a pluggable decision-making strategy for the non-human
// seat: given the current engine state, decide the next action.
type Opponent interface {
	GetAction(eng *engine.Engine, playerID int) (rules.Intent, uint32)
	Name() string
}

// baselineAI is the conservative placeholder strategy: it always
// proposes Check, never raises or folds voluntarily.
type baselineAI struct {
	name string
}

// NewBaseline builds the default baseline strategy.
func NewBaseline() Opponent {
	return &baselineAI{name: "baseline"}
}

// NewBaselineNamed builds a baseline strategy reporting a custom name,
// for unknown strategy names that should still round-trip through the
// API instead of erroring.
func NewBaselineNamed(name string) Opponent {
	return &baselineAI{name: name}
}

// GetAction always returns Check - the deliberately inert placeholder
// the session layer falls back to until a real strategy is wired in.
func (a *baselineAI) GetAction(_ *engine.Engine, _ int) (rules.Intent, uint32) {
	return rules.IntentCheck, 0
}

func (a *baselineAI) Name() string { return a.name }

// CreateAI maps a strategy name to an Opponent. "baseline" and ""
// resolve to the stock baseline; any other name resolves to a
// baseline instance that reports that name, matching the tolerant
// factory behavior of the original implementation.
func CreateAI(name string) Opponent {
	switch name {
	case "baseline", "":
		return NewBaseline()
	default:
		return NewBaselineNamed(name)
	}
}
