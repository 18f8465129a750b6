package shared

import "errors"

// Exit codes shared by every subcommand, per SPEC_FULL.md §6.3.
const (
	ExitOK          = 0
	ExitError       = 2
	ExitInterrupted = 130
)

// ErrInterrupted is returned (wrapped with context) by a subcommand
// that stopped early because of a signal, so main can map it to
// ExitInterrupted instead of the general-error exit code.
var ErrInterrupted = errors.New("interrupted")
