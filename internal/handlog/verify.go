package handlog

import (
	"fmt"
	"regexp"

	"github.com/lox/axiomind/internal/cards"
)

var handIDPattern = regexp.MustCompile(`^[0-9]{8}-[0-9]{6}$`)

// VerifyError describes one violation found by Verify, naming the
// offending hand id.
type VerifyError struct {
	HandID string
	Reason string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("handlog: %s: %s", e.HandID, e.Reason)
}

// Verify checks one HandRecord against the writer/reader contract's
// structural invariants: hand id format, board length, card
// distinctness, and street-monotonic actions.
func Verify(record HandRecord) error {
	if !handIDPattern.MatchString(record.HandID) {
		return &VerifyError{HandID: record.HandID, Reason: "hand_id does not match YYYYMMDD-NNNNNN"}
	}

	switch len(record.Board) {
	case 0, 3, 4, 5:
	default:
		return &VerifyError{HandID: record.HandID, Reason: fmt.Sprintf("board has %d cards, want 0, 3, 4, or 5", len(record.Board))}
	}

	seen := make(map[cards.Card]bool, len(record.Board))
	for _, c := range record.Board {
		if seen[c] {
			return &VerifyError{HandID: record.HandID, Reason: fmt.Sprintf("duplicate card %s on board", c)}
		}
		seen[c] = true
	}

	last := Preflop
	for _, a := range record.Actions {
		if a.Street < last {
			return &VerifyError{HandID: record.HandID, Reason: "actions are not street-monotonic"}
		}
		last = a.Street
	}

	return nil
}

// VerifyAll runs Verify over every record, returning the first error.
func VerifyAll(records []HandRecord) error {
	for _, r := range records {
		if err := Verify(r); err != nil {
			return err
		}
	}
	return nil
}
