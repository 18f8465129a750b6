// Package handlog writes and reads hand records in JSONL form, one
// complete hand per line, for hand-history storage and replay.
package handlog

import (
	"encoding/json"
	"fmt"

	"github.com/lox/axiomind/internal/cards"
)

// Street identifies one of the four betting rounds.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "Preflop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	default:
		return "Unknown"
	}
}

func (s Street) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Street) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	switch tag {
	case "Preflop":
		*s = Preflop
	case "Flop":
		*s = Flop
	case "Turn":
		*s = Turn
	case "River":
		*s = River
	default:
		return fmt.Errorf("handlog: unknown street tag %q", tag)
	}
	return nil
}

// ActionRecord is one player action taken during a hand, tagged with
// the street it happened on. Action is one of "Fold"/"Check"/"Call"/
// "AllIn"/"Bet"/"Raise"; Amount is only meaningful for Bet/Raise and is
// dropped from the wire form for every other action, matching §6.1's
// action encoding and internal/httpapi's parseAction.
type ActionRecord struct {
	PlayerID int
	Street   Street
	Action   string
	Amount   uint32
}

// actionRecordWire is ActionRecord's on-the-wire shape: action encodes
// as the bare tag string for Fold/Check/Call/AllIn, or a single-key
// {"Bet": n} / {"Raise": n} object carrying the amount.
type actionRecordWire struct {
	PlayerID int             `json:"player_id"`
	Street   Street          `json:"street"`
	Action   json.RawMessage `json:"action"`
}

func (a ActionRecord) MarshalJSON() ([]byte, error) {
	var actionJSON []byte
	var err error
	switch a.Action {
	case "Bet", "Raise":
		actionJSON, err = json.Marshal(map[string]uint32{a.Action: a.Amount})
	default:
		actionJSON, err = json.Marshal(a.Action)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(actionRecordWire{PlayerID: a.PlayerID, Street: a.Street, Action: actionJSON})
}

func (a *ActionRecord) UnmarshalJSON(data []byte) error {
	var wire actionRecordWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	a.PlayerID = wire.PlayerID
	a.Street = wire.Street

	var tag string
	if err := json.Unmarshal(wire.Action, &tag); err == nil {
		switch tag {
		case "Fold", "Check", "Call", "AllIn":
			a.Action = tag
			a.Amount = 0
			return nil
		default:
			return fmt.Errorf("handlog: unknown action tag %q", tag)
		}
	}

	var tagged map[string]uint32
	if err := json.Unmarshal(wire.Action, &tagged); err != nil || len(tagged) != 1 {
		return fmt.Errorf("handlog: action must be a string or single-key object")
	}
	for key, amount := range tagged {
		switch key {
		case "Bet", "Raise":
			a.Action = key
			a.Amount = amount
		default:
			return fmt.Errorf("handlog: unknown tagged action %q", key)
		}
	}
	return nil
}

// ShowdownInfo records which players won at showdown.
type ShowdownInfo struct {
	Winners []int  `json:"winners"`
	Notes   string `json:"notes,omitempty"`
}

// HandRecord is the complete record of one hand: its id, the seed used
// to shuffle, every action taken, the final board, and the outcome.
//
// NetResult, when present, maps player id to that hand's signed chip
// change; a batch of records always sums to zero per line (§8
// invariant 5 - chip conservation). It is populated by simulation
// runs and left absent for hands dealt through a live session.
type HandRecord struct {
	HandID    string           `json:"hand_id"`
	Seed      *uint64          `json:"seed,omitempty"`
	Actions   []ActionRecord   `json:"actions"`
	Board     []cards.Card     `json:"board"`
	Result    string           `json:"result,omitempty"`
	Ts        string           `json:"ts,omitempty"`
	Meta      json.RawMessage  `json:"meta,omitempty"`
	Showdown  *ShowdownInfo    `json:"showdown,omitempty"`
	NetResult map[string]int64 `json:"net_result,omitempty"`
}

// FormatHandID renders a hand id as "YYYYMMDD-NNNNNN".
func FormatHandID(yyyymmdd string, seq uint32) string {
	return fmt.Sprintf("%s-%06d", yyyymmdd, seq)
}
