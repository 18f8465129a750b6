package httpapi

import (
	"encoding/json"
	"fmt"

	"github.com/lox/axiomind/internal/rules"
)

// actionRequestBody is the decoded body of POST /api/sessions/{id}/actions:
// {"action": "Fold" | "Check" | "Call" | "AllIn" | {"Bet": n} | {"Raise": n}}.
type actionRequestBody struct {
	Action json.RawMessage `json:"action"`
}

// parseAction decodes the §6.1 action encoding into a rules.Intent and
// amount. Bare strings carry no amount; the two tagged forms carry an
// amount under their own key.
func parseAction(raw json.RawMessage) (rules.Intent, uint32, error) {
	var tag string
	if err := json.Unmarshal(raw, &tag); err == nil {
		switch tag {
		case "Fold":
			return rules.IntentFold, 0, nil
		case "Check":
			return rules.IntentCheck, 0, nil
		case "Call":
			return rules.IntentCall, 0, nil
		case "AllIn":
			return rules.IntentAllIn, 0, nil
		default:
			return 0, 0, fmt.Errorf("%w: unknown action %q", errBadRequest, tag)
		}
	}

	var tagged map[string]uint32
	if err := json.Unmarshal(raw, &tagged); err != nil || len(tagged) != 1 {
		return 0, 0, fmt.Errorf("%w: action must be a string or single-key object", errBadRequest)
	}
	for key, amount := range tagged {
		switch key {
		case "Bet":
			return rules.IntentBet, amount, nil
		case "Raise":
			return rules.IntentRaise, amount, nil
		default:
			return 0, 0, fmt.Errorf("%w: unknown tagged action %q", errBadRequest, key)
		}
	}
	return 0, 0, fmt.Errorf("%w: empty action", errBadRequest)
}
