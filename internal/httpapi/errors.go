package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lox/axiomind/internal/rules"
	"github.com/lox/axiomind/internal/session"
	"github.com/rs/zerolog"
)

// ErrorResponse is the wire shape of every non-2xx response: a short
// machine-readable code, a human message, and optional structured
// details (e.g. the attempted amount and minimum for a bad bet).
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// severity classifies how loudly an error should be logged, mirroring
// the taxonomy in SPEC_FULL.md §7: validation/state/not-found errors
// are expected traffic and logged at info; I/O and invariant
// violations are operational problems logged at error/critical.
type severity int

const (
	sevInfo severity = iota
	sevError
	sevCritical
)

// classify maps an internal error to the HTTP response it produces:
// status code, error code, message, optional details, and log
// severity. Mapping is done with errors.Is/errors.As against typed
// sentinels, never string matching.
func classify(err error) (status int, resp ErrorResponse, sev severity) {
	var invalidBet *rules.InvalidBetAmountError

	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		return http.StatusNotFound, ErrorResponse{Error: "not_found", Message: err.Error()}, sevInfo

	case errors.Is(err, session.ErrNotPlayersTurn),
		errors.Is(err, session.ErrInvalidState),
		errors.Is(err, session.ErrGameEnded):
		return http.StatusConflict, ErrorResponse{Error: "state_conflict", Message: err.Error()}, sevInfo

	case errors.Is(err, rules.ErrInsufficientChips):
		return http.StatusBadRequest, ErrorResponse{Error: "insufficient_chips", Message: err.Error()}, sevInfo

	case errors.As(err, &invalidBet):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_bet_amount",
			Message: err.Error(),
			Details: map[string]uint32{"amount": invalidBet.Amount, "minimum": invalidBet.Minimum},
		}, sevInfo

	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: err.Error()}, sevInfo

	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal", Message: "internal server error"}, sevCritical
	}
}

// writeError logs err at its classified severity and writes the
// standard error envelope with the matching HTTP status.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	status, resp, sev := classify(err)

	event := logger.Info()
	switch sev {
	case sevError:
		event = logger.Error()
	case sevCritical:
		event = logger.Error().Str("severity", "critical")
	}
	event.Err(err).Int("status", status).Str("code", resp.Error).Msg("request failed")

	writeJSON(w, status, resp)
}

// writeJSON encodes body as the response, setting the content type
// and status first so a marshal failure can't corrupt the status line.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// errBadRequest is the sentinel wrapped by this package's own request
// validation failures (malformed JSON, unknown action tag, ...), kept
// distinct from the domain packages' own typed errors.
var errBadRequest = errors.New("httpapi: bad request")
