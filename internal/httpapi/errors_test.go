package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lox/axiomind/internal/rules"
	"github.com/lox/axiomind/internal/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMapsSessionNotFoundTo404(t *testing.T) {
	status, resp, _ := classify(session.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", resp.Error)
}

func TestClassifyMapsStateErrorsTo409(t *testing.T) {
	for _, err := range []error{session.ErrNotPlayersTurn, session.ErrInvalidState, session.ErrGameEnded} {
		status, resp, _ := classify(err)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "state_conflict", resp.Error)
	}
}

func TestClassifyMapsInvalidBetAmountTo400WithDetails(t *testing.T) {
	err := &rules.InvalidBetAmountError{Amount: 10, Minimum: 100}
	status, resp, _ := classify(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_bet_amount", resp.Error)
	require.NotNil(t, resp.Details)
}

func TestClassifyMapsUnknownErrorTo500(t *testing.T) {
	status, resp, sev := classify(assertNewError("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal", resp.Error)
	assert.Equal(t, sevCritical, sev)
}

func TestWriteErrorWritesJSONEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, zerolog.Nop(), session.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"not_found"`)
}

func assertNewError(msg string) error {
	return &stubError{msg}
}

type stubError struct{ msg string }

func (e *stubError) Error() string { return e.msg }
