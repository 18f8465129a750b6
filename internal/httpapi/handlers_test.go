package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lox/axiomind/internal/eventbus"
	"github.com/lox/axiomind/internal/rules"
	"github.com/lox/axiomind/internal/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *session.Manager) {
	t.Helper()
	logger := zerolog.Nop()
	bus := eventbus.New(logger)
	manager := session.NewManager(logger, bus)
	history := NewHistory(filepath.Join(t.TempDir(), "hands.jsonl"))
	settings := NewSettingsStore()
	handlers := NewHandlers(logger, manager, bus, history, settings)
	return NewServer(logger, handlers), manager
}

func TestHealthEndpointReturnsOK(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestCreateSessionDealsFirstHand(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{"seed":42,"level":1}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, session.HandInProgress, resp.State.State)
	assert.Len(t, resp.State.Board, 5)
}

func TestGetSessionStateReturns404ForUnknownID(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/does-not-exist/state", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitActionOutOfTurnReturns409(t *testing.T) {
	srv, manager := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{"seed":42,"level":1}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// handleSubmitAction always resolves to the session's current
	// actor, so the HTTP layer itself never sends a stale seat; the
	// 409 path is exercised directly against the manager instead,
	// which is what the handler delegates to.
	_, err := manager.Act(created.SessionID, 1-created.State.CurrentPlayer, rules.IntentCheck, 0)
	assert.ErrorIs(t, err, session.ErrNotPlayersTurn)
}

func TestDeleteSessionThenGetReturns404(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	delReq := httptest.NewRequest(http.MethodDelete, "/api/sessions/"+created.SessionID, nil)
	delRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(delRec, delReq)
	assert.Equal(t, http.StatusNoContent, delRec.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/api/sessions/"+created.SessionID, nil)
	getRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(getRec, getReq)
	assert.Equal(t, http.StatusNotFound, getRec.Code)
}

func TestSettingsEndpointsRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	putReq := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(
		`{"default_level":3,"default_ai_strategy":"aggressive","session_timeout_minutes":45}`))
	putRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(putRec, putReq)
	require.Equal(t, http.StatusOK, putRec.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	getRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)

	var settings AppSettings
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &settings))
	assert.Equal(t, uint8(3), settings.DefaultLevel)

	resetReq := httptest.NewRequest(http.MethodPost, "/api/settings/reset", nil)
	resetRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(resetRec, resetReq)
	require.Equal(t, http.StatusOK, resetRec.Code)
}

func TestHistoryEndpointsServeEmptyLog(t *testing.T) {
	logger := zerolog.Nop()
	bus := eventbus.New(logger)
	logPath := filepath.Join(t.TempDir(), "hands.jsonl")
	manager := session.NewManager(logger, bus)
	settings := NewSettingsStore()
	history := NewHistory(logPath)
	handlers := NewHandlers(logger, manager, bus, history, settings)
	srv := NewServer(logger, handlers)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":0`)

	statsReq := httptest.NewRequest(http.MethodGet, "/api/history/stats", nil)
	statsRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(statsRec, statsReq)
	assert.Equal(t, http.StatusOK, statsRec.Code)
}
