package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/lox/axiomind/internal/eventbus"
	"github.com/lox/axiomind/internal/session"
	"github.com/rs/zerolog"
)

// sseKeepAlive is how often the SSE handler sends a keep-alive comment
// to defeat proxy idle timeouts, per SPEC_FULL.md §6.2/§5.
const sseKeepAlive = 15 * time.Second

// createSessionRequest is the decoded body of POST /api/sessions.
type createSessionRequest struct {
	Seed         *uint64               `json:"seed,omitempty"`
	Level        *uint8                `json:"level,omitempty"`
	OpponentType *session.OpponentType `json:"opponent_type,omitempty"`
}

func (r createSessionRequest) toConfig() session.GameConfig {
	cfg := session.DefaultGameConfig()
	if r.Seed != nil {
		cfg.Seed = r.Seed
	}
	if r.Level != nil {
		cfg.Level = *r.Level
	}
	if r.OpponentType != nil {
		cfg.OpponentType = *r.OpponentType
	}
	return cfg
}

type sessionResponse struct {
	SessionID string                     `json:"session_id"`
	Config    session.GameConfig         `json:"config"`
	State     session.GameStateResponse `json:"state"`
}

// handleCreateSession handles POST /api/sessions.
func (h *Handlers) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, h.logger, fmt.Errorf("%w: malformed request body", errBadRequest))
			return
		}
	}

	config := req.toConfig()
	id := h.sessions.CreateSession(config)
	state, err := h.sessions.StartHand(id)
	if err != nil {
		_ = h.sessions.DeleteSession(id)
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: id, Config: config, State: state})
}

// handleGetSession handles GET /api/sessions/{id}.
func (h *Handlers) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	config, err := h.sessions.Config(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	state, err := h.sessions.State(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: id, Config: config, State: state})
}

// handleGetSessionState handles GET /api/sessions/{id}/state.
func (h *Handlers) handleGetSessionState(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	state, err := h.sessions.State(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// handleSubmitAction handles POST /api/sessions/{id}/actions. A
// session sitting in HandComplete implicitly deals the next hand
// first - the Go rendering of the client looping "Start Game" once
// per hand without a dedicated next-hand endpoint.
func (h *Handlers) handleSubmitAction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	state, err := h.sessions.State(id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if state.State == session.HandComplete {
		if _, err := h.sessions.StartHand(id); err != nil {
			writeError(w, h.logger, err)
			return
		}
	}

	var body actionRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: malformed request body", errBadRequest))
		return
	}
	intent, amount, err := parseAction(body.Action)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	playerID, err := currentActorID(h.sessions, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := h.sessions.Act(id, playerID, intent, amount)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusAccepted, result)
}

func currentActorID(m *session.Manager, id string) (int, error) {
	state, err := m.State(id)
	if err != nil {
		return 0, err
	}
	return state.CurrentPlayer, nil
}

// handleDeleteSession handles DELETE /api/sessions/{id}.
func (h *Handlers) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.sessions.DeleteSession(id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStreamEvents handles GET /api/sessions/{id}/events: an SSE
// stream of that session's GameEvents, named "game_event", with a
// keep-alive comment every 15 seconds.
func (h *Handlers) handleStreamEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.sessions.State(id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, h.logger, fmt.Errorf("httpapi: streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.bus.Subscribe(id)
	defer sub.Close()

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ":keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				payload = []byte(fmt.Sprintf(`{"type":"error","message":%q}`, err.Error()))
			}
			if _, err := fmt.Fprintf(w, "event: game_event\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// handleHealth handles GET /health.
func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Hand history (§4.13) ---

func (h *Handlers) handleGetRecentHands(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, h.logger, fmt.Errorf("%w: limit must be a non-negative integer", errBadRequest))
			return
		}
		limit = n
	}
	hands, err := h.history.Recent(limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hands": hands, "total": len(hands)})
}

func (h *Handlers) handleGetHandByID(w http.ResponseWriter, r *http.Request) {
	hand, found, err := h.history.ByID(r.PathValue("hand_id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if !found {
		writeError(w, h.logger, session.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, hand)
}

func (h *Handlers) handleFilterHands(w http.ResponseWriter, r *http.Request) {
	var filter HandFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: malformed filter body", errBadRequest))
		return
	}
	hands, err := h.history.Filter(filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hands": hands, "total": len(hands)})
}

func (h *Handlers) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.history.Stats()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

// --- Settings ---

func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.settings.Get())
}

func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var next AppSettings
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: malformed settings body", errBadRequest))
		return
	}
	updated, err := h.settings.Update(next)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field string          `json:"field"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: malformed field-update body", errBadRequest))
		return
	}
	updated, err := h.settings.UpdateField(req.Field, req.Value)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.settings.Reset())
}

// Handlers bundles every dependency the HTTP adapter needs: the
// session table, its event bus, the hand-history reader, and the
// settings store. It holds no state of its own.
type Handlers struct {
	logger   zerolog.Logger
	sessions *session.Manager
	bus      *eventbus.Bus
	history  *History
	settings *SettingsStore
}

// NewHandlers builds a Handlers bundle.
func NewHandlers(logger zerolog.Logger, sessions *session.Manager, bus *eventbus.Bus, history *History, settings *SettingsStore) *Handlers {
	return &Handlers{logger: logger, sessions: sessions, bus: bus, history: history, settings: settings}
}
