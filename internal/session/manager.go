package session

import (
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/axiomind/internal/engine"
	"github.com/lox/axiomind/internal/eventbus"
	"github.com/lox/axiomind/internal/handlog"
	"github.com/lox/axiomind/internal/rules"
	"github.com/rs/zerolog"
)

// DefaultInactivityTimeout is how long a session may sit idle before
// the Manager's reaper drops it.
const DefaultInactivityTimeout = 30 * time.Minute

// Manager owns every active session: it validates the state machine,
// translates intents into engine actions and published events, and
// reaps sessions that have gone idle.
type Manager struct {
	logger  zerolog.Logger
	bus     *eventbus.Bus
	writer  *handlog.Writer
	clock   quartz.Clock
	timeout time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithClock overrides the Manager's time source, for deterministic
// reaper tests.
func WithClock(clock quartz.Clock) Option {
	return func(m *Manager) { m.clock = clock }
}

// WithTimeout overrides DefaultInactivityTimeout.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// WithWriter attaches a hand-log writer that every completed hand is
// appended to. Sessions keep no list of past hand records; only the
// most recent hand's record can be rebuilt, via Session.HandRecord.
func WithWriter(w *handlog.Writer) Option {
	return func(m *Manager) { m.writer = w }
}

// NewManager constructs an empty Manager backed by bus.
func NewManager(logger zerolog.Logger, bus *eventbus.Bus, opts ...Option) *Manager {
	m := &Manager{
		logger:   logger.With().Str("component", "session_manager").Logger(),
		bus:      bus,
		clock:    quartz.NewReal(),
		timeout:  DefaultInactivityTimeout,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateSession allocates a new session in Lobby state with a unique
// id and the given configuration.
func (m *Manager) CreateSession(config GameConfig) string {
	id := uuid.NewString()
	eng := engine.New(config.Seed, config.Level)
	s := newSession(id, config, eng)
	s.touch(m.clock.Now())

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Info().Str("session_id", id).Msg("session created")
	return id
}

func (m *Manager) lookup(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// State returns the session's client-facing snapshot.
func (m *Manager) State(id string) (GameStateResponse, error) {
	s, err := m.lookup(id)
	if err != nil {
		return GameStateResponse{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Config returns the session's resolved configuration.
func (m *Manager) Config(id string) (GameConfig, error) {
	s, err := m.lookup(id)
	if err != nil {
		return GameConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config, nil
}

// StartHand deals a new hand for the session, emitting the resulting
// events on the bus.
func (m *Manager) StartHand(id string) (GameStateResponse, error) {
	s, err := m.lookup(id)
	if err != nil {
		return GameStateResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(m.clock.Now())

	handID := ""
	if m.writer != nil {
		handID = m.writer.NextID()
	} else {
		handID = FormatFallbackID(m.clock.Now())
	}

	resp, events, err := s.StartHand(handID)
	if err != nil {
		return GameStateResponse{}, err
	}
	for _, ev := range events {
		m.bus.Broadcast(id, ev)
	}
	return resp, nil
}

// Act applies one player's action to the session, persists a
// completed hand if the action ended one, and broadcasts every
// resulting event.
func (m *Manager) Act(id string, playerID int, intent rules.Intent, amount uint32) (GameStateResponse, error) {
	s, err := m.lookup(id)
	if err != nil {
		return GameStateResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch(m.clock.Now())

	resp, events, err := s.Act(playerID, intent, amount)
	if err != nil {
		return GameStateResponse{}, err
	}

	handCompleted := resp.State == HandComplete || resp.State == GameEnded
	for _, ev := range events {
		m.bus.Broadcast(id, ev)
	}
	if handCompleted && m.writer != nil {
		if err := m.writer.Write(s.HandRecord()); err != nil {
			m.logger.Error().Err(err).Str("session_id", id).Msg("failed to persist hand record")
		}
	}
	return resp, nil
}

// DeleteSession removes a session and drops its subscribers.
func (m *Manager) DeleteSession(id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	m.bus.DropSession(id)
	return nil
}

// ReapExpired drops every session whose last activity predates
// timeout, returning the ids it removed.
func (m *Manager) ReapExpired() []string {
	cutoff := m.clock.Now().Add(-m.timeout)

	m.mu.Lock()
	var expired []string
	for id, s := range m.sessions {
		s.mu.Lock()
		stale := s.lastActivity.Before(cutoff)
		s.mu.Unlock()
		if stale {
			expired = append(expired, id)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		m.bus.DropSession(id)
		m.logger.Info().Str("session_id", id).Msg("session reaped for inactivity")
	}
	return expired
}

// Count reports how many sessions are currently tracked.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// FormatFallbackID builds a hand id from a timestamp when no
// persistent writer is configured to allocate a monotonic one.
func FormatFallbackID(now time.Time) string {
	return handlog.FormatHandID(now.UTC().Format("20060102"), uint32(now.UnixNano()%1_000_000))
}
