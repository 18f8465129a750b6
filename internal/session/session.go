package session

import (
	"sync"
	"time"

	"github.com/lox/axiomind/internal/cards"
	"github.com/lox/axiomind/internal/engine"
	"github.com/lox/axiomind/internal/evalhand"
	"github.com/lox/axiomind/internal/eventbus"
	"github.com/lox/axiomind/internal/handlog"
	"github.com/lox/axiomind/internal/potmgr"
	"github.com/lox/axiomind/internal/rules"
)

// GameStateResponse is the client-facing snapshot of a session: enough
// to render the table without exposing the opponent's hole cards.
type GameStateResponse struct {
	State          GameState       `json:"state"`
	Street         handlog.Street  `json:"street"`
	Board          []cards.Card    `json:"board"`
	Stacks         [2]uint32       `json:"stacks"`
	Contributions  [2]uint64       `json:"contributions"`
	ToCall         uint32          `json:"to_call"`
	CurrentPlayer  int             `json:"current_player"`
	ButtonIndex    int             `json:"button_index"`
	HandID         string          `json:"hand_id,omitempty"`
	WinnerIDs      []int           `json:"winner_ids,omitempty"`
	PotAwarded     uint32          `json:"pot_awarded,omitempty"`
}

// Session is one heads-up game: an engine/table pair, the current
// betting-round bookkeeping, and the state machine that governs which
// operations are legal.
//
// Every mutating method must be called with mu held; Manager is
// responsible for acquiring it before dispatching to a Session.
type Session struct {
	mu sync.Mutex

	id     string
	config GameConfig
	eng    *engine.Engine
	table  *engine.Table

	state         GameState
	street        handlog.Street
	contributions [2]uint64
	toCall        uint32
	minRaise      uint32
	acted         [2]bool
	currentPlayer int
	actions       []handlog.ActionRecord
	handID        string
	lastHand      *GameStateResponse

	lastActivity time.Time
}

func newSession(id string, config GameConfig, eng *engine.Engine) *Session {
	players := eng.Players()
	table := engine.NewTable([2]*engine.Player{players[0], players[1]}, config.Level)
	return &Session{
		id:     id,
		config: config,
		eng:    eng,
		table:  table,
		state:  Lobby,
	}
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// Config returns the session's resolved configuration.
func (s *Session) Config() GameConfig { return s.config }

// StartHand deals a new hand and opens the preflop betting round. It
// fails with ErrInvalidState unless the session is in Lobby or
// HandComplete, and transitions to GameEnded instead of dealing if
// either stack is already empty.
func (s *Session) StartHand(handID string) (GameStateResponse, []eventbus.GameEvent, error) {
	if s.state != Lobby && s.state != HandComplete {
		return GameStateResponse{}, nil, ErrInvalidState
	}

	players := s.eng.Players()
	for _, p := range players {
		if p.Stack() == 0 {
			s.state = GameEnded
			return s.snapshot(), []eventbus.GameEvent{{
				Type:      eventbus.EventGameEnded,
				SessionID: s.id,
				Reason:    "player stack is zero",
			}}, nil
		}
	}

	s.eng.Shuffle()
	if err := s.eng.DealHand(); err != nil {
		return GameStateResponse{}, nil, err
	}

	s.table.RotateButton()
	s.state = HandInProgress
	s.street = handlog.Preflop
	s.contributions = [2]uint64{}
	s.acted = [2]bool{}
	s.actions = nil
	s.handID = handID
	s.lastHand = nil

	sb, bb := s.config.SmallBlind(), s.config.BigBlind()
	buttonIdx := s.table.ButtonIndex()
	bbIdx := 1 - buttonIdx
	sbPosted := postBlind(players[buttonIdx], sb)
	bbPosted := postBlind(players[bbIdx], bb)
	s.contributions[buttonIdx] = uint64(sbPosted)
	s.contributions[bbIdx] = uint64(bbPosted)
	s.toCall = 0
	if bbPosted > sbPosted {
		s.toCall = bbPosted - sbPosted
	}
	s.minRaise = bb
	s.currentPlayer = buttonIdx // button acts first preflop heads-up

	events := []eventbus.GameEvent{
		{Type: eventbus.EventHandStarted, SessionID: s.id, HandID: handID, ButtonPlayer: intPtr(buttonIdx)},
	}
	return s.snapshot(), events, nil
}

// Act validates and applies one player's action, advancing the
// betting round or the hand as required.
func (s *Session) Act(playerID int, intent rules.Intent, amount uint32) (GameStateResponse, []eventbus.GameEvent, error) {
	if s.state != HandInProgress {
		return GameStateResponse{}, nil, ErrInvalidState
	}
	if playerID != s.currentPlayer {
		return GameStateResponse{}, nil, ErrNotPlayersTurn
	}

	players := s.eng.Players()
	actor := players[playerID]

	validated, err := rules.Validate(actor.Stack(), s.toCall, s.minRaise, intent, amount)
	if err != nil {
		return GameStateResponse{}, nil, err
	}

	var events []eventbus.GameEvent
	opponent := 1 - playerID

	switch validated.Kind {
	case rules.Fold:
		s.actions = append(s.actions, handlog.ActionRecord{PlayerID: playerID, Street: s.street, Action: "Fold"})
		events = append(events, eventbus.GameEvent{Type: eventbus.EventPlayerAction, SessionID: s.id, PlayerID: intPtr(playerID), Action: "Fold"})
		finishEvents, err := s.finishHand([]int{opponent}, "fold")
		if err != nil {
			return GameStateResponse{}, nil, err
		}
		events = append(events, finishEvents...)
		return s.snapshot(), events, nil
	default:
		debit := validated.Amount
		if validated.Kind == rules.Raise {
			debit += s.toCall // a raise first matches the bet it faces
		}
		if err := actor.Bet(debit); err != nil {
			return GameStateResponse{}, nil, err
		}
		s.contributions[playerID] += uint64(debit)
		s.acted[playerID] = true

		switch validated.Kind {
		case rules.Bet, rules.Raise, rules.AllIn:
			s.toCall = validated.Amount
			if validated.Kind != rules.AllIn || validated.Amount >= s.minRaise {
				s.minRaise = validated.Amount
			}
			s.acted[opponent] = false
		case rules.Call:
			s.toCall = 0
		case rules.Check:
			s.toCall = 0
		}

		s.actions = append(s.actions, handlog.ActionRecord{
			PlayerID: playerID, Street: s.street, Action: validated.Kind.String(), Amount: validated.Amount,
		})
		events = append(events, eventbus.GameEvent{
			Type: eventbus.EventPlayerAction, SessionID: s.id, PlayerID: intPtr(playerID),
			Action: validated.Kind.String(), Amount: validated.Amount,
		})
	}

	if s.acted[0] && s.acted[1] && s.contributions[0] == s.contributions[1] {
		streetEvents, err := s.advanceStreet()
		if err != nil {
			return GameStateResponse{}, nil, err
		}
		events = append(events, streetEvents...)
		if s.state == HandComplete {
			return s.snapshot(), events, nil
		}
	} else {
		s.currentPlayer = opponent
	}

	return s.snapshot(), events, nil
}

func (s *Session) advanceStreet() ([]eventbus.GameEvent, error) {
	board := s.eng.Board()
	var events []eventbus.GameEvent

	switch s.street {
	case handlog.Preflop:
		s.street = handlog.Flop
		events = append(events, eventbus.GameEvent{Type: eventbus.EventCommunityCards, SessionID: s.id, Cards: board[:3], Street: streetPtr(handlog.Flop)})
	case handlog.Flop:
		s.street = handlog.Turn
		events = append(events, eventbus.GameEvent{Type: eventbus.EventCommunityCards, SessionID: s.id, Cards: board[:4], Street: streetPtr(handlog.Turn)})
	case handlog.Turn:
		s.street = handlog.River
		events = append(events, eventbus.GameEvent{Type: eventbus.EventCommunityCards, SessionID: s.id, Cards: board[:5], Street: streetPtr(handlog.River)})
	case handlog.River:
		return s.showdown()
	}

	s.acted = [2]bool{}
	s.toCall = 0
	s.currentPlayer = 1 - s.table.ButtonIndex() // big blind acts first postflop
	return events, nil
}

func (s *Session) showdown() ([]eventbus.GameEvent, error) {
	players := s.eng.Players()
	board := s.eng.Board()

	var strengths [2]evalhand.HandStrength
	for i, p := range players {
		hole := p.HoleCards()
		hand := append(append([]cards.Card{}, board...), *hole[0], *hole[1])
		strengths[i] = evalhand.Evaluate(hand)
	}

	var winners []int
	switch strengths[0].Compare(strengths[1]) {
	case 1:
		winners = []int{0}
	case -1:
		winners = []int{1}
	default:
		winners = []int{0, 1}
	}
	return s.finishHand(winners, "showdown")
}

func (s *Session) finishHand(winners []int, reason string) ([]eventbus.GameEvent, error) {
	result := potmgr.FromContributions(s.contributions[:])
	pot := result.Total()
	share := pot / uint64(len(winners))
	for _, w := range winners {
		s.eng.Players()[w].AddChips(uint32(share))
	}

	s.state = HandComplete
	snapshot := s.snapshot()
	snapshot.WinnerIDs = winners
	snapshot.PotAwarded = uint32(pot)
	s.lastHand = &snapshot

	events := []eventbus.GameEvent{{
		Type:      eventbus.EventHandCompleted,
		SessionID: s.id,
		Result:    &eventbus.HandResult{WinnerIDs: winners, Pot: uint32(pot)},
		Reason:    reason,
	}}

	for _, p := range s.eng.Players() {
		if p.Stack() == 0 {
			s.state = GameEnded
			var w *int
			if len(winners) == 1 {
				w = &winners[0]
			}
			events = append(events, eventbus.GameEvent{Type: eventbus.EventGameEnded, SessionID: s.id, Winner: w, Reason: "opponent stack is zero"})
			break
		}
	}

	return events, nil
}

func streetPtr(st handlog.Street) *handlog.Street { return &st }

func intPtr(i int) *int { return &i }

// postBlind bets the short-stack-clamped blind amount against p and
// returns what was actually debited, so a stack carried below the
// blind size posts an all-in blind instead of silently failing and
// leaving the recorded contribution inflated beyond the stack
// actually removed (chip-conservation invariant, §8).
func postBlind(p *engine.Player, amount uint32) uint32 {
	posted := amount
	if stack := p.Stack(); posted > stack {
		posted = stack
	}
	if err := p.Bet(posted); err != nil {
		return 0
	}
	return posted
}

func (s *Session) snapshot() GameStateResponse {
	players := s.eng.Players()
	resp := GameStateResponse{
		State:         s.state,
		Street:        s.street,
		Board:         append([]cards.Card{}, s.eng.Board()...),
		Stacks:        [2]uint32{players[0].Stack(), players[1].Stack()},
		Contributions: s.contributions,
		ToCall:        s.toCall,
		CurrentPlayer: s.currentPlayer,
		ButtonIndex:   s.table.ButtonIndex(),
		HandID:        s.handID,
	}
	if s.lastHand != nil {
		resp.WinnerIDs = s.lastHand.WinnerIDs
		resp.PotAwarded = s.lastHand.PotAwarded
	}
	return resp
}

// HandRecord builds the persisted record for the most recently
// completed hand.
func (s *Session) HandRecord() handlog.HandRecord {
	return handlog.HandRecord{
		HandID:  s.handID,
		Seed:    s.config.Seed,
		Actions: append([]handlog.ActionRecord{}, s.actions...),
		Board:   append([]cards.Card{}, s.eng.Board()...),
	}
}

func (s *Session) touch(now time.Time) { s.lastActivity = now }
