package eventbus

import (
	"github.com/lox/axiomind/internal/cards"
	"github.com/lox/axiomind/internal/handlog"
)

// EventType discriminates GameEvent's variant, serialized as the
// event's "type" field - the Go rendering of the session package's
// internally-tagged enum.
type EventType string

const (
	EventGameStarted    EventType = "game_started"
	EventHandStarted    EventType = "hand_started"
	EventCardsDealt     EventType = "cards_dealt"
	EventCommunityCards EventType = "community_cards"
	EventPlayerAction   EventType = "player_action"
	EventHandCompleted  EventType = "hand_completed"
	EventGameEnded      EventType = "game_ended"
	EventError          EventType = "error"
)

// PlayerInfo describes one seat for a GameStarted event.
type PlayerInfo struct {
	ID       int    `json:"id"`
	Stack    uint32 `json:"stack"`
	Position string `json:"position"`
	IsHuman  bool   `json:"is_human"`
}

// HandResult summarizes a completed hand for a HandCompleted event.
type HandResult struct {
	WinnerIDs []int  `json:"winner_ids"`
	Pot       uint32 `json:"pot"`
}

// GameEvent is one notification published to a session's subscribers.
// Only the fields relevant to Type are populated; the rest are zero.
type GameEvent struct {
	Type         EventType          `json:"type"`
	SessionID    string             `json:"session_id"`
	Players      []PlayerInfo       `json:"players,omitempty"`
	HandID       string             `json:"hand_id,omitempty"`
	ButtonPlayer *int               `json:"button_player,omitempty"`
	PlayerID     *int               `json:"player_id,omitempty"`
	Cards        []cards.Card       `json:"cards,omitempty"`
	Street       *handlog.Street    `json:"street,omitempty"`
	Action       string             `json:"action,omitempty"`
	Amount       uint32             `json:"amount,omitempty"`
	Result       *HandResult        `json:"result,omitempty"`
	Winner       *int               `json:"winner,omitempty"`
	Reason       string             `json:"reason,omitempty"`
	Message      string             `json:"message,omitempty"`
}
