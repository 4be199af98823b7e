package net

import (
	"github.com/peterkuimelis/clasher/internal/engine"
	"github.com/peterkuimelis/clasher/internal/session"
)

// Message types for the JSON protocol over TCP. Every message is one JSON
// value per line.

// Client → server message types.
const (
	MsgJoin         = "join"
	MsgRecommend    = "recommend"
	MsgAnalyze      = "analyze"
	MsgPlay         = "play"
	MsgPlayBest     = "play_best"
	MsgElixir       = "elixir"
	MsgNextTurn     = "next_turn"
	MsgDestroyTower = "destroy_tower"
	MsgHints        = "hints"
	MsgState        = "state"
	MsgQuit         = "quit"
)

// Server → client message types.
const (
	MsgTypeState    = "state"
	MsgTypeMoves    = "moves"
	MsgTypeAnalysis = "analysis"
	MsgTypePlayed   = "played"
	MsgTypeError    = "error"
	MsgTypeBye      = "bye"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "state", and after every mutation
	State *session.State `json:"state,omitempty"`

	// For "moves"
	Moves []engine.MoveSummary `json:"moves,omitempty"`

	// For "analysis"
	Analysis *engine.Analysis `json:"analysis,omitempty"`

	// For "played"
	Played *engine.MoveSummary `json:"played,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join" (initial handshake)
	DeckNumber int      `json:"deck_number,omitempty"`
	Deck       []string `json:"deck,omitempty"` // explicit card names; overrides DeckNumber
	Name       string   `json:"name,omitempty"`
	Side       string   `json:"side,omitempty"`

	// For "recommend"
	TopN int `json:"top_n,omitempty"`

	// For "play"
	Card string `json:"card,omitempty"`

	// For "elixir" and "next_turn"
	Amount float64 `json:"amount,omitempty"`

	// For "destroy_tower"
	TowerSide string `json:"tower_side,omitempty"`
	Tower     string `json:"tower,omitempty"`

	// For "hints"
	Cards []string `json:"cards,omitempty"`
}
