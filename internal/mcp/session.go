package mcp

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/clasher/internal/engine"
	"github.com/peterkuimelis/clasher/internal/game"
	"github.com/peterkuimelis/clasher/internal/log"
	"github.com/peterkuimelis/clasher/internal/session"
)

// EventView is a match event as presented in tool responses.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Player  string `json:"player,omitempty"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// CardView describes a catalog card for list_cards.
type CardView struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Cost   int    `json:"cost"`
	Target string `json:"target"`
	Damage int    `json:"damage"`
	Area   bool   `json:"area_damage,omitempty"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []EventView          `json:"events"`
	State    *session.State       `json:"state,omitempty"`
	Moves    []engine.MoveSummary `json:"moves,omitempty"`
	Analysis *engine.Analysis     `json:"analysis,omitempty"`
	Played   *engine.MoveSummary  `json:"played,omitempty"`
	Cards    []CardView           `json:"cards,omitempty"`
}

// GameSession holds the state of a single MCP advisor match.
type GameSession struct {
	match  *session.Match
	events *log.MemoryLogger

	mu   sync.Mutex
	seen int // events already returned to the caller
}

// NewGameSession starts a match for the given deck.
func NewGameSession(catalog *game.Catalog, deck []*game.Card, name string, side game.Side) (*GameSession, error) {
	p, err := game.NewPlayer(deck, name)
	if err != nil {
		return nil, err
	}
	events := log.NewMemoryLogger()
	m, err := session.New(session.Config{
		Catalog: catalog,
		Player:  p,
		Side:    side,
		Logger:  events,
	})
	if err != nil {
		return nil, err
	}
	return &GameSession{match: m, events: events}, nil
}

// drainEvents returns the events logged since the previous call.
func (s *GameSession) drainEvents() []EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.events.Events()
	out := make([]EventView, 0, len(all)-s.seen)
	for _, e := range all[s.seen:] {
		out = append(out, EventView{
			Seq:     e.Seq,
			Turn:    e.Turn,
			Player:  e.Player,
			Type:    e.Type.String(),
			Card:    e.Card,
			Details: e.Details,
		})
	}
	s.seen = len(all)
	return out
}

// response builds a ToolResponse carrying new events and the current state.
func (s *GameSession) response() *ToolResponse {
	st := s.match.State()
	return &ToolResponse{Events: s.drainEvents(), State: &st}
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	if resp.Events == nil {
		resp.Events = []EventView{}
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
