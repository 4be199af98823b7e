package game

import "fmt"

// Move is a candidate placement of one card at one position. Score is
// assigned by the engine after evaluation.
type Move struct {
	Card     *Card
	Position Position
	Score    float64
}

func NewMove(card *Card, pos Position) *Move {
	return &Move{Card: card, Position: pos}
}

// Equal compares card name and position; the score is ignored.
func (m *Move) Equal(o *Move) bool {
	if m == nil || o == nil {
		return m == o
	}
	return cardName(m.Card) == cardName(o.Card) && m.Position == o.Position
}

// Key identifies a move for map lookups.
func (m *Move) Key() MoveKey {
	return MoveKey{Card: cardName(m.Card), Position: m.Position}
}

type MoveKey struct {
	Card     string
	Position Position
}

func (m *Move) String() string {
	return fmt.Sprintf("%s at %s", cardName(m.Card), m.Position.Coords())
}
