package engine

import (
	"math"

	"github.com/peterkuimelis/clasher/internal/game"
)

const (
	// AnalysisTopN is how many moves an Analysis lists.
	AnalysisTopN = 5

	NoMovesAvailable = "No moves available"
)

// MoveSummary is the display form of a ranked move.
type MoveSummary struct {
	Card       string         `json:"card"`
	Position   string         `json:"position"`
	Score      float64        `json:"score"`
	ElixirCost int            `json:"elixir_cost"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
}

// Analysis is a read-only report of a player's options.
type Analysis struct {
	Player         string        `json:"player"`
	Side           string        `json:"side"`
	Elixir         float64       `json:"elixir"`
	MaxElixir      float64       `json:"max_elixir"`
	PlayableCards  int           `json:"playable_cards"`
	Hand           []string      `json:"hand"`
	BestMoves      []MoveSummary `json:"best_moves"`
	Recommendation string        `json:"recommendation"`
}

// HasMoves reports whether any move was available.
func (a Analysis) HasMoves() bool {
	return len(a.BestMoves) > 0
}

// Analyze ranks the player's top moves and packages them with the hand and
// elixir state. It does not modify the player.
func (e *Engine) Analyze(p *game.Player, side game.Side, hints []*game.Card) Analysis {
	best := e.BestMoves(p, side, hints, AnalysisTopN)

	hand := p.Hand()
	a := Analysis{
		Player:         p.Name,
		Side:           side.String(),
		Elixir:         p.Elixir(),
		MaxElixir:      game.MaxElixir,
		PlayableCards:  len(p.Playable()),
		Hand:           make([]string, 0, len(hand)),
		BestMoves:      make([]MoveSummary, 0, len(best)),
		Recommendation: NoMovesAvailable,
	}
	for _, c := range hand {
		a.Hand = append(a.Hand, c.String())
	}
	for _, m := range best {
		a.BestMoves = append(a.BestMoves, e.Summarize(m, side, hints))
	}
	if len(best) > 0 {
		a.Recommendation = best[0].String()
	}
	return a
}

// Summarize converts a scored move into its display form.
func (e *Engine) Summarize(m *game.Move, side game.Side, hints []*game.Card) MoveSummary {
	return MoveSummary{
		Card:       m.Card.Name,
		Position:   m.Position.Coords(),
		Score:      round2(m.Score),
		ElixirCost: m.Card.Cost,
		Breakdown:  e.Breakdown(m, side, hints),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
