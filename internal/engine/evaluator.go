package engine

import (
	"math"
	"runtime"
	"sync"

	"github.com/peterkuimelis/clasher/internal/game"
)

const (
	TempoBase   = 10.0
	TempoWeight = 0.5

	BuildingTargeterReach  = 20.0
	BuildingTargeterDecay  = 0.5
	BuildingDistanceWeight = 0.3
	SpellBonus             = 5.0
	BridgeBonus            = 3.0
	FriendlyBridgeY        = 14.0 // friendly placements at or beyond this y
	EnemyBridgeY           = 18.0 // enemy placements at or below this y

	HighDamageThreshold = 200
	HighDamageBonus     = 3.0
	AreaDamageBonus     = 2.5
	LongRangeThreshold  = 5.0
	LongRangeBonus      = 2.0
	BuildingBonus       = 4.0

	SwarmCostMax        = 3
	SwarmCounterBonus   = 3.0
	BaitCounterBonus    = 4.0
	TankDamageThreshold = 300
	TankCostMin         = 5
	TankCounterBonus    = 2.5
	AirCounterBonus     = 2.0

	LeftLaneMaxX        = 7.0
	RightLaneMinX       = 11.0
	SideLaneBonus       = 1.0
	CenterLaneBonus     = 0.5
	FriendlyPushY       = 10.0
	EnemyPushY          = 22.0
	AggressivePushBonus = 2.0
)

// ScoreBreakdown is a move's score split into its additive terms.
type ScoreBreakdown struct {
	Tempo       float64 `json:"tempo"`
	Positioning float64 `json:"positioning"`
	Attributes  float64 `json:"attributes"`
	Counters    float64 `json:"counters"`
	Strategy    float64 `json:"strategy"`
}

func (b ScoreBreakdown) Total() float64 {
	return b.Tempo + b.Positioning + b.Attributes + b.Counters + b.Strategy
}

// Evaluate scores a move for the given side. Higher is better. hints are
// opposing cards known to be in play; nil or empty disables the counter term.
func (e *Engine) Evaluate(m *game.Move, side game.Side, hints []*game.Card) float64 {
	return e.Breakdown(m, side, hints).Total()
}

// Breakdown returns each scoring term for a move.
func (e *Engine) Breakdown(m *game.Move, side game.Side, hints []*game.Card) ScoreBreakdown {
	card, pos := m.Card, m.Position
	return ScoreBreakdown{
		Tempo:       tempo(card),
		Positioning: e.positioning(card, pos, side),
		Attributes:  attributes(card),
		Counters:    counters(card, hints),
		Strategy:    strategy(pos, side),
	}
}

// ScoreMoves assigns Score on every move.
func (e *Engine) ScoreMoves(moves []*game.Move, side game.Side, hints []*game.Card) {
	for _, m := range moves {
		m.Score = e.Evaluate(m, side, hints)
	}
}

// ScoreMovesParallel is ScoreMoves spread over a bounded set of goroutines.
// Each worker writes only the moves it owns, so the result matches ScoreMoves.
func (e *Engine) ScoreMovesParallel(moves []*game.Move, side game.Side, hints []*game.Card) {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(moves) {
		workers = len(moves)
	}
	if workers <= 1 {
		e.ScoreMoves(moves, side, hints)
		return
	}

	var wg sync.WaitGroup
	jobs := make(chan *game.Move)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range jobs {
				m.Score = e.Evaluate(m, side, hints)
			}
		}()
	}
	for _, m := range moves {
		jobs <- m
	}
	close(jobs)
	wg.Wait()
}

func tempo(card *game.Card) float64 {
	return (TempoBase - float64(card.Cost)) * TempoWeight
}

// positioning rewards placement relative to the nearest standing opposing
// tower, plus bridge pressure for troops.
func (e *Engine) positioning(card *game.Card, pos game.Position, side game.Side) float64 {
	score := 0.0

	tower, ok := e.board.NearestTower(pos, side.Opponent())
	switch card.CardType {
	case game.CardTypeTroop:
		if ok && card.TargetsBuildingsOnly() {
			d := pos.DistanceTo(tower)
			score += math.Max(0, BuildingTargeterReach-d*BuildingTargeterDecay)
		}
	case game.CardTypeBuilding:
		if ok {
			score += pos.DistanceTo(tower) * BuildingDistanceWeight
		}
	case game.CardTypeSpell:
		score += SpellBonus
	}

	if card.IsTroop() && isBridge(pos, side) {
		score += BridgeBonus
	}
	return score
}

func isBridge(pos game.Position, side game.Side) bool {
	if side == game.SideFriendly {
		return pos.Y >= FriendlyBridgeY
	}
	return pos.Y <= EnemyBridgeY
}

func attributes(card *game.Card) float64 {
	score := 0.0
	if card.Damage > HighDamageThreshold {
		score += HighDamageBonus
	}
	if card.AreaDamage {
		score += AreaDamageBonus
	}
	if card.Range > LongRangeThreshold {
		score += LongRangeBonus
	}
	if card.IsBuilding() {
		score += BuildingBonus
	}
	return score
}

// counters accumulates matchup bonuses once per hint card. A card listed
// twice in hints counts twice.
func counters(card *game.Card, hints []*game.Card) float64 {
	score := 0.0
	for _, opp := range hints {
		if opp == nil {
			continue
		}
		if card.AreaDamage && opp.Cost <= SwarmCostMax {
			score += SwarmCounterBonus
		}
		if card.IsBuilding() && opp.TargetsBuildingsOnly() {
			score += BaitCounterBonus
		}
		if card.Damage > TankDamageThreshold && opp.Cost >= TankCostMin {
			score += TankCounterBonus
		}
		if card.HitsAir() && opp.Target == game.TargetAir {
			score += AirCounterBonus
		}
	}
	return score
}

func strategy(pos game.Position, side game.Side) float64 {
	score := 0.0
	switch {
	case pos.X < LeftLaneMaxX:
		score += SideLaneBonus
	case pos.X > RightLaneMinX:
		score += SideLaneBonus
	default:
		score += CenterLaneBonus
	}

	if side == game.SideFriendly {
		if pos.Y > FriendlyPushY {
			score += AggressivePushBonus
		}
	} else if pos.Y < EnemyPushY {
		score += AggressivePushBonus
	}
	return score
}
