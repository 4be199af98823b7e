package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/clasher/internal/game"
)

func TestGenerateMovesCrossProduct(t *testing.T) {
	e := New(nil)
	p := referencePlayer(t)

	for _, side := range []game.Side{game.SideFriendly, game.SideEnemy} {
		moves := e.PlayerMoves(p, side)
		// Four affordable cards times twelve zones; enemy bridge duplicates included.
		require.Len(t, moves, 4*12, side.String())

		zones := e.Board().DeploymentPositions(side)
		for i, mv := range moves {
			assert.Equal(t, p.Hand()[i/len(zones)], mv.Card)
			assert.Equal(t, zones[i%len(zones)], mv.Position)
			assert.True(t, e.Board().IsValidPosition(mv.Position))
			assert.Zero(t, mv.Score)
		}
	}
}

func TestGenerateMovesOnlyAffordable(t *testing.T) {
	e := New(nil)
	p := referencePlayer(t)
	p.AddElixir(-1) // 4 elixir, Giant unaffordable

	moves := e.PlayerMoves(p, game.SideFriendly)
	require.Len(t, moves, 3*12)
	for _, mv := range moves {
		assert.NotEqual(t, "Giant", mv.Card.Name)
		assert.LessOrEqual(t, float64(mv.Card.Cost), p.Elixir())
	}
}

func TestGenerateMovesFiltersInvalidZones(t *testing.T) {
	layout := game.DefaultLayout()
	layout.FriendlyZones = append(layout.FriendlyZones, game.Point{X: 9, Y: 20}, game.Point{X: 30, Y: 4})
	e := New(game.NewBoard(layout))

	moves := e.GenerateMoves([]*game.Card{card("Knight")}, game.SideFriendly)
	assert.Len(t, moves, 12)
}

func TestGenerateMovesEmpty(t *testing.T) {
	e := New(nil)
	p := referencePlayer(t)
	p.AddElixir(-game.MaxElixir)

	moves := e.PlayerMoves(p, game.SideFriendly)
	assert.NotNil(t, moves)
	assert.Empty(t, moves)

	best := e.BestMoves(p, game.SideFriendly, nil, 3)
	assert.NotNil(t, best)
	assert.Empty(t, best)
}
