package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/clasher/internal/game"
)

func scored(name string, x float64, score float64) *game.Move {
	mv := game.NewMove(card(name), game.Pos(x, 8, game.SideFriendly))
	mv.Score = score
	return mv
}

func TestFindBestOrdersByScore(t *testing.T) {
	a := scored("Knight", 4, 1)
	b := scored("Knight", 9, 3)
	c := scored("Archers", 4, 3)
	d := scored("Archers", 9, 2)
	in := []*game.Move{a, b, c, d}

	best := FindBest(in, 3)
	require.Len(t, best, 3)
	assert.Same(t, b, best[0], "ties keep generation order")
	assert.Same(t, c, best[1])
	assert.Same(t, d, best[2])

	assert.Equal(t, []*game.Move{a, b, c, d}, in, "input must not be reordered")
}

func TestFindBestKLargerThanCandidates(t *testing.T) {
	e := New(nil)
	moves := e.PlayerMoves(referencePlayer(t), game.SideFriendly)
	e.ScoreMoves(moves, game.SideFriendly, nil)

	best := FindBest(moves, len(moves)+10)
	require.Len(t, best, len(moves))
	for i := 1; i < len(best); i++ {
		assert.GreaterOrEqual(t, best[i-1].Score, best[i].Score)
	}
}

func TestFindBestEdgeCases(t *testing.T) {
	assert.Empty(t, FindBest(nil, 3))
	assert.NotNil(t, FindBest(nil, 3))
	assert.Empty(t, FindBest([]*game.Move{scored("Knight", 4, 1)}, 0))
	assert.Empty(t, FindBest([]*game.Move{scored("Knight", 4, 1)}, -1))
}

func TestBestMovesReferenceHand(t *testing.T) {
	e := New(nil)
	p := referencePlayer(t)

	best := e.BestMoves(p, game.SideFriendly, nil, 3)
	require.Len(t, best, 3)
	// Giant at a side bridge: tempo 2.5, reach 16 + bridge 3, lane 1 + push 2.
	assert.Equal(t, "Giant at (4, 14)", best[0].String())
	assert.InDelta(t, 24.5, best[0].Score, eps)
	assert.Equal(t, "Giant at (14, 14)", best[1].String())
	assert.InDelta(t, 24.5, best[1].Score, eps)
	assert.Equal(t, "Giant at (9, 14)", best[2].String())

	again := e.BestMoves(p, game.SideFriendly, nil, 3)
	for i := range best {
		assert.True(t, best[i].Equal(again[i]))
		assert.Equal(t, best[i].Score, again[i].Score)
	}
}

func TestBestMovesFollowsTowerState(t *testing.T) {
	board := game.DefaultBoard()
	require.NoError(t, board.DestroyTower(game.SideEnemy, game.TowerLeft))
	e := New(board)

	best := e.BestMoves(referencePlayer(t), game.SideFriendly, nil, 1)
	require.Len(t, best, 1)
	assert.Equal(t, "Giant at (14, 14)", best[0].String())
}
