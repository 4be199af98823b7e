// Package engine recommends card placements: it enumerates every legal
// (card, position) pair for a hand, scores each with a fixed heuristic, and
// ranks the results.
//
// The engine is synchronous and has no state of its own beyond the board it
// reads. Evaluating a move only writes that move's Score.
package engine

import (
	"github.com/peterkuimelis/clasher/internal/game"
)

// Engine evaluates moves against a board.
type Engine struct {
	board *game.Board
}

// New creates an engine. A nil board means the default arena.
func New(board *game.Board) *Engine {
	if board == nil {
		board = game.DefaultBoard()
	}
	return &Engine{board: board}
}

func (e *Engine) Board() *game.Board {
	return e.board
}

// BestMoves generates, scores and ranks the player's moves, returning at most topN.
func (e *Engine) BestMoves(p *game.Player, side game.Side, hints []*game.Card, topN int) []*game.Move {
	moves := e.PlayerMoves(p, side)
	if len(moves) == 0 {
		return []*game.Move{}
	}
	e.ScoreMoves(moves, side, hints)
	return FindBest(moves, topN)
}
